package inspect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/danmuck/ghcbctl/internal/ghcbmsr"
)

var (
	// ErrUnknownKind indicates a kind name outside the catalog.
	ErrUnknownKind = errors.New("inspect: unknown kind")

	// ErrBadOperand indicates an operand string that cannot be parsed
	// at all. Operands that parse but violate the protocol surface the
	// codec's own errors instead.
	ErrBadOperand = errors.New("inspect: bad operand")
)

func hexString(v uint64) string {
	return fmt.Sprintf("%#x", v)
}

func parseUintOperand(name, value string, bits int) (uint64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: missing %s", ErrBadOperand, name)
	}
	v, err := strconv.ParseUint(trimmed, 0, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrBadOperand, name, value)
	}
	return v, nil
}

func parseReg(value string) (ghcbmsr.CPUIDReg, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "eax":
		return ghcbmsr.RegEAX, nil
	case "ebx":
		return ghcbmsr.RegEBX, nil
	case "ecx":
		return ghcbmsr.RegECX, nil
	case "edx":
		return ghcbmsr.RegEDX, nil
	case "":
		return 0, fmt.Errorf("%w: missing reg", ErrBadOperand)
	}
	return 0, fmt.Errorf("%w: reg %q", ErrBadOperand, value)
}

func parsePageOp(value string) (ghcbmsr.PageOp, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "private":
		return ghcbmsr.PageOpPrivate, nil
	case "shared":
		return ghcbmsr.PageOpShared, nil
	case "":
		return 0, fmt.Errorf("%w: missing op", ErrBadOperand)
	}
	return 0, fmt.Errorf("%w: op %q", ErrBadOperand, value)
}

func parseReason(value string) (ghcbmsr.TerminationReason, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "general":
		return ghcbmsr.TermGeneral, nil
	case "protocol_range", "protocol_range_unsupported":
		return ghcbmsr.TermProtocolRangeUnsupported, nil
	case "snp", "snp_unsupported":
		return ghcbmsr.TermSNPUnsupported, nil
	case "":
		return 0, fmt.Errorf("%w: missing reason", ErrBadOperand)
	}
	return 0, fmt.Errorf("%w: reason %q", ErrBadOperand, value)
}

func buildSEVInfo(Operands) (ghcbmsr.Request, error) {
	return ghcbmsr.NewSEVInfoReq(), nil
}

func buildCPUID(op Operands) (ghcbmsr.Request, error) {
	function, err := parseUintOperand("function", op.Function, 32)
	if err != nil {
		return nil, err
	}
	reg, err := parseReg(op.Reg)
	if err != nil {
		return nil, err
	}
	req, err := ghcbmsr.NewCPUIDReq(uint32(function), reg)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func buildAPResetHold(Operands) (ghcbmsr.Request, error) {
	return ghcbmsr.NewAPResetHoldReq(), nil
}

func buildPrefGHCBGPA(Operands) (ghcbmsr.Request, error) {
	return ghcbmsr.NewPrefGHCBGPAReq(), nil
}

func buildRegisterGHCB(op Operands) (ghcbmsr.Request, error) {
	gfn, err := parseUintOperand("gfn", op.GFN, 64)
	if err != nil {
		return nil, err
	}
	req, err := ghcbmsr.NewRegisterGHCBReq(gfn)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func buildPageState(op Operands) (ghcbmsr.Request, error) {
	gfn, err := parseUintOperand("gfn", op.GFN, 64)
	if err != nil {
		return nil, err
	}
	pageOp, err := parsePageOp(op.Op)
	if err != nil {
		return nil, err
	}
	req, err := ghcbmsr.NewPageStateReq(gfn, pageOp)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func buildRunVMPL(op Operands) (ghcbmsr.Request, error) {
	vmpl, err := parseUintOperand("vmpl", op.VMPL, 8)
	if err != nil {
		return nil, err
	}
	return ghcbmsr.NewRunVMPLReq(uint8(vmpl)), nil
}

func buildFeatureSupport(Operands) (ghcbmsr.Request, error) {
	return ghcbmsr.NewFeatureSupportReq(), nil
}

func buildTermination(op Operands) (ghcbmsr.Request, error) {
	codeSet, err := parseUintOperand("code_set", op.CodeSet, 8)
	if err != nil {
		return nil, err
	}
	reason, err := parseReason(op.Reason)
	if err != nil {
		return nil, err
	}
	req, err := ghcbmsr.NewTerminationReq(uint8(codeSet), reason)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func decodeSEVInfo(_ Operands, raw uint64) (map[string]any, error) {
	resp, err := ghcbmsr.NewSEVInfoReq().Response(raw)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"max_version": resp.MaxVersion,
		"min_version": resp.MinVersion,
		"enc_bit":     resp.EncBit,
	}, nil
}

func decodeCPUID(_ Operands, raw uint64) (map[string]any, error) {
	// operands cannot affect cpuid validation, any constructable
	// request decodes the same
	req, _ := ghcbmsr.NewCPUIDReq(0, ghcbmsr.RegEAX)
	resp, err := req.Response(raw)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"value": hexString(uint64(resp.Value)),
		"reg":   resp.Reg.String(),
	}, nil
}

func decodeAPResetHold(_ Operands, raw uint64) (map[string]any, error) {
	if _, err := ghcbmsr.NewAPResetHoldReq().Response(raw); err != nil {
		return nil, err
	}
	return map[string]any{"released": true}, nil
}

func decodePrefGHCBGPA(_ Operands, raw uint64) (map[string]any, error) {
	resp, err := ghcbmsr.NewPrefGHCBGPAReq().Response(raw)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"gfn":            hexString(resp.GFN),
		"has_preference": resp.HasPreference(),
	}, nil
}

func decodeRegisterGHCB(op Operands, raw uint64) (map[string]any, error) {
	req, err := buildRegisterGHCB(op)
	if err != nil {
		return nil, err
	}
	resp, err := req.(ghcbmsr.RegisterGHCBReq).Response(raw)
	if err != nil {
		return nil, err
	}
	return map[string]any{"gfn": hexString(resp.GFN)}, nil
}

func decodePageState(_ Operands, raw uint64) (map[string]any, error) {
	req, _ := ghcbmsr.NewPageStateReq(0, ghcbmsr.PageOpPrivate)
	resp, err := req.Response(raw)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"error_code": resp.ErrorCode,
		"ok":         resp.ErrorCode == 0,
	}, nil
}

func decodeRunVMPL(_ Operands, raw uint64) (map[string]any, error) {
	resp, err := ghcbmsr.NewRunVMPLReq(0).Response(raw)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"error_code": resp.ErrorCode,
		"ok":         resp.ErrorCode == 0,
	}, nil
}

func decodeFeatureSupport(_ Operands, raw uint64) (map[string]any, error) {
	resp, err := ghcbmsr.NewFeatureSupportReq().Response(raw)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"features":                   hexString(resp.Features),
		"snp":                        resp.Has(ghcbmsr.FeatSNP),
		"snp_ap_creation":            resp.Has(ghcbmsr.FeatSNPAPCreation),
		"restricted_injection":       resp.Has(ghcbmsr.FeatSNPRestrictedInj),
		"restricted_injection_timer": resp.Has(ghcbmsr.FeatSNPRestrictedInjTimer),
	}, nil
}

func decodeTermination(_ Operands, raw uint64) (map[string]any, error) {
	req, _ := ghcbmsr.NewTerminationReq(0, ghcbmsr.TermGeneral)
	if _, err := req.Response(raw); err != nil {
		return nil, err
	}
	return nil, nil
}
