package inspect

import (
	"sort"

	"github.com/danmuck/ghcbctl/internal/ghcbmsr"
)

// Kind is the stable tooling name of one request kind.
type Kind string

const (
	KindSEVInfo        Kind = "sev_info"
	KindCPUID          Kind = "cpuid"
	KindAPResetHold    Kind = "ap_reset_hold"
	KindPrefGHCBGPA    Kind = "pref_ghcb_gpa"
	KindRegisterGHCB   Kind = "register_ghcb"
	KindPageState      Kind = "page_state"
	KindRunVMPL        Kind = "run_vmpl"
	KindFeatureSupport Kind = "feature_support"
	KindTermination    Kind = "termination"
)

// Operands carries request operands in their string form. Every
// surface (CLI flags, TOML scenarios, HTTP JSON) collects the same
// fields; each kind parses only the operands it takes and ignores the
// rest. Numeric fields accept decimal or 0x-prefixed hex.
type Operands struct {
	Function string `json:"function,omitempty" toml:"function,omitempty"`
	Reg      string `json:"reg,omitempty" toml:"reg,omitempty"`
	GFN      string `json:"gfn,omitempty" toml:"gfn,omitempty"`
	Op       string `json:"op,omitempty" toml:"op,omitempty"`
	VMPL     string `json:"vmpl,omitempty" toml:"vmpl,omitempty"`
	CodeSet  string `json:"code_set,omitempty" toml:"code_set,omitempty"`
	Reason   string `json:"reason,omitempty" toml:"reason,omitempty"`
}

// Entry describes one catalog kind: its protocol codes, the operands
// it takes, and its builder and scoped decoder.
type Entry struct {
	Kind         Kind
	RequestCode  ghcbmsr.Info
	ResponseCode ghcbmsr.Info
	// HasResponse is false for kinds whose request never yields a
	// decodable response.
	HasResponse bool
	// Operands lists the operand names Build reads.
	Operands []string
	// DecodeOperands lists operand names Decode additionally needs,
	// such as the expected echo of a registration.
	DecodeOperands []string

	Build  func(Operands) (ghcbmsr.Request, error)
	Decode func(Operands, uint64) (map[string]any, error)
}

var catalog = []Entry{
	{
		Kind:         KindSEVInfo,
		RequestCode:  ghcbmsr.InfoSEVInfoReq,
		ResponseCode: ghcbmsr.InfoSEVInfoResp,
		HasResponse:  true,
		Build:        buildSEVInfo,
		Decode:       decodeSEVInfo,
	},
	{
		Kind:         KindCPUID,
		RequestCode:  ghcbmsr.InfoCPUIDReq,
		ResponseCode: ghcbmsr.InfoCPUIDResp,
		HasResponse:  true,
		Operands:     []string{"function", "reg"},
		Build:        buildCPUID,
		Decode:       decodeCPUID,
	},
	{
		Kind:         KindAPResetHold,
		RequestCode:  ghcbmsr.InfoAPResetHoldReq,
		ResponseCode: ghcbmsr.InfoAPResetHoldResp,
		HasResponse:  true,
		Build:        buildAPResetHold,
		Decode:       decodeAPResetHold,
	},
	{
		Kind:         KindPrefGHCBGPA,
		RequestCode:  ghcbmsr.InfoPrefGHCBGPAReq,
		ResponseCode: ghcbmsr.InfoPrefGHCBGPAResp,
		HasResponse:  true,
		Build:        buildPrefGHCBGPA,
		Decode:       decodePrefGHCBGPA,
	},
	{
		Kind:           KindRegisterGHCB,
		RequestCode:    ghcbmsr.InfoRegisterGHCBReq,
		ResponseCode:   ghcbmsr.InfoRegisterGHCBResp,
		HasResponse:    true,
		Operands:       []string{"gfn"},
		DecodeOperands: []string{"gfn"},
		Build:          buildRegisterGHCB,
		Decode:         decodeRegisterGHCB,
	},
	{
		Kind:         KindPageState,
		RequestCode:  ghcbmsr.InfoPageStateReq,
		ResponseCode: ghcbmsr.InfoPageStateResp,
		HasResponse:  true,
		Operands:     []string{"gfn", "op"},
		Build:        buildPageState,
		Decode:       decodePageState,
	},
	{
		Kind:         KindRunVMPL,
		RequestCode:  ghcbmsr.InfoRunVMPLReq,
		ResponseCode: ghcbmsr.InfoRunVMPLResp,
		HasResponse:  true,
		Operands:     []string{"vmpl"},
		Build:        buildRunVMPL,
		Decode:       decodeRunVMPL,
	},
	{
		Kind:         KindFeatureSupport,
		RequestCode:  ghcbmsr.InfoFeatureSupportReq,
		ResponseCode: ghcbmsr.InfoFeatureSupportResp,
		HasResponse:  true,
		Build:        buildFeatureSupport,
		Decode:       decodeFeatureSupport,
	},
	{
		Kind:        KindTermination,
		RequestCode: ghcbmsr.InfoTerminationReq,
		Operands:    []string{"code_set", "reason"},
		Build:       buildTermination,
		Decode:      decodeTermination,
	},
}

var catalogByKind = func() map[Kind]Entry {
	m := make(map[Kind]Entry, len(catalog))
	for _, e := range catalog {
		m[e.Kind] = e
	}
	return m
}()

// Catalog returns every kind in request-code order.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup resolves a kind name.
func Lookup(kind string) (Entry, bool) {
	e, ok := catalogByKind[Kind(kind)]
	return e, ok
}

// CodeInfo describes one protocol code for catalog listings.
type CodeInfo struct {
	Code      uint16 `json:"code"`
	Name      string `json:"name"`
	Direction string `json:"direction"`
	Kind      Kind   `json:"kind,omitempty"`
}

// Codes lists every protocol code, including the non-exchange GHCB GPA
// form, in numeric order.
func Codes() []CodeInfo {
	out := []CodeInfo{{
		Code:      uint16(ghcbmsr.InfoGHCBGPA),
		Name:      ghcbmsr.InfoGHCBGPA.String(),
		Direction: "none",
	}}
	for _, e := range catalog {
		out = append(out, CodeInfo{
			Code:      uint16(e.RequestCode),
			Name:      e.RequestCode.String(),
			Direction: "request",
			Kind:      e.Kind,
		})
		if e.HasResponse {
			out = append(out, CodeInfo{
				Code:      uint16(e.ResponseCode),
				Name:      e.ResponseCode.String(),
				Direction: "response",
				Kind:      e.Kind,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Code < out[j].Code
	})
	return out
}
