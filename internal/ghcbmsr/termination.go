package ghcbmsr

import "fmt"

// TerminationReason tells the hypervisor why the guest is asking to be
// terminated.
type TerminationReason uint8

const (
	// TermGeneral is a general termination request.
	TermGeneral TerminationReason = 1
	// TermProtocolRangeUnsupported signals that the guest cannot work
	// with the GHCB protocol range the hypervisor offered.
	TermProtocolRangeUnsupported TerminationReason = 2
	// TermSNPUnsupported signals that SEV-SNP features the guest
	// requires are not supported.
	TermSNPUnsupported TerminationReason = 3
)

func (t TerminationReason) String() string {
	switch t {
	case TermGeneral:
		return "general"
	case TermProtocolRangeUnsupported:
		return "protocol_range_unsupported"
	case TermSNPUnsupported:
		return "snp_unsupported"
	}
	return fmt.Sprintf("reason(%d)", uint8(t))
}

// Termination request layout within the data section: the reason code
// set at [3:0] and the reason at [11:4].
const (
	termCodeSetShift = 0
	termCodeSetWidth = 4
	termReasonShift  = 4
	termReasonWidth  = 8
)

const maxTermCodeSet = 1<<termCodeSetWidth - 1

// TerminationReq asks the hypervisor to terminate the guest.
type TerminationReq struct {
	codeSet uint8
	reason  TerminationReason
}

// NewTerminationReq constructs a termination request. The code set
// must fit its 4-bit field and the reason must be defined within it.
func NewTerminationReq(codeSet uint8, reason TerminationReason) (TerminationReq, error) {
	if codeSet > maxTermCodeSet {
		return TerminationReq{}, fmt.Errorf("%w: reason code set %d wider than %d bits", ErrInvalidOperand, codeSet, termCodeSetWidth)
	}
	if reason < TermGeneral || reason > TermSNPUnsupported {
		return TerminationReq{}, fmt.Errorf("%w: termination reason %d", ErrInvalidOperand, uint8(reason))
	}
	return TerminationReq{codeSet: codeSet, reason: reason}, nil
}

// CodeSet returns the reason code set the reason belongs to.
func (r TerminationReq) CodeSet() uint8 { return r.codeSet }

// Reason returns the termination reason.
func (r TerminationReq) Reason() TerminationReason { return r.reason }

func (r TerminationReq) Info() Info { return InfoTerminationReq }

func (r TerminationReq) Data() uint64 {
	return insert(uint64(r.reason), termReasonShift, termReasonWidth) |
		insert(uint64(r.codeSet), termCodeSetShift, termCodeSetWidth)
}

// MSR returns the value to write to the GHCB MSR.
func (r TerminationReq) MSR() uint64 { return Compose(r.Info(), r.Data()) }

// Response always fails with ErrShouldNotReturn: a hypervisor honoring
// the request never hands control back, so any value read after a
// termination exchange is untrustworthy.
func (r TerminationReq) Response(raw uint64) (TerminationResp, error) {
	return TerminationResp{}, ErrShouldNotReturn
}

// TerminationResp completes the catalog pairing; no value of it is
// ever produced.
type TerminationResp struct{}
