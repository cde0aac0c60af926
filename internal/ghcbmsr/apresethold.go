package ghcbmsr

// APResetHoldReq parks the issuing AP until the hypervisor releases it
// for the INIT-SIPI-SIPI sequence.
type APResetHoldReq struct{}

// NewAPResetHoldReq constructs an AP reset hold request. It carries no
// payload.
func NewAPResetHoldReq() APResetHoldReq { return APResetHoldReq{} }

func (APResetHoldReq) Info() Info   { return InfoAPResetHoldReq }
func (APResetHoldReq) Data() uint64 { return 0 }

// MSR returns the value to write to the GHCB MSR.
func (r APResetHoldReq) MSR() uint64 { return Compose(r.Info(), r.Data()) }

// Response decodes and validates the paired AP reset hold response.
// The hypervisor signals the release with a nonzero data section; a
// zero data section means the AP was never held and the wakeup cannot
// be trusted.
func (r APResetHoldReq) Response(raw uint64) (APResetHoldResp, error) {
	info, data := Split(raw)
	if err := checkInfo(info, InfoAPResetHoldResp); err != nil {
		return APResetHoldResp{}, err
	}
	if err := checkRange(data, 1, DataMask); err != nil {
		return APResetHoldResp{}, err
	}
	return APResetHoldResp{}, nil
}

// APResetHoldResp reports that the AP has been released from reset
// hold. The nonzero wake token carries no further meaning, so the
// response has no fields.
type APResetHoldResp struct{}
