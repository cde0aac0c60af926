package ghcbmsr

import "fmt"

// RegisterGHCBReq tells the hypervisor the guest frame number of the
// GHCB page for the issuing vCPU (GPA = GFN << 12).
type RegisterGHCBReq struct {
	gfn uint64
}

// NewRegisterGHCBReq constructs a GHCB registration request. The GFN
// must fit the data section.
func NewRegisterGHCBReq(gfn uint64) (RegisterGHCBReq, error) {
	if gfn > DataMask {
		return RegisterGHCBReq{}, fmt.Errorf("%w: gfn %#x wider than %d bits", ErrInvalidOperand, gfn, DataWidth)
	}
	return RegisterGHCBReq{gfn: gfn}, nil
}

// GFN returns the frame number the request registers.
func (r RegisterGHCBReq) GFN() uint64 { return r.gfn }

func (r RegisterGHCBReq) Info() Info   { return InfoRegisterGHCBReq }
func (r RegisterGHCBReq) Data() uint64 { return r.gfn }

// MSR returns the value to write to the GHCB MSR.
func (r RegisterGHCBReq) MSR() uint64 { return Compose(r.Info(), r.Data()) }

// Response decodes and validates the paired registration response.
// Beyond the code match it requires the hypervisor to echo the
// requested GFN; a diverging echo means the registration did not take
// effect for this page.
func (r RegisterGHCBReq) Response(raw uint64) (RegisterGHCBResp, error) {
	info, data := Split(raw)
	if err := checkInfo(info, InfoRegisterGHCBResp); err != nil {
		return RegisterGHCBResp{}, err
	}
	if data != r.gfn {
		return RegisterGHCBResp{}, EchoMismatchError{Got: data, Want: r.gfn}
	}
	return RegisterGHCBResp{GFN: data}, nil
}

// RegisterGHCBResp confirms the frame number the hypervisor registered.
type RegisterGHCBResp struct {
	GFN uint64
}
