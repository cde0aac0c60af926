package ghcbmsr

// NoPreferredGFN is the all-ones data section the hypervisor returns
// when it has no preference for the GHCB placement.
const NoPreferredGFN uint64 = DataMask

// PrefGHCBGPAReq asks the hypervisor where it would prefer the guest
// to place the GHCB page.
type PrefGHCBGPAReq struct{}

// NewPrefGHCBGPAReq constructs a preferred GHCB GPA request. It
// carries no payload.
func NewPrefGHCBGPAReq() PrefGHCBGPAReq { return PrefGHCBGPAReq{} }

func (PrefGHCBGPAReq) Info() Info   { return InfoPrefGHCBGPAReq }
func (PrefGHCBGPAReq) Data() uint64 { return 0 }

// MSR returns the value to write to the GHCB MSR.
func (r PrefGHCBGPAReq) MSR() uint64 { return Compose(r.Info(), r.Data()) }

// Response decodes and validates the paired preferred GHCB GPA
// response.
func (r PrefGHCBGPAReq) Response(raw uint64) (PrefGHCBGPAResp, error) {
	info, data := Split(raw)
	if err := checkInfo(info, InfoPrefGHCBGPAResp); err != nil {
		return PrefGHCBGPAResp{}, err
	}
	return PrefGHCBGPAResp{GFN: data}, nil
}

// PrefGHCBGPAResp carries the hypervisor's preferred guest frame
// number for the GHCB page (GPA = GFN << 12).
type PrefGHCBGPAResp struct {
	GFN uint64
}

// HasPreference reports whether the hypervisor stated a preference at
// all. A guest is free to ignore a stated preference but must handle
// the sentinel.
func (r PrefGHCBGPAResp) HasPreference() bool { return r.GFN != NoPreferredGFN }
