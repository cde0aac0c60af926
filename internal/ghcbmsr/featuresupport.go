package ghcbmsr

// Hypervisor feature bits reported by a feature support exchange.
const (
	FeatSNP                   uint64 = 1 << 0
	FeatSNPAPCreation         uint64 = 1 << 1
	FeatSNPRestrictedInj      uint64 = 1 << 2
	FeatSNPRestrictedInjTimer uint64 = 1 << 3
)

// FeatureSupportReq asks the hypervisor which features it supports.
type FeatureSupportReq struct{}

// NewFeatureSupportReq constructs a feature support request. It
// carries no payload.
func NewFeatureSupportReq() FeatureSupportReq { return FeatureSupportReq{} }

func (FeatureSupportReq) Info() Info   { return InfoFeatureSupportReq }
func (FeatureSupportReq) Data() uint64 { return 0 }

// MSR returns the value to write to the GHCB MSR.
func (r FeatureSupportReq) MSR() uint64 { return Compose(r.Info(), r.Data()) }

// Response decodes and validates the paired feature support response.
// Every data bit is part of the bitmap, so only the code is checked.
func (r FeatureSupportReq) Response(raw uint64) (FeatureSupportResp, error) {
	info, data := Split(raw)
	if err := checkInfo(info, InfoFeatureSupportResp); err != nil {
		return FeatureSupportResp{}, err
	}
	return FeatureSupportResp{Features: data}, nil
}

// FeatureSupportResp carries the hypervisor feature bitmap.
type FeatureSupportResp struct {
	Features uint64
}

// Has reports whether every feature bit in mask is set.
func (r FeatureSupportResp) Has(mask uint64) bool { return r.Features&mask == mask }
