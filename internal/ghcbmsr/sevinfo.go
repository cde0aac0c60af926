package ghcbmsr

// SEV info response layout within the data section. Bits [11:0] are
// reserved.
const (
	sevInfoEncBitShift = 12
	sevInfoEncBitWidth = 8
	sevInfoMinVerShift = 20
	sevInfoMinVerWidth = 16
	sevInfoMaxVerShift = 36
	sevInfoMaxVerWidth = 16
)

var sevInfoPayloadMask = fieldMask(sevInfoEncBitShift, sevInfoEncBitWidth) |
	fieldMask(sevInfoMinVerShift, sevInfoMinVerWidth) |
	fieldMask(sevInfoMaxVerShift, sevInfoMaxVerWidth)

// SEVInfoReq asks the hypervisor for the capability information the
// guest needs to negotiate a GHCB protocol version.
type SEVInfoReq struct{}

// NewSEVInfoReq constructs a SEV information request. It carries no
// payload.
func NewSEVInfoReq() SEVInfoReq { return SEVInfoReq{} }

func (SEVInfoReq) Info() Info   { return InfoSEVInfoReq }
func (SEVInfoReq) Data() uint64 { return 0 }

// MSR returns the value to write to the GHCB MSR.
func (r SEVInfoReq) MSR() uint64 { return Compose(r.Info(), r.Data()) }

// Response decodes and validates the paired SEV information response.
func (r SEVInfoReq) Response(raw uint64) (SEVInfoResp, error) {
	info, data := Split(raw)
	if err := checkInfo(info, InfoSEVInfoResp); err != nil {
		return SEVInfoResp{}, err
	}
	if err := checkReserved(data, sevInfoPayloadMask); err != nil {
		return SEVInfoResp{}, err
	}
	return SEVInfoResp{
		MaxVersion: uint16(extract(data, sevInfoMaxVerShift, sevInfoMaxVerWidth)),
		MinVersion: uint16(extract(data, sevInfoMinVerShift, sevInfoMinVerWidth)),
		EncBit:     uint8(extract(data, sevInfoEncBitShift, sevInfoEncBitWidth)),
	}, nil
}

// SEVInfoResp carries the hypervisor's GHCB protocol capabilities.
type SEVInfoResp struct {
	// MaxVersion is the highest GHCB protocol version the hypervisor
	// supports.
	MaxVersion uint16
	// MinVersion is the lowest GHCB protocol version the hypervisor
	// supports.
	MinVersion uint16
	// EncBit is the page table bit position of the memory encryption
	// bit, needed to map the GHCB page decrypted.
	EncBit uint8
}
