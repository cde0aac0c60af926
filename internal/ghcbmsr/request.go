package ghcbmsr

// Request is implemented by every request kind in the catalog.
type Request interface {
	// Info returns the request's protocol code.
	Info() Info
	// Data returns the request's data section.
	Data() uint64
	// MSR returns the value to write to the GHCB MSR.
	MSR() uint64
}

// RequestFor ties a request kind to its paired response type. Decoding
// a raw register value goes through the issuing request's Response
// method and nowhere else, so the pairing fixed by the protocol is also
// fixed in the type system.
type RequestFor[R any] interface {
	Request
	Response(raw uint64) (R, error)
}

// The full catalog, with each pairing checked at compile time.
var (
	_ RequestFor[SEVInfoResp]        = SEVInfoReq{}
	_ RequestFor[CPUIDResp]          = CPUIDReq{}
	_ RequestFor[APResetHoldResp]    = APResetHoldReq{}
	_ RequestFor[PrefGHCBGPAResp]    = PrefGHCBGPAReq{}
	_ RequestFor[RegisterGHCBResp]   = RegisterGHCBReq{}
	_ RequestFor[PageStateResp]      = PageStateReq{}
	_ RequestFor[RunVMPLResp]        = RunVMPLReq{}
	_ RequestFor[FeatureSupportResp] = FeatureSupportReq{}
	_ RequestFor[TerminationResp]    = TerminationReq{}
)
