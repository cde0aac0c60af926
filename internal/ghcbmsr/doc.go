// Package ghcbmsr owns the wire contract of the GHCB MSR protocol: the
// value layout of the shared 64-bit register, the request catalog, and
// the decoding and structural validation of hypervisor responses.
//
// Ownership boundary:
// - MSR value layout (info/data split, field masks, field placement)
// - request construction and encoding
// - response decoding, code matching and reserved-bit enforcement
//
// The package performs no I/O and holds no state. Callers write MSR()
// values to the GHCB MSR, trigger VMGEXIT, read the register back, and
// hand the raw value to the issuing request's Response method. That
// method is the only path from a raw register value to a typed
// response; there is no decode-anything entry point, so a response can
// never be interpreted against the wrong request kind.
package ghcbmsr
