package exchange

// Channel is the seam to the shared register a guest exchanges MSR
// protocol values through. Real guests back it with the GHCB MSR and
// the VMGEXIT instruction; tests and replay tooling back it with a
// script.
type Channel interface {
	// WriteMSR stores value in the register.
	WriteMSR(value uint64) error
	// Exit hands control to the hypervisor, which may overwrite the
	// register before control returns.
	Exit() error
	// ReadMSR returns the current register value.
	ReadMSR() (uint64, error)
}
