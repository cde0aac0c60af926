// Package exchange drives request/response cycles over the GHCB MSR.
//
// Ownership boundary:
// - the Channel seam to the shared register (write, exit, read back)
// - the Driver running one write/exit/read cycle per request
// - the scripted channel used by tests and replay tooling
//
// The register is per-vCPU state and one exchange occupies it from
// write to read-back. The Driver does not serialize callers; whoever
// owns the channel serializes exchanges on it.
package exchange
