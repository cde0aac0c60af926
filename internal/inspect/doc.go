// Package inspect exposes the MSR protocol catalog to tooling.
//
// Ownership boundary:
// - stable kind names and their operand schemas
// - string-operand parsing for CLI flags, TOML scenarios and HTTP
// - per-kind request building and scoped response rendering
// - the inspector HTTP service
//
// Decoding stays scoped here exactly as in the codec: every surface
// takes the expected kind (plus the operands that shape validation)
// and hands the raw value to that kind's decoder. There is no
// decode-anything endpoint.
package inspect
