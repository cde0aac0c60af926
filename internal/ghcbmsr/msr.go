package ghcbmsr

import "fmt"

// The GHCB MSR carries two sections: GHCBInfo in bits [11:0] selects
// the protocol operation, GHCBData in bits [63:12] carries its payload.
// Field positions in this package are bit offsets within the data
// section, matching how the protocol tables state them.
const (
	InfoWidth = 12
	DataWidth = 52

	InfoMask uint64 = 1<<InfoWidth - 1
	DataMask uint64 = 1<<DataWidth - 1
)

// Compose packs an info code and a data section into one MSR value.
// Bits outside the section widths are discarded; request constructors
// reject oversized operands before encoding ever sees them.
func Compose(info Info, data uint64) uint64 {
	return (data&DataMask)<<InfoWidth | uint64(info)&InfoMask
}

// Split separates a raw MSR value into its info code and data section.
// Pure bit extraction, no interpretation.
func Split(raw uint64) (Info, uint64) {
	return Info(raw & InfoMask), raw >> InfoWidth
}

// fieldMask returns the data-section mask of a field width bits wide
// starting at bit lo.
func fieldMask(lo, width uint) uint64 {
	return (1<<width - 1) << lo
}

// extract reads the field width bits wide starting at data-section bit
// lo.
func extract(data uint64, lo, width uint) uint64 {
	return data >> lo & (1<<width - 1)
}

// insert places a value into the field width bits wide starting at
// data-section bit lo.
func insert(value uint64, lo, width uint) uint64 {
	return (value & (1<<width - 1)) << lo
}

// checkInfo rejects any response code other than the one paired with
// the issuing request. Unknown codes, request codes and responses of
// another kind all fail the same way.
func checkInfo(got, want Info) error {
	if got != want {
		return fmt.Errorf("%w: got %#05x, want %#05x", ErrUnexpectedResponseCode, uint16(got), uint16(want))
	}
	return nil
}

// checkReserved rejects a data section with any bit set outside the
// payload mask of the response kind.
func checkReserved(data, payloadMask uint64) error {
	if stray := data &^ payloadMask; stray != 0 {
		return fmt.Errorf("%w: stray bits %#x outside payload mask %#x", ErrReservedBitsSet, stray, payloadMask)
	}
	return nil
}

// checkRange rejects a field value outside [lo, hi].
func checkRange(value, lo, hi uint64) error {
	if value < lo || value > hi {
		return fmt.Errorf("%w: %#x not in [%#x, %#x]", ErrValueOutOfRange, value, lo, hi)
	}
	return nil
}
