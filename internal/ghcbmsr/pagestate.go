package ghcbmsr

import "fmt"

// PageOp is the target state of a page state change.
type PageOp uint8

const (
	// PageOpPrivate converts the page to guest-private.
	PageOpPrivate PageOp = 1
	// PageOpShared converts the page to hypervisor-shared.
	PageOpShared PageOp = 2
)

func (op PageOp) String() string {
	switch op {
	case PageOpPrivate:
		return "private"
	case PageOpShared:
		return "shared"
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// Page state change layout within the data section. The request packs
// the GFN at [39:0] and the operation at [43:40]; the response carries
// an error code at [51:20] with bits [19:0] reserved.
const (
	pageStateGFNShift = 0
	pageStateGFNWidth = 40
	pageStateOpShift  = 40
	pageStateOpWidth  = 4
	pageStateErrShift = 20
	pageStateErrWidth = 32
)

const maxPageStateGFN = uint64(1)<<pageStateGFNWidth - 1

var pageStatePayloadMask = fieldMask(pageStateErrShift, pageStateErrWidth)

// PageStateReq asks the hypervisor to move one page, identified by its
// guest frame number, to the given state. The MSR form changes a
// single page per exchange.
type PageStateReq struct {
	gfn uint64
	op  PageOp
}

// NewPageStateReq constructs a page state change request. The GFN must
// fit its 40-bit field and op must be a defined operation.
func NewPageStateReq(gfn uint64, op PageOp) (PageStateReq, error) {
	if gfn > maxPageStateGFN {
		return PageStateReq{}, fmt.Errorf("%w: gfn %#x wider than %d bits", ErrInvalidOperand, gfn, pageStateGFNWidth)
	}
	if op != PageOpPrivate && op != PageOpShared {
		return PageStateReq{}, fmt.Errorf("%w: page state op %d", ErrInvalidOperand, uint8(op))
	}
	return PageStateReq{gfn: gfn, op: op}, nil
}

// GFN returns the frame number the request changes.
func (r PageStateReq) GFN() uint64 { return r.gfn }

// Op returns the requested target state.
func (r PageStateReq) Op() PageOp { return r.op }

func (r PageStateReq) Info() Info { return InfoPageStateReq }

func (r PageStateReq) Data() uint64 {
	return insert(uint64(r.op), pageStateOpShift, pageStateOpWidth) |
		insert(r.gfn, pageStateGFNShift, pageStateGFNWidth)
}

// MSR returns the value to write to the GHCB MSR.
func (r PageStateReq) MSR() uint64 { return Compose(r.Info(), r.Data()) }

// Response decodes and validates the paired page state response.
func (r PageStateReq) Response(raw uint64) (PageStateResp, error) {
	info, data := Split(raw)
	if err := checkInfo(info, InfoPageStateResp); err != nil {
		return PageStateResp{}, err
	}
	if err := checkReserved(data, pageStatePayloadMask); err != nil {
		return PageStateResp{}, err
	}
	return PageStateResp{ErrorCode: uint32(extract(data, pageStateErrShift, pageStateErrWidth))}, nil
}

// PageStateResp reports the outcome of a page state change. A nonzero
// ErrorCode means the page did not change state and the guest must not
// use it in the requested mode.
type PageStateResp struct {
	ErrorCode uint32
}
