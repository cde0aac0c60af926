package ghcbmsr

import "fmt"

// CPUIDReg selects which register of a CPUID function an exchange
// fetches. The protocol returns one register per exchange.
type CPUIDReg uint8

const (
	RegEAX CPUIDReg = 0
	RegEBX CPUIDReg = 1
	RegECX CPUIDReg = 2
	RegEDX CPUIDReg = 3
)

func (r CPUIDReg) String() string {
	switch r {
	case RegEAX:
		return "eax"
	case RegEBX:
		return "ebx"
	case RegECX:
		return "ecx"
	case RegEDX:
		return "edx"
	}
	return fmt.Sprintf("reg(%d)", uint8(r))
}

// CPUID layout within the data section, shared by request and response.
// The response echoes the register selector; its bits [17:0] are
// reserved.
const (
	cpuidRegShift      = 18
	cpuidRegWidth      = 2
	cpuidFunctionShift = 20
	cpuidFunctionWidth = 32
)

var cpuidPayloadMask = fieldMask(cpuidRegShift, cpuidRegWidth) |
	fieldMask(cpuidFunctionShift, cpuidFunctionWidth)

// CPUIDReq asks the hypervisor for one register of one CPUID function.
// Early boot uses this before the GHCB page itself is mapped.
type CPUIDReq struct {
	function uint32
	reg      CPUIDReg
}

// NewCPUIDReq constructs a CPUID request for one register of the given
// function. The selector must name one of the four registers.
func NewCPUIDReq(function uint32, reg CPUIDReg) (CPUIDReq, error) {
	if reg > RegEDX {
		return CPUIDReq{}, fmt.Errorf("%w: cpuid register selector %d", ErrInvalidOperand, uint8(reg))
	}
	return CPUIDReq{function: function, reg: reg}, nil
}

// Function returns the requested CPUID function.
func (r CPUIDReq) Function() uint32 { return r.function }

// Reg returns the requested register selector.
func (r CPUIDReq) Reg() CPUIDReg { return r.reg }

func (r CPUIDReq) Info() Info { return InfoCPUIDReq }

func (r CPUIDReq) Data() uint64 {
	return insert(uint64(r.function), cpuidFunctionShift, cpuidFunctionWidth) |
		insert(uint64(r.reg), cpuidRegShift, cpuidRegWidth)
}

// MSR returns the value to write to the GHCB MSR.
func (r CPUIDReq) MSR() uint64 { return Compose(r.Info(), r.Data()) }

// Response decodes and validates the paired CPUID response.
func (r CPUIDReq) Response(raw uint64) (CPUIDResp, error) {
	info, data := Split(raw)
	if err := checkInfo(info, InfoCPUIDResp); err != nil {
		return CPUIDResp{}, err
	}
	if err := checkReserved(data, cpuidPayloadMask); err != nil {
		return CPUIDResp{}, err
	}
	return CPUIDResp{
		Value: uint32(extract(data, cpuidFunctionShift, cpuidFunctionWidth)),
		Reg:   CPUIDReg(extract(data, cpuidRegShift, cpuidRegWidth)),
	}, nil
}

// CPUIDResp carries the value of one CPUID register.
type CPUIDResp struct {
	// Value is the content of the returned register.
	Value uint32
	// Reg identifies the register the value belongs to.
	Reg CPUIDReg
}
