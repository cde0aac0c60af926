package ghcbmsr

// Run VMPL layout within the data section. The request packs the
// target level at [27:20]; the response carries an error code at
// [51:20] with bits [19:0] reserved.
const (
	runVMPLShift    = 20
	runVMPLWidth    = 8
	runVMPLErrShift = 20
	runVMPLErrWidth = 32
)

var runVMPLPayloadMask = fieldMask(runVMPLErrShift, runVMPLErrWidth)

// RunVMPLReq asks the hypervisor to run the vCPU with the VMSA of the
// given VM permission level.
type RunVMPLReq struct {
	vmpl uint8
}

// NewRunVMPLReq constructs a VMPL switch request. The operand covers
// the whole 8-bit field, so construction cannot fail.
func NewRunVMPLReq(vmpl uint8) RunVMPLReq { return RunVMPLReq{vmpl: vmpl} }

// VMPL returns the requested permission level.
func (r RunVMPLReq) VMPL() uint8 { return r.vmpl }

func (r RunVMPLReq) Info() Info   { return InfoRunVMPLReq }
func (r RunVMPLReq) Data() uint64 { return insert(uint64(r.vmpl), runVMPLShift, runVMPLWidth) }

// MSR returns the value to write to the GHCB MSR.
func (r RunVMPLReq) MSR() uint64 { return Compose(r.Info(), r.Data()) }

// Response decodes and validates the paired VMPL switch response.
func (r RunVMPLReq) Response(raw uint64) (RunVMPLResp, error) {
	info, data := Split(raw)
	if err := checkInfo(info, InfoRunVMPLResp); err != nil {
		return RunVMPLResp{}, err
	}
	if err := checkReserved(data, runVMPLPayloadMask); err != nil {
		return RunVMPLResp{}, err
	}
	return RunVMPLResp{ErrorCode: uint32(extract(data, runVMPLErrShift, runVMPLErrWidth))}, nil
}

// RunVMPLResp reports the outcome of a VMPL switch. A nonzero
// ErrorCode means the hypervisor refused to run the requested level.
type RunVMPLResp struct {
	ErrorCode uint32
}
