package ghcbmsr

import "testing"

func catalogRequests(t *testing.T) []Request {
	t.Helper()
	cpuid, err := NewCPUIDReq(0x8000001f, RegEAX)
	if err != nil {
		t.Fatalf("cpuid request: %v", err)
	}
	register, err := NewRegisterGHCBReq(0x12345)
	if err != nil {
		t.Fatalf("register request: %v", err)
	}
	pageState, err := NewPageStateReq(0x1234, PageOpShared)
	if err != nil {
		t.Fatalf("page state request: %v", err)
	}
	term, err := NewTerminationReq(0, TermGeneral)
	if err != nil {
		t.Fatalf("termination request: %v", err)
	}
	return []Request{
		NewSEVInfoReq(),
		cpuid,
		NewAPResetHoldReq(),
		NewPrefGHCBGPAReq(),
		register,
		pageState,
		NewRunVMPLReq(2),
		NewFeatureSupportReq(),
		term,
	}
}

func TestEncodingIsDeterministic(t *testing.T) {
	for _, req := range catalogRequests(t) {
		first, second := req.MSR(), req.MSR()
		if first != second {
			t.Fatalf("%s: msr not stable: %#x vs %#x", req.Info(), first, second)
		}
	}
}

func TestMSRComposesInfoAndData(t *testing.T) {
	for _, req := range catalogRequests(t) {
		if got, want := req.MSR(), Compose(req.Info(), req.Data()); got != want {
			t.Fatalf("%s: msr %#x does not match sections %#x", req.Info(), got, want)
		}
		info, data := Split(req.MSR())
		if info != req.Info() || data != req.Data() {
			t.Fatalf("%s: split got info=%#05x data=%#x", req.Info(), uint16(info), data)
		}
	}
}

func TestResponseDecodeIsDeterministic(t *testing.T) {
	cpuid, err := NewCPUIDReq(0x8000001f, RegEBX)
	if err != nil {
		t.Fatalf("cpuid request: %v", err)
	}
	register, err := NewRegisterGHCBReq(0x12345)
	if err != nil {
		t.Fatalf("register request: %v", err)
	}
	pageState, err := NewPageStateReq(0x1234, PageOpPrivate)
	if err != nil {
		t.Fatalf("page state request: %v", err)
	}
	term, err := NewTerminationReq(0, TermGeneral)
	if err != nil {
		t.Fatalf("termination request: %v", err)
	}

	tests := []struct {
		name   string
		raw    uint64
		decode func(raw uint64) (any, error)
	}{
		{
			name:   "sev_info",
			raw:    Compose(InfoSEVInfoResp, 2<<sevInfoMaxVerShift|1<<sevInfoMinVerShift|0x33<<sevInfoEncBitShift),
			decode: func(raw uint64) (any, error) { return NewSEVInfoReq().Response(raw) },
		},
		{
			name:   "cpuid",
			raw:    Compose(InfoCPUIDResp, 0xdeadbeef<<cpuidFunctionShift|uint64(RegEBX)<<cpuidRegShift),
			decode: func(raw uint64) (any, error) { return cpuid.Response(raw) },
		},
		{
			name:   "ap_reset_hold",
			raw:    Compose(InfoAPResetHoldResp, 0x42),
			decode: func(raw uint64) (any, error) { return NewAPResetHoldReq().Response(raw) },
		},
		{
			name:   "pref_ghcb_gpa",
			raw:    Compose(InfoPrefGHCBGPAResp, 0x12345),
			decode: func(raw uint64) (any, error) { return NewPrefGHCBGPAReq().Response(raw) },
		},
		{
			name:   "register_ghcb",
			raw:    Compose(InfoRegisterGHCBResp, 0x12345),
			decode: func(raw uint64) (any, error) { return register.Response(raw) },
		},
		{
			name:   "page_state",
			raw:    Compose(InfoPageStateResp, 0x55<<pageStateErrShift),
			decode: func(raw uint64) (any, error) { return pageState.Response(raw) },
		},
		{
			name:   "run_vmpl",
			raw:    Compose(InfoRunVMPLResp, 0x2a<<runVMPLErrShift),
			decode: func(raw uint64) (any, error) { return NewRunVMPLReq(2).Response(raw) },
		},
		{
			name:   "feature_support",
			raw:    Compose(InfoFeatureSupportResp, 0xb),
			decode: func(raw uint64) (any, error) { return NewFeatureSupportReq().Response(raw) },
		},
		{
			name:   "termination",
			raw:    term.MSR(),
			decode: func(raw uint64) (any, error) { return term.Response(raw) },
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// the well-formed raw, the same raw with bit 63 flipped,
			// and an alien code
			for _, raw := range []uint64{tc.raw, tc.raw ^ 1 << 63, Compose(Info(0x3ff), 0)} {
				a, errA := tc.decode(raw)
				b, errB := tc.decode(raw)
				if a != b {
					t.Fatalf("raw %#x: results diverge: %+v vs %+v", raw, a, b)
				}
				if (errA == nil) != (errB == nil) {
					t.Fatalf("raw %#x: errors diverge: %v vs %v", raw, errA, errB)
				}
				if errA != nil && errA.Error() != errB.Error() {
					t.Fatalf("raw %#x: error text diverges: %q vs %q", raw, errA, errB)
				}
			}
		})
	}
}

func TestProtocolCodesAreUnique(t *testing.T) {
	codes := []Info{
		InfoGHCBGPA,
		InfoSEVInfoResp, InfoSEVInfoReq,
		InfoCPUIDReq, InfoCPUIDResp,
		InfoAPResetHoldReq, InfoAPResetHoldResp,
		InfoPrefGHCBGPAReq, InfoPrefGHCBGPAResp,
		InfoRegisterGHCBReq, InfoRegisterGHCBResp,
		InfoPageStateReq, InfoPageStateResp,
		InfoRunVMPLReq, InfoRunVMPLResp,
		InfoFeatureSupportReq, InfoFeatureSupportResp,
		InfoTerminationReq,
	}
	seen := make(map[Info]bool, len(codes))
	for _, code := range codes {
		if code > Info(InfoMask) {
			t.Fatalf("code %#05x wider than the info section", uint16(code))
		}
		if seen[code] {
			t.Fatalf("duplicate code %#05x", uint16(code))
		}
		seen[code] = true
	}
}
