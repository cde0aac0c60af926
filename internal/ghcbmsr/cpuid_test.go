package ghcbmsr

import (
	"errors"
	"testing"
)

func TestCPUIDReqEncoding(t *testing.T) {
	req, err := NewCPUIDReq(0x8000001f, RegEAX)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if got := req.MSR(); got != 0x8000001f00000004 {
		t.Fatalf("msr: got %#x, want 0x8000001f00000004", got)
	}

	req, err = NewCPUIDReq(0x1, RegECX)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if got := req.MSR(); got != 0x180000004 {
		t.Fatalf("msr: got %#x, want 0x180000004", got)
	}
}

func TestCPUIDReqRejectsUndefinedRegister(t *testing.T) {
	if _, err := NewCPUIDReq(0x1, CPUIDReg(4)); !errors.Is(err, ErrInvalidOperand) {
		t.Fatalf("expected ErrInvalidOperand, got %v", err)
	}
}

func TestCPUIDResponseRoundTrip(t *testing.T) {
	raw := Compose(InfoCPUIDResp, 0xdeadbeef<<cpuidFunctionShift|uint64(RegEBX)<<cpuidRegShift)
	if raw != 0xdeadbeef40000005 {
		t.Fatalf("test vector drifted: %#x", raw)
	}
	req, err := NewCPUIDReq(0x8000001f, RegEBX)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := req.Response(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Value != 0xdeadbeef || resp.Reg != RegEBX {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCPUIDResponseReservedBitsRejected(t *testing.T) {
	req, err := NewCPUIDReq(0x1, RegEAX)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	base := Compose(InfoCPUIDResp, 0x1234<<cpuidFunctionShift)
	for bit := uint(0); bit < cpuidRegShift; bit++ {
		raw := base | uint64(1)<<(InfoWidth+bit)
		if _, err := req.Response(raw); !errors.Is(err, ErrReservedBitsSet) {
			t.Fatalf("reserved bit %d: expected ErrReservedBitsSet, got %v", bit, err)
		}
	}
}

func TestCPUIDResponseWrongCodeRejected(t *testing.T) {
	req, err := NewCPUIDReq(0x1, RegEAX)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	raw := Compose(InfoCPUIDReq, 0x1<<cpuidFunctionShift)
	if _, err := req.Response(raw); !errors.Is(err, ErrUnexpectedResponseCode) {
		t.Fatalf("expected ErrUnexpectedResponseCode, got %v", err)
	}
}
