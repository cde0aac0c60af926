package ghcbmsr

import (
	"errors"
	"testing"
)

func TestRunVMPLReqEncoding(t *testing.T) {
	if got := NewRunVMPLReq(2).MSR(); got != 0x200000016 {
		t.Fatalf("msr: got %#x, want 0x200000016", got)
	}
	if got := NewRunVMPLReq(0xff).MSR(); got != Compose(InfoRunVMPLReq, 0xff<<runVMPLShift) {
		t.Fatalf("msr: got %#x", got)
	}
}

func TestRunVMPLResponseCarriesErrorCode(t *testing.T) {
	resp, err := NewRunVMPLReq(2).Response(0x2a00000017)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ErrorCode != 0x2a {
		t.Fatalf("error code: got %#x, want 0x2a", resp.ErrorCode)
	}
}

func TestRunVMPLResponseSuccessIsZero(t *testing.T) {
	resp, err := NewRunVMPLReq(0).Response(Compose(InfoRunVMPLResp, 0))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ErrorCode != 0 {
		t.Fatalf("error code: got %#x, want 0", resp.ErrorCode)
	}
}

func TestRunVMPLResponseReservedBitsRejected(t *testing.T) {
	for bit := uint(0); bit < runVMPLErrShift; bit++ {
		raw := Compose(InfoRunVMPLResp, 0) | uint64(1)<<(InfoWidth+bit)
		if _, err := NewRunVMPLReq(1).Response(raw); !errors.Is(err, ErrReservedBitsSet) {
			t.Fatalf("reserved bit %d: expected ErrReservedBitsSet, got %v", bit, err)
		}
	}
}

func TestRunVMPLResponseWrongCodeRejected(t *testing.T) {
	if _, err := NewRunVMPLReq(1).Response(Compose(InfoRunVMPLReq, 0)); !errors.Is(err, ErrUnexpectedResponseCode) {
		t.Fatalf("expected ErrUnexpectedResponseCode, got %v", err)
	}
}
