package ghcbmsr

import (
	"errors"
	"testing"
)

func TestSEVInfoReqEncoding(t *testing.T) {
	req := NewSEVInfoReq()
	if got := req.MSR(); got != 0x002 {
		t.Fatalf("msr: got %#x, want 0x002", got)
	}
}

func TestSEVInfoResponseRoundTrip(t *testing.T) {
	// max=2 min=1 enc_bit=0x33
	raw := Compose(InfoSEVInfoResp, 2<<sevInfoMaxVerShift|1<<sevInfoMinVerShift|0x33<<sevInfoEncBitShift)
	if raw != 0x2000133000001 {
		t.Fatalf("test vector drifted: %#x", raw)
	}
	resp, err := NewSEVInfoReq().Response(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.MaxVersion != 2 || resp.MinVersion != 1 || resp.EncBit != 0x33 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestSEVInfoResponseReservedBitsRejected(t *testing.T) {
	base := Compose(InfoSEVInfoResp, 2<<sevInfoMaxVerShift|1<<sevInfoMinVerShift|0x33<<sevInfoEncBitShift)
	for bit := uint(0); bit < sevInfoEncBitShift; bit++ {
		raw := base | uint64(1)<<(InfoWidth+bit)
		if _, err := NewSEVInfoReq().Response(raw); !errors.Is(err, ErrReservedBitsSet) {
			t.Fatalf("reserved bit %d: expected ErrReservedBitsSet, got %v", bit, err)
		}
	}
}

func TestSEVInfoResponseWrongCodeRejected(t *testing.T) {
	for _, info := range []Info{InfoSEVInfoReq, InfoCPUIDResp, Info(0x3ff)} {
		raw := Compose(info, 2<<sevInfoMaxVerShift)
		if _, err := NewSEVInfoReq().Response(raw); !errors.Is(err, ErrUnexpectedResponseCode) {
			t.Fatalf("code %#05x: expected ErrUnexpectedResponseCode, got %v", uint16(info), err)
		}
	}
}

func TestSEVInfoDecodeIsDeterministic(t *testing.T) {
	raw := Compose(InfoSEVInfoResp, 2<<sevInfoMaxVerShift|1<<sevInfoMinVerShift|0x33<<sevInfoEncBitShift)
	a, errA := NewSEVInfoReq().Response(raw)
	b, errB := NewSEVInfoReq().Response(raw)
	if a != b || errA != nil || errB != nil {
		t.Fatalf("decode not deterministic: %+v/%v vs %+v/%v", a, errA, b, errB)
	}
}
