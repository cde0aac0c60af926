package exchange

import (
	"errors"
	"testing"

	"github.com/danmuck/ghcbctl/internal/ghcbmsr"
	"github.com/danmuck/ghcbctl/internal/testutil/testlog"
)

func TestDoRunsFullExchange(t *testing.T) {
	testlog.Start(t)
	// max=2 min=1 enc_bit=0x33
	script := NewScript(0x2000133000001)
	d := NewDriver(script)

	resp, err := Do(d, ghcbmsr.NewSEVInfoReq())
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if resp.MaxVersion != 2 || resp.MinVersion != 1 || resp.EncBit != 0x33 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	writes := script.Writes()
	if len(writes) != 1 || writes[0] != 0x002 {
		t.Fatalf("unexpected writes: %#x", writes)
	}
	if script.Exits() != 1 {
		t.Fatalf("exits: got %d, want 1", script.Exits())
	}
}

func TestDoSequencesExchanges(t *testing.T) {
	testlog.Start(t)
	register, err := ghcbmsr.NewRegisterGHCBReq(0x12345)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	script := NewScript(
		0x2000133000001, // sev info: max=2 min=1 enc_bit=0x33
		0x12345013,      // registration echo
	)
	d := NewDriver(script)

	if _, err := Do(d, ghcbmsr.NewSEVInfoReq()); err != nil {
		t.Fatalf("sev info: %v", err)
	}
	reg, err := Do(d, register)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.GFN != 0x12345 {
		t.Fatalf("gfn: got %#x, want 0x12345", reg.GFN)
	}
	if script.Remaining() != 0 {
		t.Fatalf("script not drained: %d left", script.Remaining())
	}
}

func TestDoPropagatesChannelError(t *testing.T) {
	testlog.Start(t)
	d := NewDriver(NewScript())

	_, err := Do(d, ghcbmsr.NewSEVInfoReq())
	if !errors.Is(err, ErrScriptExhausted) {
		t.Fatalf("expected ErrScriptExhausted, got %v", err)
	}
}

func TestDoPropagatesDecodeRejection(t *testing.T) {
	testlog.Start(t)
	// cpuid response answered to a sev info request
	script := NewScript(0xdeadbeef40000005)
	d := NewDriver(script)

	_, err := Do(d, ghcbmsr.NewSEVInfoReq())
	if !errors.Is(err, ghcbmsr.ErrUnexpectedResponseCode) {
		t.Fatalf("expected ErrUnexpectedResponseCode, got %v", err)
	}
}

func TestRoundTripReturnsRawValue(t *testing.T) {
	testlog.Start(t)
	script := NewScript(0xfffffffffffff011)
	d := NewDriver(script)

	raw, err := d.RoundTrip(ghcbmsr.NewPrefGHCBGPAReq())
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if raw != 0xfffffffffffff011 {
		t.Fatalf("raw: got %#x", raw)
	}
}
