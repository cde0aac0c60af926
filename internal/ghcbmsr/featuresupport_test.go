package ghcbmsr

import (
	"errors"
	"testing"
)

func TestFeatureSupportReqEncoding(t *testing.T) {
	if got := NewFeatureSupportReq().MSR(); got != 0x080 {
		t.Fatalf("msr: got %#x, want 0x080", got)
	}
}

func TestFeatureSupportResponseBitmap(t *testing.T) {
	resp, err := NewFeatureSupportReq().Response(0xb081)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Features != 0xb {
		t.Fatalf("features: got %#x, want 0xb", resp.Features)
	}
	if !resp.Has(FeatSNP) {
		t.Fatalf("expected SNP support")
	}
	if !resp.Has(FeatSNP | FeatSNPAPCreation) {
		t.Fatalf("expected SNP and AP creation support")
	}
	if resp.Has(FeatSNPRestrictedInj) {
		t.Fatalf("restricted injection must not be reported")
	}
	if resp.Has(FeatSNP | FeatSNPRestrictedInj) {
		t.Fatalf("Has must require every bit in the mask")
	}
}

func TestFeatureSupportResponseAllBitsAreMeaningful(t *testing.T) {
	resp, err := NewFeatureSupportReq().Response(Compose(InfoFeatureSupportResp, DataMask))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Features != DataMask {
		t.Fatalf("features: got %#x, want %#x", resp.Features, DataMask)
	}
}

func TestFeatureSupportResponseWrongCodeRejected(t *testing.T) {
	if _, err := NewFeatureSupportReq().Response(Compose(InfoFeatureSupportReq, 0)); !errors.Is(err, ErrUnexpectedResponseCode) {
		t.Fatalf("expected ErrUnexpectedResponseCode, got %v", err)
	}
}
