package ghcbmsr

import "testing"

func TestComposeSplitRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		info Info
		data uint64
	}{
		{name: "zero", info: 0, data: 0},
		{name: "request with payload", info: InfoCPUIDReq, data: 0x8000001f00000},
		{name: "max sections", info: Info(0xfff), data: DataMask},
		{name: "termination", info: InfoTerminationReq, data: 0x10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := Compose(tc.info, tc.data)
			info, data := Split(raw)
			if info != tc.info || data != tc.data {
				t.Fatalf("round trip: got info=%#05x data=%#x, want info=%#05x data=%#x",
					uint16(info), data, uint16(tc.info), tc.data)
			}
		})
	}
}

func TestComposeDiscardsOversizedSections(t *testing.T) {
	raw := Compose(Info(0x1002), DataMask+1)
	info, data := Split(raw)
	if info != Info(0x002) {
		t.Fatalf("info not masked: %#05x", uint16(info))
	}
	if data != 0 {
		t.Fatalf("data not masked: %#x", data)
	}
}

func TestSplitCoversEveryBit(t *testing.T) {
	info, data := Split(^uint64(0))
	if info != Info(InfoMask) {
		t.Fatalf("info: got %#05x, want %#05x", uint16(info), uint16(InfoMask))
	}
	if data != DataMask {
		t.Fatalf("data: got %#x, want %#x", data, DataMask)
	}
}

func TestSectionMasksAreDisjointAndComplete(t *testing.T) {
	if InfoMask&(DataMask<<InfoWidth) != 0 {
		t.Fatalf("sections overlap")
	}
	if InfoMask|DataMask<<InfoWidth != ^uint64(0) {
		t.Fatalf("sections do not cover the register")
	}
}
