package lessavc

import (
	"bytes"
	"testing"
)

func TestUserDataUnregisteredSmallPayload(t *testing.T) {
	u := UserDataUnregistered{
		UUID:    [16]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
		Payload: []byte("hello"),
	}
	rbsp := u.toRBSP()

	if rbsp.data[0] != seiPayloadTypeUserDataUnregistered {
		t.Errorf("payload_type byte = %#x, want %#x", rbsp.data[0], seiPayloadTypeUserDataUnregistered)
	}
	wantSize := 16 + len("hello")
	if int(rbsp.data[1]) != wantSize {
		t.Errorf("payload_size byte = %d, want %d", rbsp.data[1], wantSize)
	}
	if rbsp.data[len(rbsp.data)-1] != 0x80 {
		t.Errorf("last byte = %#x, want rbsp_trailing_bits 0x80", rbsp.data[len(rbsp.data)-1])
	}
	if !bytes.Contains(rbsp.data, []byte("hello")) {
		t.Errorf("payload not found in encoded SEI")
	}
}

func TestUserDataUnregisteredNalUnit(t *testing.T) {
	u := UserDataUnregistered{Payload: []byte{0x42}}
	got := u.NalUnit().AnnexB()

	// nal_ref_idc 0, nal_unit_type 6.
	want := []byte{0x00, 0x00, 0x00, 0x01, 0x06}
	if !bytes.HasPrefix(got, want) {
		t.Errorf("AnnexB() = % x..., want prefix % x", got[:5], want)
	}
}

func TestUserDataUnregisteredLargePayloadUsesFFRun(t *testing.T) {
	payload := make([]byte, 600)
	u := UserDataUnregistered{Payload: payload}
	rbsp := u.toRBSP()

	size := 16 + len(payload) // 616
	numFFBytes := 0
	remaining := size
	for remaining > 255 {
		numFFBytes++
		remaining -= 0xff
	}

	if rbsp.data[0] != seiPayloadTypeUserDataUnregistered {
		t.Fatalf("payload_type byte = %#x", rbsp.data[0])
	}
	for i := 1; i <= numFFBytes; i++ {
		if rbsp.data[i] != 0xff {
			t.Errorf("byte %d = %#x, want 0xff ff-run extension", i, rbsp.data[i])
		}
	}
	if int(rbsp.data[numFFBytes+1]) != remaining {
		t.Errorf("final size byte = %d, want %d", rbsp.data[numFFBytes+1], remaining)
	}
}
