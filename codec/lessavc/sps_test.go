package lessavc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestSpsGoldenBaseline reproduces the literal byte sequence for a Baseline
// profile SPS with pic_width_in_mbs_minus1=7, pic_height_in_map_units_minus1=5,
// no VUI and no frame cropping.
func TestSpsGoldenBaseline(t *testing.T) {
	s := newSps(0, profileBaseline(), 7, 5, nil, nil)
	n := newNalUnit(nalRefIdcThree, nalTypeSequenceParameterSet, s.toRBSP())

	want := []byte{0x00, 0x00, 0x00, 0x01, 0x67, 0x42, 0x00, 0x0A, 0xF8, 0x41, 0xA2}
	if diff := cmp.Diff(want, n.AnnexB()); diff != "" {
		t.Errorf("SPS AnnexB() mismatch (-want +got):\n%s", diff)
	}
}

// TestSpsWithVuiByteAligned checks that a Baseline SPS carrying the VUI block
// ends on a byte boundary: after the three fixed bytes, the 26 header and VUI
// bits plus the stop bit are zero-padded to exactly four bytes.
func TestSpsWithVuiByteAligned(t *testing.T) {
	v := newVui(true)
	s := newSps(0, profileBaseline(), 0, 0, nil, &v)
	rbsp := s.toRBSP()
	if len(rbsp.data) == 0 {
		t.Fatal("expected non-empty SPS RBSP")
	}
	want := []byte{0x42, 0x00, 0x0A, 0xFB, 0x93, 0x60, 0x20}
	if diff := cmp.Diff(want, rbsp.data); diff != "" {
		t.Errorf("SPS with VUI RBSP mismatch (-want +got):\n%s", diff)
	}
}

func TestSpsWithCropping(t *testing.T) {
	crop := [4]uint32{0, 2, 0, 2}
	s := newSps(0, profileBaseline(), 0, 0, &crop, nil)
	rbsp := s.toRBSP()
	if len(rbsp.data) == 0 {
		t.Fatal("expected non-empty SPS RBSP")
	}
}

func TestSpsLog2MaxHelpers(t *testing.T) {
	s := sps{log2MaxFrameNumMinus4: 2, log2MaxPicOrderCntLsbMinus4: 3}
	if got := s.log2MaxFrameNum(); got != 6 {
		t.Errorf("log2MaxFrameNum() = %d, want 6", got)
	}
	if got := s.log2MaxPicOrderCntLsb(); got != 7 {
		t.Errorf("log2MaxPicOrderCntLsb() = %d, want 7", got)
	}
}
