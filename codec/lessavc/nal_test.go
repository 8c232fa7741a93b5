package lessavc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRbspToEBSPEscapesForbiddenSequences(t *testing.T) {
	cases := []struct {
		name string
		src  []byte
		want []byte
	}{
		{"no escape needed", []byte{0x01, 0x02, 0x03}, []byte{0x01, 0x02, 0x03}},
		{"00 00 00", []byte{0x00, 0x00, 0x00}, []byte{0x00, 0x00, 0x03, 0x00}},
		{"00 00 01", []byte{0x00, 0x00, 0x01}, []byte{0x00, 0x00, 0x03, 0x01}},
		{"00 00 02", []byte{0x00, 0x00, 0x02}, []byte{0x00, 0x00, 0x03, 0x02}},
		{"00 00 03", []byte{0x00, 0x00, 0x03}, []byte{0x00, 0x00, 0x03, 0x03}},
		{"00 00 04 no escape", []byte{0x00, 0x00, 0x04}, []byte{0x00, 0x00, 0x04}},
		{"long zero run", []byte{0x00, 0x00, 0x00, 0x00, 0x01}, []byte{0x00, 0x00, 0x03, 0x00, 0x00, 0x03, 0x01}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dst := make([]byte, calcMaxEBSPSize(len(c.src)))
			n := rbspToEBSP(c.src, dst)
			got := dst[:n]
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("rbspToEBSP() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestNoForbiddenSequenceSurvives checks that no 00 00 00, 00 00 01 or
// 00 00 02 sequence survives escaping, that every 00 00 03 in the output is
// an emulation-prevention byte, and that dropping those bytes gives back the
// input.
func TestNoForbiddenSequenceSurvives(t *testing.T) {
	src := make([]byte, 0)
	for i := 0; i < 50; i++ {
		src = append(src, 0x00, 0x00, byte(i%4))
	}
	dst := make([]byte, calcMaxEBSPSize(len(src)))
	n := rbspToEBSP(src, dst)
	got := dst[:n]

	zeros := 0
	var decoded []byte
	for _, b := range got {
		if zeros >= 2 && b == 0x03 {
			// Emulation-prevention byte; a decoder drops it.
			zeros = 0
			continue
		}
		if zeros >= 2 && b <= 0x02 {
			t.Fatalf("forbidden sequence survived escaping at byte %v in %x", b, got)
		}
		decoded = append(decoded, b)
		if b == 0x00 {
			zeros++
		} else {
			zeros = 0
		}
	}
	if diff := cmp.Diff(src, decoded); diff != "" {
		t.Fatalf("escaped output does not decode back to the input (-want +got):\n%s", diff)
	}
}

func TestNalUnitAnnexB(t *testing.T) {
	n := newNalUnit(nalRefIdcThree, nalTypeSequenceParameterSet, rbspData{data: []byte{0x01, 0x02}})
	got := n.AnnexB()
	want := []byte{0x00, 0x00, 0x00, 0x01, 0x67, 0x01, 0x02}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AnnexB() mismatch (-want +got):\n%s", diff)
	}
}

func TestCalcMaxEBSPSizeIsSufficient(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 10, 100, 1000} {
		src := make([]byte, n)
		dst := make([]byte, calcMaxEBSPSize(n))
		written := rbspToEBSP(src, dst)
		if written > len(dst) {
			t.Errorf("calcMaxEBSPSize(%d) = %d, too small for %d bytes written", n, len(dst), written)
		}
	}
}
