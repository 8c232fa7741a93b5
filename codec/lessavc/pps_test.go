package lessavc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPpsGolden(t *testing.T) {
	p := newPps(0, 0)
	n := newNalUnit(nalRefIdcThree, nalTypePictureParameterSet, p.toRBSP())

	want := []byte{0x00, 0x00, 0x00, 0x01, 0x68, 0xCE, 0x38, 0x80}
	if diff := cmp.Diff(want, n.AnnexB()); diff != "" {
		t.Errorf("PPS AnnexB() mismatch (-want +got):\n%s", diff)
	}
}
