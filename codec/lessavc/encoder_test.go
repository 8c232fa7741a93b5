package lessavc

import (
	"testing"

	"github.com/ausocean/lessavc/codec/lessavc/config"
	"github.com/ausocean/lessavc/codec/lessavc/internal/testutil"
)

// TestEncodeMono8Aligned encodes a monochrome 8-bit frame whose dimensions
// are already multiples of 16, so no frame cropping is needed.
func TestEncodeMono8Aligned(t *testing.T) {
	data, stride := testutil.Mono8Plane(640, 480)
	img := Image{
		Planes: Planes{Mono: true, Y: DataPlane{Data: data, Stride: stride, BitDepth: Depth8}},
		Width:  640,
		Height: 480,
	}

	initial, enc, err := NewEncoder(img, config.Default(), nil)
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
	if len(initial.Slice()) != 3 {
		t.Fatalf("expected 3 initial NAL units, got %d", len(initial.Slice()))
	}

	if _, err := enc.Encode(img); err != nil {
		t.Fatalf("second Encode() error = %v", err)
	}
}

// TestEncodeMono8Cropped encodes a 14x14 monochrome frame, which is padded
// to one 16x16 macroblock with frame cropping signaling the 2-pixel
// right/bottom padding.
func TestEncodeMono8Cropped(t *testing.T) {
	stride := 16 // padded to macroblock width
	data := make([]byte, stride*16)
	img := Image{
		Planes: Planes{Mono: true, Y: DataPlane{Data: data, Stride: stride, BitDepth: Depth8}},
		Width:  14,
		Height: 14,
	}

	initial, _, err := NewEncoder(img, config.Default(), nil)
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
	if len(initial.Frame.AnnexB()) == 0 {
		t.Fatal("expected non-empty encoded frame")
	}
}

// TestEncodeMono12 encodes a 16x16 monochrome 12-bit frame, whose luma rows
// carry 24 packed bytes per macroblock.
func TestEncodeMono12(t *testing.T) {
	data, stride := testutil.Mono12Plane(16, 16)
	img := Image{
		Planes: Planes{Mono: true, Y: DataPlane{Data: data, Stride: stride, BitDepth: Depth12}},
		Width:  16,
		Height: 16,
	}

	if _, _, err := NewEncoder(img, config.Default(), nil); err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
}

// TestEncodeYCbCr8Cropped encodes a 638x478 YCbCr 4:2:0 8-bit frame, cropped
// by 1 chroma-scaled unit right/bottom.
func TestEncodeYCbCr8Cropped(t *testing.T) {
	width, height := 638, 478
	yStride := nextMultiple(width, 16)
	cStride := nextMultiple(width, 16) / 2

	y := make([]byte, yStride*nextMultiple(height, 16))
	cb := make([]byte, cStride*nextMultiple(height, 16)/2)
	cr := make([]byte, cStride*nextMultiple(height, 16)/2)

	img := Image{
		Planes: Planes{
			Y:  DataPlane{Data: y, Stride: yStride, BitDepth: Depth8},
			Cb: DataPlane{Data: cb, Stride: cStride, BitDepth: Depth8},
			Cr: DataPlane{Data: cr, Stride: cStride, BitDepth: Depth8},
		},
		Width:  width,
		Height: height,
	}

	if _, _, err := NewEncoder(img, config.Default(), nil); err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
}

// TestEncodeYCbCr12 encodes a 640x480 YCbCr 4:2:0 12-bit frame.
func TestEncodeYCbCr12(t *testing.T) {
	y, cb, cr, yStride, cStride := testutil.YCbCr12Planes(640, 480)
	img := Image{
		Planes: Planes{
			Y:  DataPlane{Data: y, Stride: yStride, BitDepth: Depth12},
			Cb: DataPlane{Data: cb, Stride: cStride, BitDepth: Depth12},
			Cr: DataPlane{Data: cr, Stride: cStride, BitDepth: Depth12},
		},
		Width:  640,
		Height: 480,
	}

	if _, _, err := NewEncoder(img, config.Default(), nil); err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
}

// TestEncodeRgb12OddWidthFails checks that a 12-bit color frame whose width
// (14) is not divisible by 4 fails with a data shape error rather than
// silently producing malformed output.
func TestEncodeRgb12OddWidthFails(t *testing.T) {
	width, height := 14, 16
	yStride := (width/2+1)*3 + 9 // arbitrary, oversized; error should occur before any read.
	y := make([]byte, yStride*16)
	cb := make([]byte, yStride*16)
	cr := make([]byte, yStride*16)

	img := Image{
		Planes: Planes{
			Y:  DataPlane{Data: y, Stride: yStride, BitDepth: Depth12},
			Cb: DataPlane{Data: cb, Stride: yStride, BitDepth: Depth12},
			Cr: DataPlane{Data: cr, Stride: yStride, BitDepth: Depth12},
		},
		Width:  width,
		Height: height,
	}

	_, _, err := NewEncoder(img, config.Default(), nil)
	if err == nil {
		t.Fatal("expected error for width=14 12-bit color image, got nil")
	}
	lerr, ok := err.(*Error)
	if !ok || lerr.Kind != KindDataShapeProblem {
		t.Errorf("err = %v, want *Error with KindDataShapeProblem", err)
	}
}

func TestEncodeDimensionMismatchFails(t *testing.T) {
	data, stride := testutil.Mono8Plane(16, 16)
	img := Image{Planes: Planes{Mono: true, Y: DataPlane{Data: data, Stride: stride, BitDepth: Depth8}}, Width: 16, Height: 16}

	_, enc, err := NewEncoder(img, config.Default(), nil)
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}

	data2, stride2 := testutil.Mono8Plane(32, 32)
	other := Image{Planes: Planes{Mono: true, Y: DataPlane{Data: data2, Stride: stride2, BitDepth: Depth8}}, Width: 32, Height: 32}

	_, err = enc.Encode(other)
	if err == nil {
		t.Fatal("expected error for mismatched dimensions")
	}
}
