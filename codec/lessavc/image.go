// Package lessavc implements a minimal H.264/AVC encoder that emits
// spec-compliant Annex-B NAL-unit streams encoding each input picture as a
// lossless I-slice composed exclusively of I_PCM macroblocks. It performs no
// prediction, transform or entropy coding: pixel samples are copied verbatim
// into the bitstream. It targets monochrome or 4:2:0 YCbCr frames at 8 or 12
// bits, as produced by AusOcean's underwater camera pipeline, where lossless
// storage matters more than bitrate.
package lessavc

import (
	"github.com/pkg/errors"
)

// BitDepth is the dynamic range of a plane's samples. Its values are tags,
// not bit counts; NumBits returns the number of bits per sample.
type BitDepth int

const (
	// Depth8 is 8-bit data, one byte per sample.
	Depth8 BitDepth = iota
	// Depth12 is 12-bit data, two samples packed big-endian into 3 bytes.
	Depth12
)

// NumBits returns the number of bits per sample.
func (b BitDepth) NumBits() int {
	switch b {
	case Depth8:
		return 8
	case Depth12:
		return 12
	default:
		panic("lessavc: invalid BitDepth")
	}
}

// chromaFormatIdc is the chroma_format_idc value written into the SPS.
type chromaFormatIdc int

const (
	chromaMonochrome chromaFormatIdc = 0
	chroma420        chromaFormatIdc = 1
)

// profileIdc identifies the encoded H.264 profile and, for the profiles
// that carry one, the chroma format and bit depth.
type profileIdc struct {
	value      int // the profile_idc byte.
	extra      bool
	chroma     chromaFormatIdc
	bitDepth   BitDepth
	monochrome bool
}

func profileBaseline() profileIdc {
	return profileIdc{value: 66}
}

func profileHigh(mono bool, chroma chromaFormatIdc, depth BitDepth) profileIdc {
	return profileIdc{value: 100, extra: true, chroma: chroma, bitDepth: depth, monochrome: mono}
}

func profileHigh444PP(mono bool, chroma chromaFormatIdc, depth BitDepth) profileIdc {
	return profileIdc{value: 244, extra: true, chroma: chroma, bitDepth: depth, monochrome: mono}
}

// DataPlane is a borrowed, read-only pixel plane.
type DataPlane struct {
	// Data holds the raw sample bytes for the plane, row-major, with Stride
	// bytes between the start of consecutive rows. Data may extend beyond
	// the valid Width x Height area into stride/row padding; that padding is
	// read by the encoder but not displayed by a conforming decoder.
	Data []byte
	// Stride is the row stride of Data, in bytes.
	Stride int
	// BitDepth is the sample precision of this plane.
	BitDepth BitDepth
}

// checkSizes validates that the plane is large enough to hold a
// macroblock-padded width x height image: the encoder reads whole stride
// rows out to the padded dimensions. mbSize is 16 for luma and 8 for chroma.
func (p DataPlane) checkSizes(width, height, mbSize int) error {
	widthFactorNum, widthFactorDenom := 1, 1
	if p.BitDepth == Depth12 {
		widthFactorNum, widthFactorDenom = 3, 2
	}
	minStride := nextMultiple(width, mbSize) * widthFactorNum / widthFactorDenom
	if p.Stride < minStride || p.Stride == 0 {
		return dataShapeProblem("stride too small")
	}
	numRows := len(p.Data) / p.Stride
	if numRows < nextMultiple(height, mbSize) {
		return dataShapeProblem("number of rows too small")
	}
	return nil
}

// Planes holds either a single monochrome luma plane or a full YCbCr triple.
// There are exactly two shapes, so the Mono flag is matched at macroblock
// emission time rather than dispatching through an interface.
type Planes struct {
	// Mono is true if only Y is present.
	Mono bool
	Y    DataPlane
	Cb   DataPlane
	Cr   DataPlane
}

// Image is a borrowed picture to encode: one or three planes plus pixel
// dimensions. Image data is only borrowed for the duration of an Encode
// call.
type Image struct {
	Planes Planes
	Width  int
	Height int
}

// lumaBitDepth returns the bit depth of the luma plane, which by contract
// equals the bit depth of any chroma planes present.
func (img Image) lumaBitDepth() BitDepth {
	return img.Planes.Y.BitDepth
}

// checkSizes validates all planes against the image's declared dimensions.
func (img Image) checkSizes() error {
	if err := img.Planes.Y.checkSizes(img.Width, img.Height, 16); err != nil {
		return errors.Wrap(err, "luma plane")
	}
	if !img.Planes.Mono {
		if img.Planes.Cb.BitDepth != img.Planes.Cr.BitDepth {
			return dataShapeProblem("Cb and Cr must have equal bit depth")
		}
		if err := img.Planes.Cb.checkSizes(img.Width/2, img.Height/2, 8); err != nil {
			return errors.Wrap(err, "Cb plane")
		}
		if err := img.Planes.Cr.checkSizes(img.Width/2, img.Height/2, 8); err != nil {
			return errors.Wrap(err, "Cr plane")
		}
	}
	return nil
}

// nextMultiple returns the smallest multiple of b that is >= a.
func nextMultiple(a, b int) int {
	return divCeil(a, b) * b
}

// divCeil returns ceil(a/b) for non-negative integers.
func divCeil(a, b int) int {
	return (a + b - 1) / b
}
