/*
DESCRIPTION
  slice.go builds the IDR slice header and emits the per-macroblock I_PCM
  body: byte-aligned sample copying for 8- and 12-bit luma and 4:2:0 chroma,
  macroblock header insertion, and the slice trailing bit.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package lessavc

import (
	"github.com/pkg/errors"

	"github.com/ausocean/lessavc/codec/lessavc/bits"
)

// mbTypeIPCM is the mb_type value for an I_PCM macroblock in an I slice.
const mbTypeIPCM = 25

// mbHeaderIPCM is the constant-folded encoding of ue(mbTypeIPCM) padded to a
// byte: the literal that macroblockHeaderIPCM() computes dynamically. The
// dynamic path survives only as a self-test that the Exp-Golomb writer still
// matches this literal (see TestMacroblockHeaderMatchesGolomb).
var mbHeaderIPCM = [2]byte{0x0D, 0x00}

// macroblockHeaderIPCM computes the I_PCM macroblock header dynamically via
// Exp-Golomb, used only to self-test mbHeaderIPCM.
func macroblockHeaderIPCM() []byte {
	w := &bits.Writer{}
	w.WriteUE(mbTypeIPCM)
	return w.Bytes()
}

// buildSliceHeader writes the IDR slice header: every frame this encoder
// produces is an IDR I-slice (slice_type 7) whose macroblocks are all I_PCM.
// The first macroblock's mb_type is read without byte alignment, so it is
// written here as the last element of the header; the pcm_alignment_zero_bits
// that follow it pad the stream to the byte boundary the raw sample bytes
// start on. The returned writer is always byte-aligned.
func buildSliceHeader(s sps, p pps) (*bits.Writer, error) {
	w := bits.NewWriter(20)

	w.WriteUE(0) // first_mb_in_slice
	w.WriteUE(7) // slice_type = I
	w.WriteUE(p.picParameterSetID)

	w.WriteBits(0, s.log2MaxFrameNum()) // frame_num = 0

	w.WriteUE(0) // idr_pic_id

	if s.picOrderCntType == 0 {
		w.WriteBits(0, s.log2MaxPicOrderCntLsb()) // pic_order_cnt_lsb = 0
	}

	w.WriteBit(true)  // no_output_of_prior_pics_flag
	w.WriteBit(false) // long_term_reference_flag

	w.WriteSE(0) // slice_qp_delta

	// mb_type for the first macroblock, then pcm_alignment_zero_bit until
	// byte-aligned. With the defaults above this is 30 bits of header plus
	// two alignment bits.
	w.WriteUE(mbTypeIPCM)
	for i := 0; !w.ByteAligned(); i++ {
		if i >= 8 {
			return nil, errors.New("lessavc: pcm alignment did not reach a byte boundary")
		}
		w.WriteBit(false)
	}

	return w, nil
}

// copyMacroblock8 copies a dstSz x dstSz block of 8-bit samples from src at
// macroblock position (mbRow, mbCol) into dst. dstSz is 16 for luma, 8 for
// 4:2:0 chroma. The source read may extend beyond the valid width x height
// area, but stays within the stride/row-padded allocation.
func copyMacroblock8(mbRow, mbCol int, src DataPlane, dst []byte, dstSz int) []byte {
	for r := mbRow * dstSz; r < (mbRow+1)*dstSz; r++ {
		row := src.Data[r*src.Stride : (r+1)*src.Stride]
		dst = append(dst, row[mbCol*dstSz:(mbCol+1)*dstSz]...)
	}
	return dst
}

// copyMacroblock12 copies a 12-bit-packed block of samples. dstSz is 24 for
// luma (16 samples packed into 24 bytes), 12 for 4:2:0 chroma (8 samples
// packed into 12 bytes).
func copyMacroblock12(mbRow, mbCol int, src DataPlane, dst []byte, dstSz int) []byte {
	srcSz := dstSz / 3 * 2
	for r := mbRow * srcSz; r < (mbRow+1)*srcSz; r++ {
		row := src.Data[r*src.Stride : (r+1)*src.Stride]
		dst = append(dst, row[mbCol*dstSz:(mbCol+1)*dstSz]...)
	}
	return dst
}

// emitMacroblock appends one raster-order macroblock's I_PCM body to dst:
// the macroblock header (for every macroblock but the first), the luma
// 16x16 block, and, unless lumaOnly, the Cb then Cr 8x8 chroma blocks.
func emitMacroblock(mbRow, mbCol int, dst []byte, img Image, lumaOnly bool) []byte {
	if !(mbRow == 0 && mbCol == 0) {
		dst = append(dst, mbHeaderIPCM[:]...)
	}

	switch img.Planes.Y.BitDepth {
	case Depth8:
		dst = copyMacroblock8(mbRow, mbCol, img.Planes.Y, dst, 16)
	case Depth12:
		dst = copyMacroblock12(mbRow, mbCol, img.Planes.Y, dst, 24)
	}

	if lumaOnly {
		return dst
	}

	switch img.Planes.Cb.BitDepth {
	case Depth8:
		dst = copyMacroblock8(mbRow, mbCol, img.Planes.Cb, dst, 8)
		dst = copyMacroblock8(mbRow, mbCol, img.Planes.Cr, dst, 8)
	case Depth12:
		dst = copyMacroblock12(mbRow, mbCol, img.Planes.Cb, dst, 12)
		dst = copyMacroblock12(mbRow, mbCol, img.Planes.Cr, dst, 12)
	}
	return dst
}

// macroblockRowBytes returns the number of bytes a single macroblock's luma
// row contributes: 16 for 8-bit samples, 24 for 12-bit.
func macroblockRowBytes(depth BitDepth) int {
	switch depth {
	case Depth8:
		return 16
	case Depth12:
		return 24
	default:
		panic("lessavc: invalid BitDepth")
	}
}

// reserveSize computes the exact number of bytes the macroblock loop plus
// trailing stop byte will append to a slice header, so the output buffer can
// be sized once up front.
func reserveSize(numMacroblocks int, rowBytes int, lumaOnly bool) int {
	var size int
	if lumaOnly {
		size = numMacroblocks * rowBytes * 16
	} else {
		size = numMacroblocks * rowBytes * 16 * 3 / 2
	}
	size += (numMacroblocks-1)*len(mbHeaderIPCM) + 1
	return size
}
