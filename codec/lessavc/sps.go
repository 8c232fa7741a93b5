package lessavc

import "github.com/ausocean/lessavc/codec/lessavc/bits"

// videoFormat is the VUI video_format tag.
type videoFormat uint8

const (
	videoFormatComponent videoFormat = iota
	videoFormatPAL
	videoFormatNTSC
	videoFormatSECAM
	videoFormatMAC
	videoFormatUnspecified
	_ // videoFormatReserved6, unused
	videoFormatReserved
)

// vui holds the video usability information appended to an SPS.
type vui struct {
	fullRange   bool
	videoFormat videoFormat
}

func newVui(fullRange bool) vui {
	return vui{fullRange: fullRange, videoFormat: videoFormatUnspecified}
}

// appendToRBSP writes vui_parameters(). Only the video signal type block is
// present; aspect ratio, timing, HRD and bitstream restriction info are all
// flagged absent.
func (v vui) appendToRBSP(w *bits.Writer) {
	w.WriteBit(false) // aspect_ratio_info_present_flag
	w.WriteBit(false) // overscan_info_present_flag
	w.WriteBit(true)  // video_signal_type_present_flag
	w.WriteBits(uint64(v.videoFormat), 3)
	w.WriteBit(v.fullRange) // video_full_range_flag
	w.WriteBit(false)       // colour_description_present_flag
	w.WriteBit(false)       // chroma_loc_info_present_flag
	w.WriteBit(false)       // timing_info_present_flag
	w.WriteBit(false)       // nal_hrd_parameters_present_flag
	w.WriteBit(false)       // vcl_hrd_parameters_present_flag
	w.WriteBit(false)       // pic_struct_present_flag
	w.WriteBit(false)       // bitstream_restriction_flag
}

// sps is a sequence parameter set.
type sps struct {
	seqParameterSetID           uint32
	profile                     profileIdc
	picWidthInMbsMinus1         uint32
	picHeightInMapUnitsMinus1   uint32
	frameCropping               *[4]uint32 // left, right, top, bottom, in chroma-scaled units.
	log2MaxFrameNumMinus4       uint32
	picOrderCntType             uint32
	log2MaxPicOrderCntLsbMinus4 uint32
	vui                         *vui
}

func newSps(seqParameterSetID uint32, profile profileIdc, picWidthInMbsMinus1, picHeightInMapUnitsMinus1 uint32, frameCropping *[4]uint32, v *vui) sps {
	return sps{
		seqParameterSetID:         seqParameterSetID,
		profile:                   profile,
		picWidthInMbsMinus1:       picWidthInMbsMinus1,
		picHeightInMapUnitsMinus1: picHeightInMapUnitsMinus1,
		frameCropping:             frameCropping,
		vui:                       v,
	}
}

func (s sps) log2MaxFrameNum() int {
	return int(s.log2MaxFrameNumMinus4) + 4
}

func (s sps) log2MaxPicOrderCntLsb() int {
	return int(s.log2MaxPicOrderCntLsbMinus4) + 4
}

// toRBSP writes the SPS payload, finishing with the RBSP trailing bits.
func (s sps) toRBSP() rbspData {
	w := bits.NewWriter(32)

	// profile_idc, constraint flags + reserved_zero_2bits, level_idc.
	w.WriteBits(uint64(s.profile.value), 8)
	w.WriteBits(0, 8)  // constraint_set0..5_flag + reserved_zero_2bits, all 0.
	w.WriteBits(10, 8) // level_idc = 10.

	w.WriteUE(s.seqParameterSetID)

	if s.profile.extra {
		w.WriteUE(uint32(s.profile.chroma))
		if s.profile.chroma == 3 {
			w.WriteBit(false) // separate_colour_plane_flag, unused (chroma_format_idc never 3 here).
		}
		w.WriteUE(uint32(s.profile.bitDepth.NumBits() - 8)) // bit_depth_luma_minus8
		w.WriteUE(uint32(s.profile.bitDepth.NumBits() - 8)) // bit_depth_chroma_minus8
		w.WriteBit(false)                                   // qpprime_y_zero_transform_bypass_flag
		w.WriteBit(false)                                   // seq_scaling_matrix_present_flag
	}

	w.WriteUE(s.log2MaxFrameNumMinus4)
	w.WriteUE(s.picOrderCntType)
	w.WriteUE(s.log2MaxPicOrderCntLsbMinus4)
	w.WriteUE(0)      // max_num_ref_frames
	w.WriteBit(false) // gaps_in_frame_num_value_allowed_flag

	w.WriteUE(s.picWidthInMbsMinus1)
	w.WriteUE(s.picHeightInMapUnitsMinus1)

	w.WriteBit(true)  // frame_mbs_only_flag
	w.WriteBit(false) // direct_8x8_inference_flag

	if s.frameCropping != nil {
		w.WriteBit(true)
		for _, v := range s.frameCropping {
			w.WriteUE(v)
		}
	} else {
		w.WriteBit(false)
	}

	if s.vui != nil {
		w.WriteBit(true)
		s.vui.appendToRBSP(w)
	} else {
		w.WriteBit(false)
	}

	return rbspData{data: w.Finalize()}
}
