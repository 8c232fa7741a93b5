package lessavc

import "github.com/ausocean/lessavc/codec/lessavc/bits"

// pps is a picture parameter set.
type pps struct {
	picParameterSetID uint32
	seqParameterSetID uint32
}

func newPps(picParameterSetID, seqParameterSetID uint32) pps {
	return pps{picParameterSetID: picParameterSetID, seqParameterSetID: seqParameterSetID}
}

// toRBSP writes the PPS payload: CAVLC entropy coding, a single slice group,
// no reordering, no weighting, and all QP offsets zero.
func (p pps) toRBSP() rbspData {
	w := bits.NewWriter(20)

	w.WriteUE(p.picParameterSetID)
	w.WriteUE(p.seqParameterSetID)

	w.WriteBit(false) // entropy_coding_mode_flag
	w.WriteBit(false) // bottom_field_pic_order_in_frame_present_flag

	w.WriteUE(0) // num_slice_groups_minus1
	w.WriteUE(0) // num_ref_idx_l0_default_active_minus1
	w.WriteUE(0) // num_ref_idx_l1_default_active_minus1

	w.WriteBit(false) // weighted_pred_flag
	w.WriteBits(0, 2) // weighted_bipred_idc

	w.WriteSE(0) // pic_init_qp_minus26
	w.WriteSE(0) // pic_init_qs_minus26
	w.WriteSE(0) // chroma_qp_index_offset

	w.WriteBit(false) // deblocking_filter_control_present_flag
	w.WriteBit(false) // constrained_intra_pred_flag
	w.WriteBit(false) // redundant_pic_cnt_present_flag

	return rbspData{data: w.Finalize()}
}
