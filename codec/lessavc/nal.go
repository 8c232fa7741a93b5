/*
DESCRIPTION
  nal.go provides RBSP-to-EBSP escaping and NAL unit encapsulation, including
  the Annex-B start-code framing used for .h264 byte streams.

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

// nalRefIdc is the 2-bit nal_ref_idc field of a NAL unit header.
type nalRefIdc uint8

const (
	nalRefIdcZero  nalRefIdc = 0
	nalRefIdcOne   nalRefIdc = 1
	nalRefIdcThree nalRefIdc = 3
)

// nalUnitType is the 5-bit nal_unit_type field of a NAL unit header.
type nalUnitType uint8

const (
	nalTypeCodedSliceOfIDR      nalUnitType = 5
	nalTypeSEI                  nalUnitType = 6
	nalTypeSequenceParameterSet nalUnitType = 7
	nalTypePictureParameterSet  nalUnitType = 8
)

// annexBStartCode is the 4-byte start code prefixing every NAL unit in an
// Annex-B byte stream.
var annexBStartCode = [4]byte{0x00, 0x00, 0x00, 0x01}

// rbspData is a raw byte sequence payload: the inner bitstream for a NAL
// unit before emulation-prevention escaping.
type rbspData struct {
	data []byte
}

// NalUnit is an encoded NAL unit: a nal_ref_idc/nal_unit_type header plus
// its RBSP payload, which Bytes and AnnexB escape when rendering.
type NalUnit struct {
	refIdc   nalRefIdc
	unitType nalUnitType
	rbsp     rbspData
}

func newNalUnit(refIdc nalRefIdc, unitType nalUnitType, rbsp rbspData) NalUnit {
	return NalUnit{refIdc: refIdc, unitType: unitType, rbsp: rbsp}
}

// calcMaxEBSPSize returns a safe upper bound on the EBSP size for an RBSP of
// the given size: at most one 0x03 escape byte per two input bytes, rounded
// up to an even number.
func calcMaxEBSPSize(rbspSize int) int {
	n := divCeil(rbspSize*3, 2)
	return n + n%2
}

// rbspToEBSP scans src for any two-zero-byte run whose next byte is in
// {0x00,0x01,0x02,0x03} and inserts a 0x03 emulation-prevention byte between
// the second zero and that byte. The destination slice dst must have length
// at least calcMaxEBSPSize(len(src)); the number of bytes actually written is
// returned.
func rbspToEBSP(src []byte, dst []byte) int {
	n := 0
	zeros := 0
	for _, b := range src {
		if zeros >= 2 && b <= 0x03 {
			dst[n] = 0x03
			n++
			zeros = 0
		}
		dst[n] = b
		n++
		if b == 0x00 {
			zeros++
		} else {
			zeros = 0
		}
	}
	return n
}

// toBuf renders the NAL unit, optionally prefixed with the Annex-B start
// code.
func (n NalUnit) toBuf(withStartCode bool) []byte {
	headerByte := byte(0)<<7 | byte(n.refIdc)<<5 | byte(n.unitType)

	maxEBSP := calcMaxEBSPSize(len(n.rbsp.data))
	nStart := 1
	if withStartCode {
		nStart = 5
	}
	result := make([]byte, nStart+maxEBSP)
	if withStartCode {
		copy(result[:4], annexBStartCode[:])
	}
	result[nStart-1] = headerByte

	written := rbspToEBSP(n.rbsp.data, result[nStart:])
	return result[:nStart+written]
}

// Bytes returns the "naked" NAL unit: the EBSP-escaped payload with its
// 1-byte header, but no Annex-B start code.
func (n NalUnit) Bytes() []byte {
	return n.toBuf(false)
}

// AnnexB returns the NAL unit encoded for direct appending to a .h264 byte
// stream: a 4-byte Annex-B start code, the 1-byte header, then the
// EBSP-escaped payload.
func (n NalUnit) AnnexB() []byte {
	return n.toBuf(true)
}

// InitialNalUnits holds the three NAL units produced when an Encoder is
// first constructed: the sequence parameter set, picture parameter set, and
// the first encoded frame.
type InitialNalUnits struct {
	SPS   NalUnit
	PPS   NalUnit
	Frame NalUnit
}

// Slice returns the three initial NAL units in emission order: SPS, PPS,
// then the first frame.
func (u InitialNalUnits) Slice() []NalUnit {
	return []NalUnit{u.SPS, u.PPS, u.Frame}
}
