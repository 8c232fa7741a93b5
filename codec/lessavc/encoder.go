/*
DESCRIPTION
  encoder.go provides the Encoder façade: it infers a profile and picture
  geometry from the first frame, builds the sequence and picture parameter
  sets once, and then turns each subsequent frame into a coded IDR slice.

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
	"github.com/ausocean/utils/logging"

	"github.com/ausocean/lessavc/codec/lessavc/config"
)

// Encoder converts Images into H.264 NAL units. Every frame it produces is
// an independently decodable IDR picture built entirely from I_PCM
// macroblocks: there is no inter-frame state beyond the SPS/PPS fixed at
// construction, so Encoder carries no reference-picture buffer.
type Encoder struct {
	width, height       int
	mbsWidth, mbsHeight int
	sps                 sps
	pps                 pps
	log                 logging.Logger
}

// NewEncoder initializes an encoder from the first frame to be encoded. The
// profile, chroma format and picture geometry are all inferred from img. It
// returns the three initial NAL units (SPS, PPS, and the coded first frame)
// alongside the Encoder ready to accept subsequent frames of identical
// geometry.
//
// log may be nil, in which case encoding proceeds silently. cfg supplies the
// parameter set identifiers and VUI range flag; pass config.Default() for
// the values every AusOcean camera pipeline deployment uses.
func NewEncoder(img Image, cfg config.Config, log logging.Logger) (InitialNalUnits, *Encoder, error) {
	if err := img.checkSizes(); err != nil {
		return InitialNalUnits{}, nil, err
	}

	width, height := img.Width, img.Height
	depth := img.lumaBitDepth()

	if !img.Planes.Mono && depth == Depth12 && width%4 != 0 {
		return InitialNalUnits{}, nil, dataShapeProblem("for bit depth 12 color, width must be divisible by 4")
	}

	mono8 := img.Planes.Mono && depth == Depth8
	if !mono8 && width%2 != 0 {
		return InitialNalUnits{}, nil, dataShapeProblem("width must be divisible by 2 (except mono8)")
	}

	var profile profileIdc
	var subWidthC, subHeightC uint32
	switch {
	case !img.Planes.Mono && depth == Depth8:
		profile, subWidthC, subHeightC = profileBaseline(), 2, 2
	case img.Planes.Mono && depth == Depth8:
		profile, subWidthC, subHeightC = profileHigh(true, chromaMonochrome, depth), 1, 1
	case img.Planes.Mono && depth == Depth12:
		profile, subWidthC, subHeightC = profileHigh444PP(true, chromaMonochrome, depth), 1, 1
	default: // !Mono && Depth12
		profile, subWidthC, subHeightC = profileHigh444PP(false, chroma420, depth), 2, 2
	}

	picWidthInMbsMinus1 := uint32(divCeil(width, 16) - 1)
	picHeightInMapUnitsMinus1 := uint32(divCeil(height, 16) - 1)

	var frameCropping *[4]uint32
	paddedWidth := int(picWidthInMbsMinus1+1) * 16
	paddedHeight := int(picHeightInMapUnitsMinus1+1) * 16
	if paddedWidth != width || paddedHeight != height {
		lrPad := paddedWidth - width
		tbPad := paddedHeight - height

		// lpad and tpad are always zero: cropping only ever trims the
		// bottom-right padding that macroblock rounding contributes.
		const lpad, tpad = 0, 0
		rpad := uint32(lrPad) / subWidthC
		bpad := uint32(tbPad) / subHeightC

		if lpad*subWidthC+uint32(width)+rpad*subWidthC != uint32(paddedWidth) ||
			tpad*subHeightC+bpad*subHeightC+uint32(height) != uint32(paddedHeight) {
			return InitialNalUnits{}, nil, unsupportedImageSize()
		}

		frameCropping = &[4]uint32{lpad, rpad, tpad, bpad}
	}

	v := newVui(cfg.FullRangeVideo)
	s := newSps(cfg.SeqParameterSetID, profile, picWidthInMbsMinus1, picHeightInMapUnitsMinus1, frameCropping, &v)
	spsUnit := newNalUnit(nalRefIdcThree, nalTypeSequenceParameterSet, s.toRBSP())

	p := newPps(cfg.PicParameterSetID, cfg.SeqParameterSetID)
	ppsUnit := newNalUnit(nalRefIdcThree, nalTypePictureParameterSet, p.toRBSP())

	enc := &Encoder{
		width:     width,
		height:    height,
		mbsWidth:  int(picWidthInMbsMinus1) + 1,
		mbsHeight: int(picHeightInMapUnitsMinus1) + 1,
		sps:       s,
		pps:       p,
		log:       log,
	}

	frameUnit, err := enc.Encode(img)
	if err != nil {
		return InitialNalUnits{}, nil, err
	}

	return InitialNalUnits{SPS: spsUnit, PPS: ppsUnit, Frame: frameUnit}, enc, nil
}

// Encode turns one Image into a coded IDR slice NAL unit. img must have the
// same Width, Height and plane bit depths as the frame passed to NewEncoder.
func (e *Encoder) Encode(img Image) (NalUnit, error) {
	if err := img.checkSizes(); err != nil {
		return NalUnit{}, err
	}
	if img.Width != e.width || img.Height != e.height {
		return NalUnit{}, dataShapeProblem("frame dimensions differ from the first frame")
	}

	lumaOnly := e.sps.profile.monochrome
	if img.Planes.Mono != lumaOnly {
		return NalUnit{}, dataShapeProblem("frame planes differ from the first frame")
	}

	numMacroblocks := e.mbsHeight * e.mbsWidth
	rowBytes := macroblockRowBytes(img.lumaBitDepth())
	reserve := reserveSize(numMacroblocks, rowBytes, lumaOnly)

	w, err := buildSliceHeader(e.sps, e.pps)
	if err != nil {
		return NalUnit{}, err
	}
	data := w.Bytes()

	origLen := len(data)
	if cap(data)-len(data) < reserve {
		grown := make([]byte, len(data), len(data)+reserve)
		copy(grown, data)
		data = grown
	}

	for mbsRow := 0; mbsRow < e.mbsHeight; mbsRow++ {
		for mbsCol := 0; mbsCol < e.mbsWidth; mbsCol++ {
			data = emitMacroblock(mbsRow, mbsCol, data, img, lumaOnly)
		}
	}

	data = append(data, 0x80) // slice stop bit

	if grew := len(data) - origLen; grew != reserve && e.log != nil {
		e.log.Debug("macroblock loop grew slice data by an unexpected amount",
			"expected", reserve, "actual", grew)
	}

	return newNalUnit(nalRefIdcOne, nalTypeCodedSliceOfIDR, rbspData{data: data}), nil
}
