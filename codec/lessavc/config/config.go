/*
DESCRIPTION
  config.go centralizes the fixed parameter-set defaults used across an
  encoding session, mirroring the pattern revid/config uses for its encoding
  options.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package config holds the fixed identifiers and defaults an encoding
// session uses for its sequence and picture parameter sets. These values
// never vary per-frame; they exist as a package so that cmd/lessavc-record
// and cmd/lessavc-watch share one source of truth instead of each hardcoding
// the defaults inline.
package config

// Config holds the identifiers assigned to the single sequence and picture
// parameter set an encoding session emits.
type Config struct {
	// SeqParameterSetID is seq_parameter_set_id, written into both the SPS
	// and the PPS that refers to it.
	SeqParameterSetID uint32
	// PicParameterSetID is pic_parameter_set_id, written into the PPS and
	// every slice header.
	PicParameterSetID uint32
	// FullRangeVideo sets the VUI video_full_range_flag: true for the PC/JPEG
	// sample range AusOcean's camera pipeline uses, false for studio range.
	FullRangeVideo bool
}

// Default returns the configuration used when none is given explicitly: both
// parameter set IDs at 0, matching the single-SPS/single-PPS-per-stream
// model this encoder implements, and full-range video.
func Default() Config {
	return Config{
		SeqParameterSetID: 0,
		PicParameterSetID: 0,
		FullRangeVideo:    true,
	}
}
