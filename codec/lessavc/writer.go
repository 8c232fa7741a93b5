/*
DESCRIPTION
  writer.go adapts Encoder to an io.Writer sink, deferring encoder
  construction until the first frame is seen so that profile and geometry
  can be inferred from it.

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
	"io"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/lessavc/codec/lessavc/config"
)

// writerState tags the internal state of a StreamWriter. stateMovedOut
// marks the window during Write in which the previous state has been taken
// and the next one has not yet been installed; a write that fails after
// bytes may already have reached the sink leaves the writer there, so that
// further writes fail loudly instead of corrupting the stream. IntoInner
// also leaves the writer in stateMovedOut.
type writerState int

const (
	stateConfigured writerState = iota
	stateRecording
	stateMovedOut
)

// StreamWriter writes encoded frames to an underlying io.Writer as an Annex-B
// byte stream. It is not safe for concurrent use.
type StreamWriter struct {
	state   writerState
	wtr     io.Writer
	cfg     config.Config
	encoder *Encoder
	log     logging.Logger
}

// NewStreamWriter returns a StreamWriter that will write to wtr. No bytes are
// written until the first call to Write, which determines the stream's
// profile and geometry. log may be nil.
func NewStreamWriter(wtr io.Writer, cfg config.Config, log logging.Logger) *StreamWriter {
	return &StreamWriter{state: stateConfigured, wtr: wtr, cfg: cfg, log: log}
}

// Write encodes frame and appends it to the underlying writer. The first
// call emits the SPS, PPS and first coded frame; subsequent calls emit just
// the coded frame. frame must have the same dimensions and plane bit depths
// across every call.
func (s *StreamWriter) Write(frame Image) error {
	switch s.state {
	case stateConfigured:
		s.state = stateMovedOut

		initial, enc, err := NewEncoder(frame, s.cfg, s.log)
		if err != nil {
			s.state = stateConfigured
			return err
		}
		for _, n := range initial.Slice() {
			if _, err := s.wtr.Write(n.AnnexB()); err != nil {
				return ioError(err)
			}
		}

		s.encoder = enc
		s.state = stateRecording
		return nil

	case stateRecording:
		s.state = stateMovedOut

		n, err := s.encoder.Encode(frame)
		if err != nil {
			s.state = stateRecording
			return err
		}
		if _, err := s.wtr.Write(n.AnnexB()); err != nil {
			return ioError(err)
		}

		s.state = stateRecording
		return nil

	default: // stateMovedOut
		return inconsistentState()
	}
}

// IntoInner returns the underlying writer, leaving the StreamWriter unusable
// for further writes.
func (s *StreamWriter) IntoInner() (io.Writer, error) {
	if s.state == stateMovedOut {
		return nil, inconsistentState()
	}
	s.state = stateMovedOut
	return s.wtr, nil
}
