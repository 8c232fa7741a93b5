/*
DESCRIPTION
  lessavc-record is a long-running recorder that reads tightly packed raw
  frames from stdin and appends each as a coded NAL unit to a rotating .h264
  file. It is intended to run under systemd, signalling readiness and
  liveness via the sd_notify protocol.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package lessavc-record is a recording daemon built on package lessavc.
// Because stdin input is tightly packed (stride equals row width), frame
// width and height must be multiples of 16 so that every plane satisfies the
// encoder's macroblock padding requirements.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/coreos/go-systemd/daemon"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/lessavc/codec/codecutil"
	"github.com/ausocean/lessavc/codec/lessavc"
	"github.com/ausocean/lessavc/codec/lessavc/config"
)

// Logging configuration, mirroring the conventions other AusOcean recording
// daemons use for their rotating file sinks.
const (
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = true
	pkg          = "lessavc-record: "
)

// watchdogInterval is how often SdNotify WATCHDOG=1 is sent, well inside any
// reasonable systemd WatchdogSec.
const watchdogInterval = 10 * time.Second

func main() {
	outPath := flag.String("out", "recording.h264", "output .h264 file path")
	logPath := flag.String("log", "lessavc-record.log", "log file path")
	format := flag.String("format", codecutil.Mono8, "input frame format: mono8, mono12, yuv420p or yuv420p12")
	width := flag.Int("width", 0, "frame width in pixels (multiple of 16)")
	height := flag.Int("height", 0, "frame height in pixels (multiple of 16)")
	delay := flag.Duration("delay", 0, "minimum delay between frame reads (0 for none)")
	flag.Parse()

	if *width <= 0 || *height <= 0 {
		fmt.Fprintln(os.Stderr, "lessavc-record: -width and -height are required")
		os.Exit(1)
	}
	mono, bits, ok := codecutil.FrameInfo(*format)
	if !ok {
		fmt.Fprintf(os.Stderr, "lessavc-record: unknown format %q\n", *format)
		os.Exit(1)
	}

	fileLog := &lumberjack.Logger{
		Filename:   *logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(logVerbosity, fileLog, logSuppress)
	log.Info(pkg+"starting", "format", *format, "width", *width, "height", *height)

	out := &lumberjack.Logger{
		Filename:   *outPath,
		MaxSize:    500,
		MaxBackups: 3,
	}
	defer out.Close()

	depth := lessavc.Depth8
	if bits == 12 {
		depth = lessavc.Depth12
	}

	sink := &frameSink{
		wtr:    lessavc.NewStreamWriter(out, config.Default(), log),
		mono:   mono,
		depth:  depth,
		width:  *width,
		height: *height,
	}

	if _, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		log.Warning(pkg+"sd_notify READY failed", "error", err.Error())
	}
	go watchdogLoop(log)

	lexer, err := codecutil.NewByteLexer(sink.frameSize())
	if err != nil {
		log.Error(pkg+"could not create lexer", "error", err.Error())
		os.Exit(1)
	}
	if err := lexer.Lex(sink, os.Stdin, *delay); err != io.EOF {
		log.Error(pkg+"record loop exited", "error", err.Error())
		os.Exit(1)
	}
	if sink.buffered() != 0 {
		log.Warning(pkg+"discarding trailing partial frame", "bytes", sink.buffered())
	}
	log.Info(pkg + "input exhausted, stopping")
}

// watchdogLoop periodically pings systemd's watchdog so that a stuck record
// loop gets restarted rather than silently wedging the camera pipeline.
func watchdogLoop(log logging.Logger) {
	t := time.NewTicker(watchdogInterval)
	defer t.Stop()
	for range t.C {
		if _, err := daemon.SdNotify(false, daemon.SdNotifyWatchdog); err != nil {
			log.Warning(pkg+"sd_notify WATCHDOG failed", "error", err.Error())
		}
	}
}

// frameSink accumulates lexed bytes until a whole frame's planes have
// arrived, then encodes the frame onto the output stream. It tolerates the
// lexer handing over partial reads; frame boundaries are recovered by byte
// count.
type frameSink struct {
	wtr    *lessavc.StreamWriter
	mono   bool
	depth  lessavc.BitDepth
	width  int
	height int
	buf    []byte
}

// Write implements io.Writer over raw frame bytes.
func (s *frameSink) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	for len(s.buf) >= s.frameSize() {
		if err := s.encodeFrame(s.buf[:s.frameSize()]); err != nil {
			return len(p), err
		}
		s.buf = s.buf[s.frameSize():]
	}
	return len(p), nil
}

// buffered returns the number of bytes held back awaiting a full frame.
func (s *frameSink) buffered() int { return len(s.buf) }

// frameSize returns the total number of bytes in one tightly packed frame.
func (s *frameSink) frameSize() int {
	n := planeSize(s.width, s.height, s.depth)
	if !s.mono {
		n += 2 * planeSize(s.width/2, s.height/2, s.depth)
	}
	return n
}

// encodeFrame slices one frame's planes out of data and writes the coded
// picture. The planes are copied so the encoder never aliases the sink's
// accumulation buffer.
func (s *frameSink) encodeFrame(data []byte) error {
	ySize := planeSize(s.width, s.height, s.depth)

	img := lessavc.Image{Width: s.width, Height: s.height}
	img.Planes.Mono = s.mono
	yBuf := make([]byte, ySize)
	copy(yBuf, data[:ySize])
	img.Planes.Y = lessavc.DataPlane{Data: yBuf, Stride: ySize / s.height, BitDepth: s.depth}

	if !s.mono {
		cSize := planeSize(s.width/2, s.height/2, s.depth)
		cbBuf := make([]byte, cSize)
		crBuf := make([]byte, cSize)
		copy(cbBuf, data[ySize:ySize+cSize])
		copy(crBuf, data[ySize+cSize:ySize+2*cSize])
		cStride := cSize / (s.height / 2)
		img.Planes.Cb = lessavc.DataPlane{Data: cbBuf, Stride: cStride, BitDepth: s.depth}
		img.Planes.Cr = lessavc.DataPlane{Data: crBuf, Stride: cStride, BitDepth: s.depth}
	}

	return s.wtr.Write(img)
}

// planeSize returns the number of bytes a tightly packed plane of the given
// dimensions and bit depth occupies.
func planeSize(width, height int, depth lessavc.BitDepth) int {
	if depth == lessavc.Depth12 {
		return (width + 1) / 2 * 3 * height
	}
	return width * height
}
