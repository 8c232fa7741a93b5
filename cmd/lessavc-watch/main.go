/*
DESCRIPTION
  lessavc-watch watches a directory for dropped raw frame files and encodes
  each onto a single growing .h264 stream: files present at startup in
  filename order, later ones in the order their creation is reported. It is meant
  for pipelines where a separate capture process writes one file per frame
  rather than streaming frames directly to a recorder.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package lessavc-watch is a directory-watching frontend for package lessavc.
// Frame files are tightly packed (stride equals row width), so width and
// height must be multiples of 16 to satisfy the encoder's macroblock padding
// requirements.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/lessavc/codec/codecutil"
	"github.com/ausocean/lessavc/codec/lessavc"
	"github.com/ausocean/lessavc/codec/lessavc/config"
)

const pkg = "lessavc-watch: "

// settleDelay is how long a newly created file is left alone before being
// read, so that the writer producing it has finished flushing.
const settleDelay = 100 * time.Millisecond

func main() {
	watchDir := flag.String("dir", ".", "directory to watch for dropped frame files")
	outPath := flag.String("out", "recording.h264", "output .h264 file path")
	format := flag.String("format", codecutil.Mono8, "frame file format: mono8, mono12, yuv420p or yuv420p12")
	width := flag.Int("width", 0, "frame width in pixels (multiple of 16)")
	height := flag.Int("height", 0, "frame height in pixels (multiple of 16)")
	flag.Parse()

	if *width <= 0 || *height <= 0 {
		fmt.Fprintln(os.Stderr, "lessavc-watch: -width and -height are required")
		os.Exit(1)
	}
	mono, bits, ok := codecutil.FrameInfo(*format)
	if !ok {
		fmt.Fprintf(os.Stderr, "lessavc-watch: unknown format %q\n", *format)
		os.Exit(1)
	}
	depth := lessavc.Depth8
	if bits == 12 {
		depth = lessavc.Depth12
	}

	log := logging.New(logging.Info, os.Stderr, true)

	out, err := os.OpenFile(*outPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Error(pkg+"could not open output file", "error", err.Error())
		os.Exit(1)
	}
	defer out.Close()

	wtr := lessavc.NewStreamWriter(out, config.Default(), log)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Error(pkg+"could not create watcher", "error", err.Error())
		os.Exit(1)
	}
	defer watcher.Close()

	if err := watcher.Add(*watchDir); err != nil {
		log.Error(pkg+"could not watch directory", "error", err.Error(), "dir", *watchDir)
		os.Exit(1)
	}

	existing, err := sortedFrameFiles(*watchDir)
	if err != nil {
		log.Error(pkg+"could not list existing frames", "error", err.Error())
		os.Exit(1)
	}
	for _, f := range existing {
		if err := encodeFile(f, *width, *height, mono, depth, wtr); err != nil {
			log.Error(pkg+"failed to encode pre-existing frame", "error", err.Error(), "file", f)
		}
	}

	log.Info(pkg+"watching for frames", "dir", *watchDir, "format", *format)

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Create == 0 {
				continue
			}
			time.Sleep(settleDelay)
			if err := encodeFile(ev.Name, *width, *height, mono, depth, wtr); err != nil {
				log.Error(pkg+"failed to encode dropped frame", "error", err.Error(), "file", ev.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Error(pkg+"watcher error", "error", err.Error())
		}
	}
}

// encodeFile reads a single tightly packed frame from path and appends it
// to wtr.
func encodeFile(path string, width, height int, mono bool, depth lessavc.BitDepth, wtr *lessavc.StreamWriter) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	ySize := planeSize(width, height, depth)
	img := lessavc.Image{Width: width, Height: height}
	img.Planes.Mono = mono
	if len(data) < ySize {
		return fmt.Errorf("frame file too short: have %d bytes, want %d", len(data), ySize)
	}
	img.Planes.Y = lessavc.DataPlane{Data: data[:ySize], Stride: ySize / height, BitDepth: depth}

	if !mono {
		cSize := planeSize(width/2, height/2, depth)
		if len(data) < ySize+2*cSize {
			return fmt.Errorf("frame file too short: have %d bytes, want %d", len(data), ySize+2*cSize)
		}
		cStride := cSize / (height / 2)
		img.Planes.Cb = lessavc.DataPlane{Data: data[ySize : ySize+cSize], Stride: cStride, BitDepth: depth}
		img.Planes.Cr = lessavc.DataPlane{Data: data[ySize+cSize : ySize+2*cSize], Stride: cStride, BitDepth: depth}
	}

	return wtr.Write(img)
}

// planeSize returns the number of bytes a tightly packed plane of the given
// dimensions and bit depth occupies.
func planeSize(width, height int, depth lessavc.BitDepth) int {
	if depth == lessavc.Depth12 {
		return (width + 1) / 2 * 3 * height
	}
	return width * height
}

// sortedFrameFiles returns the entries of dir in filename order, used when
// catching up on files already present before the watch begins.
func sortedFrameFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(names)
	return names, nil
}
