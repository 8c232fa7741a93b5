/*
DESCRIPTION
  testbench.go round-trips an encoded .h264 file through an external decoder
  (ffmpeg; openh264 is not invoked) so that package lessavc's bitstreams can
  be checked against a real decoder rather than only against this
  repository's own encoder logic. Tests using this package skip themselves,
  rather than failing, when ffmpeg is not on PATH.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package testbench decodes .h264 files produced by package lessavc with an
// external decoder binary, for use from package lessavc's own tests.
package testbench

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// saveEnvVar is checked by SaveOutput; set it to anything but "0" to keep the
// temporary .h264 files a round-trip test produces.
const saveEnvVar = "LESSAVC_SAVE_TEST_H264"

// SaveOutput reports whether round-trip tests should preserve their
// temporary output directory instead of deleting it on completion.
func SaveOutput() bool {
	v, ok := os.LookupEnv(saveEnvVar)
	return ok && v != "0"
}

// FFmpegAvailable reports whether an ffmpeg binary is on PATH.
func FFmpegAvailable() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// DecodeRawFrame invokes ffmpeg to decode the single-frame Annex-B file at
// h264Path into a tightly packed raw plane file at rawPath, in the given
// ffmpeg pixel format (e.g. "gray", "gray12le", "yuv420p", "yuv420p12le").
// It returns an error if ffmpeg is unavailable or exits non-zero.
func DecodeRawFrame(h264Path, rawPath, pixFmt string) error {
	if !FFmpegAvailable() {
		return fmt.Errorf("testbench: ffmpeg not found on PATH")
	}
	cmd := exec.Command("ffmpeg",
		"-y",
		"-f", "h264",
		"-i", h264Path,
		"-pix_fmt", pixFmt,
		"-vframes", "1",
		"-f", "rawvideo",
		rawPath,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("testbench: ffmpeg decode failed: %w: %s", err, out)
	}
	return nil
}

// WriteTempFile writes data to a newly created file named name inside dir
// and returns its path.
func WriteTempFile(dir, name string, data []byte) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
