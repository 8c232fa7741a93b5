/*
NAME
  list.go

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/


package codecutil

// All available raw frame formats for reference in any application.
// When adding or removing a format from this list, the IsValid and FrameInfo
// functions below must be updated.
const (
	Mono8     = "mono8"     // Single 8-bit luma plane.
	Mono12    = "mono12"    // Single 12-bit-packed luma plane.
	YUV420P   = "yuv420p"   // 8-bit luma plus quarter-size Cb and Cr planes.
	YUV420P12 = "yuv420p12" // 12-bit-packed luma plus quarter-size Cb and Cr planes.
)

// IsValid checks if a string is a known and valid raw frame format.
func IsValid(s string) bool {
	switch s {
	case Mono8, Mono12, YUV420P, YUV420P12:
		return true
	default:
		return false
	}
}

// FrameInfo returns whether the named format is monochrome and the number of
// bits per sample. ok is false for unknown formats.
func FrameInfo(s string) (mono bool, bits int, ok bool) {
	switch s {
	case Mono8:
		return true, 8, true
	case Mono12:
		return true, 12, true
	case YUV420P:
		return false, 8, true
	case YUV420P12:
		return false, 12, true
	default:
		return false, 0, false
	}
}
