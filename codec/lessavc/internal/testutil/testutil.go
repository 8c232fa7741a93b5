/*
DESCRIPTION
  testutil.go generates synthetic monochrome and YCbCr planes for use in
  package lessavc's tests. It deliberately stays on the standard library: the
  corpus's image/video decode libraries (gocv, gonum/plot) are for reading or
  visualizing real camera footage, not for synthesizing deterministic test
  fixtures, so there is no concern here for them to serve.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package testutil provides synthetic pixel-plane generators for exercising
// package lessavc without depending on real camera captures.
package testutil

// Mono8Plane returns width x height bytes of 8-bit luma, one byte per
// sample, with stride equal to width, filled with the repeating ramp
// (x+y) mod 256 so that neighbouring macroblocks in a row or column contain
// different data.
func Mono8Plane(width, height int) (data []byte, stride int) {
	stride = width
	data = make([]byte, stride*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			data[y*stride+x] = byte((x + y) % 256)
		}
	}
	return data, stride
}

// Mono12Plane returns width x height 12-bit samples packed big-endian, two
// samples per three bytes.
func Mono12Plane(width, height int) (data []byte, stride int) {
	stride = (width + 1) / 2 * 3
	data = make([]byte, stride*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x += 2 {
			a := uint16((x + y) % 4096)
			b := uint16((x + y + 1) % 4096)
			off := y*stride + (x/2)*3
			data[off] = byte(a >> 4)
			data[off+1] = byte(a<<4) | byte(b>>8)
			data[off+2] = byte(b)
		}
	}
	return data, stride
}

// YCbCr8Planes returns 4:2:0 8-bit Y, Cb and Cr planes for a width x height
// image.
func YCbCr8Planes(width, height int) (y, cb, cr []byte, yStride, cStride int) {
	y, yStride = Mono8Plane(width, height)
	cw, ch := (width+1)/2, (height+1)/2
	cb, cStride = Mono8Plane(cw, ch)
	cr, _ = Mono8Plane(cw, ch)
	return y, cb, cr, yStride, cStride
}

// YCbCr12Planes returns 4:2:0 12-bit-packed Y, Cb and Cr planes for a
// width x height image.
func YCbCr12Planes(width, height int) (y, cb, cr []byte, yStride, cStride int) {
	y, yStride = Mono12Plane(width, height)
	cw, ch := (width+1)/2, (height+1)/2
	cb, cStride = Mono12Plane(cw, ch)
	cr, _ = Mono12Plane(cw, ch)
	return y, cb, cr, yStride, cStride
}
