/*
DESCRIPTION
  bitwriter.go provides a big-endian, MSB-first bit writer with support for
  fixed-width integers and zero-order Exponential-Golomb codes, as required to
  build H.264 RBSPs.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bits provides a bit writer implementation that packs single bits,
// fixed-width integers, and Exponential-Golomb codes MSB-first into bytes.
package bits

// Writer accumulates bits MSB-first into a byte slice. The zero value is
// ready to use.
type Writer struct {
	buf  []byte
	cur  byte // bits accumulated for the in-progress byte, left-justified.
	nCur int  // number of valid bits currently held in cur, in [0,8).
}

// NewWriter returns a Writer with its backing slice pre-sized to hold at
// least n bytes without reallocation.
func NewWriter(n int) *Writer {
	return &Writer{buf: make([]byte, 0, n)}
}

// WriteBit appends a single bit, 1 if b is true.
func (w *Writer) WriteBit(b bool) {
	w.cur <<= 1
	if b {
		w.cur |= 1
	}
	w.nCur++
	if w.nCur == 8 {
		w.buf = append(w.buf, w.cur)
		w.cur = 0
		w.nCur = 0
	}
}

// WriteBits appends the n least-significant bits of v, most-significant bit
// first.
func (w *Writer) WriteBits(v uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		w.WriteBit(v&(1<<uint(i)) != 0)
	}
}

// numBits returns the number of bits required to represent v, treating 0 as
// requiring 1 bit (so that Exp-Golomb's v+1 is always representable).
func numBits(v uint32) uint {
	if v == 0 {
		return 1
	}
	var n uint
	for v != 0 {
		v >>= 1
		n++
	}
	return n
}

// WriteUE appends the unsigned Exponential-Golomb code ue(v): let c = v+1
// with bit length k; k-1 zero bits are emitted, followed by the k bits of c,
// most-significant bit first. For example ue(0)=1, ue(1)=010, ue(2)=011,
// ue(3)=00100, ue(7)=0001000.
func (w *Writer) WriteUE(v uint32) {
	c := uint64(v) + 1
	k := numBits(v + 1)
	for i := uint(0); i < k-1; i++ {
		w.WriteBit(false)
	}
	w.WriteBits(c, int(k))
}

// WriteSE appends the signed Exponential-Golomb code se(v): ue(2v-1) for
// v>0, ue(-2v) for v<=0. For example se(0)=1, se(1)=010, se(-1)=011,
// se(2)=00100, se(-2)=00101.
func (w *Writer) WriteSE(v int32) {
	var code uint32
	if v > 0 {
		code = uint32(2*int64(v) - 1)
	} else {
		code = uint32(-2 * int64(v))
	}
	w.WriteUE(code)
}

// ByteAligned reports whether the writer is currently positioned at the
// start of a byte.
func (w *Writer) ByteAligned() bool {
	return w.nCur == 0
}

// Finalize appends the RBSP trailing bits (a single 1 stop bit followed by
// zero padding to the next byte boundary) and returns the accumulated bytes.
// The Writer must not be used after calling Finalize.
func (w *Writer) Finalize() []byte {
	w.WriteBit(true)
	if w.nCur != 0 {
		w.cur <<= uint(8 - w.nCur)
		w.buf = append(w.buf, w.cur)
		w.cur = 0
		w.nCur = 0
	}
	return w.buf
}

// Bytes returns the bytes written so far, byte-aligning with zero padding
// (no stop bit) if necessary. This is used mid-stream, such as after a slice
// header that must hand off to raw macroblock bytes on a byte boundary;
// callers are expected to have checked ByteAligned first in that case.
func (w *Writer) Bytes() []byte {
	if w.nCur != 0 {
		w.cur <<= uint(8 - w.nCur)
		w.buf = append(w.buf, w.cur)
		w.cur = 0
		w.nCur = 0
	}
	return w.buf
}

// Len returns the number of complete bytes written so far, not counting any
// in-progress partial byte.
func (w *Writer) Len() int {
	return len(w.buf)
}
