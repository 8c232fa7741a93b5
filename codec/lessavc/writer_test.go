package lessavc

import (
	"bytes"
	"testing"

	"github.com/ausocean/lessavc/codec/lessavc/config"
	"github.com/ausocean/lessavc/codec/lessavc/internal/testutil"
)

func TestStreamWriterFirstWriteEmitsInitialNalUnits(t *testing.T) {
	var buf bytes.Buffer
	w := NewStreamWriter(&buf, config.Default(), nil)

	data, stride := testutil.Mono8Plane(32, 32)
	img := Image{Planes: Planes{Mono: true, Y: DataPlane{Data: data, Stride: stride, BitDepth: Depth8}}, Width: 32, Height: 32}

	if err := w.Write(img); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got := buf.Bytes()
	if !bytes.Contains(got, []byte{0x00, 0x00, 0x00, 0x01, 0x67}) {
		t.Error("expected SPS start code + header byte in first write")
	}
	if !bytes.Contains(got, []byte{0x00, 0x00, 0x00, 0x01, 0x68}) {
		t.Error("expected PPS start code + header byte in first write")
	}
}

func TestStreamWriterSubsequentWritesAppendOnlyFrame(t *testing.T) {
	var buf bytes.Buffer
	w := NewStreamWriter(&buf, config.Default(), nil)

	data, stride := testutil.Mono8Plane(32, 32)
	img := Image{Planes: Planes{Mono: true, Y: DataPlane{Data: data, Stride: stride, BitDepth: Depth8}}, Width: 32, Height: 32}

	if err := w.Write(img); err != nil {
		t.Fatalf("first Write() error = %v", err)
	}
	lenAfterFirst := buf.Len()

	if err := w.Write(img); err != nil {
		t.Fatalf("second Write() error = %v", err)
	}
	if buf.Len() <= lenAfterFirst {
		t.Error("expected buffer to grow after second write")
	}
}

func TestStreamWriterIntoInner(t *testing.T) {
	var buf bytes.Buffer
	w := NewStreamWriter(&buf, config.Default(), nil)

	inner, err := w.IntoInner()
	if err != nil {
		t.Fatalf("IntoInner() error = %v", err)
	}
	if inner != &buf {
		t.Error("IntoInner() did not return the original writer")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, bytes.ErrTooLarge
}

// TestStreamWriterIoErrorLeavesMovedOut checks that an I/O failure mid-write
// (after the encoder has already been constructed, or bytes already sent to
// the sink) leaves the writer in its moved-out state: the sink may hold a
// partial NAL unit, so silently allowing further writes could produce a
// corrupt stream.
func TestStreamWriterIoErrorLeavesMovedOut(t *testing.T) {
	w := NewStreamWriter(failingWriter{}, config.Default(), nil)

	data, stride := testutil.Mono8Plane(32, 32)
	img := Image{Planes: Planes{Mono: true, Y: DataPlane{Data: data, Stride: stride, BitDepth: Depth8}}, Width: 32, Height: 32}

	if err := w.Write(img); err == nil {
		t.Fatal("expected error from failing writer")
	}
	if err := w.Write(img); err == nil {
		t.Fatal("expected inconsistent-state error on reuse after I/O failure")
	}
}
