/*
DESCRIPTION
  errors.go defines the error taxonomy surfaced by package lessavc.

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

import "fmt"

// Kind classifies the errors that package lessavc can return.
type Kind int

const (
	// KindDataShapeProblem indicates an image's strides, heights or widths
	// violate the requirements of the image input contract.
	KindDataShapeProblem Kind = iota

	// KindUnsupportedImageSize indicates the frame-cropping arithmetic
	// cannot represent the required padding.
	KindUnsupportedImageSize

	// KindUnsupportedFormat is reserved for future extension.
	KindUnsupportedFormat

	// KindInconsistentState indicates a StreamWriter was used after being
	// left in an internal moved-out state, which should never happen in
	// correct callers.
	KindInconsistentState

	// KindIO indicates the underlying byte sink returned an error.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindDataShapeProblem:
		return "data shape problem"
	case KindUnsupportedImageSize:
		return "unsupported image size"
	case KindUnsupportedFormat:
		return "unsupported format"
	case KindInconsistentState:
		return "inconsistent state"
	case KindIO:
		return "io error"
	default:
		return "unknown"
	}
}

// Error is the error type package lessavc uses for its error kinds. Some are
// returned wrapped with context (plane-size errors carry the plane name), and
// the slice-header alignment guard returns a plain error with no Kind.
// Callers that need to distinguish error kinds should use errors.As and
// inspect Kind.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // wrapped cause, if any; e.g. the sink's IoError.
}

func (e *Error) Error() string {
	if e.Msg == "" && e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func dataShapeProblem(msg string) error {
	return &Error{Kind: KindDataShapeProblem, Msg: msg}
}

func unsupportedImageSize() error {
	return &Error{Kind: KindUnsupportedImageSize, Msg: "cropping cannot represent required padding"}
}

func inconsistentState() error {
	return &Error{Kind: KindInconsistentState, Msg: "writer observed in moved-out state"}
}

func ioError(err error) error {
	return &Error{Kind: KindIO, Msg: "byte sink write failed", Err: err}
}
