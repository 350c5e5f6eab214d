package pipeline

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRequest indicates a malformed request, rejected before any I/O
// and before quota is consumed.
var ErrInvalidRequest = errors.New("invalid request")

// QuotaExceededError indicates the identity has exhausted its window.
// Rejected before any I/O.
type QuotaExceededError struct {
	ResetTime time.Time
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded, resets at %s", e.ResetTime.Format(time.RFC3339))
}

// RetrievalError indicates a non-retryable failure while fetching the
// source video. Timeout-class transport failures are retried inside the
// fetch stage and never surface as RetrievalError.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed: %v", e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// MetadataError indicates the resolution probe itself failed. Missing
// dimensions are not an error; they fall back to nominal defaults.
type MetadataError struct {
	Err error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("metadata unavailable: %v", e.Err)
}

func (e *MetadataError) Unwrap() error { return e.Err }

// ExtractionError indicates a single-timestamp capture failed. Extraction
// failures are assumed deterministic and are not retried. Timestamp is
// negative when the offending capture could not be identified (e.g. an
// unparsable output filename).
type ExtractionError struct {
	Timestamp float64
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.Timestamp < 0 {
		return fmt.Sprintf("extraction failed: %v", e.Err)
	}
	return fmt.Sprintf("extraction failed at %s: %v", TimestampKey(e.Timestamp), e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// CropGeometryError indicates a crop specification produced a degenerate
// or out-of-bounds rectangle.
type CropGeometryError struct {
	Timestamp float64
	Rect      Rect
	Err       error
}

func (e *CropGeometryError) Error() string {
	return fmt.Sprintf("invalid crop geometry at %s (left=%d top=%d width=%d height=%d): %v",
		TimestampKey(e.Timestamp), e.Rect.Left, e.Rect.Top, e.Rect.Width, e.Rect.Height, e.Err)
}

func (e *CropGeometryError) Unwrap() error { return e.Err }

// CompositionError indicates document rendering failed or had nothing to
// render.
type CompositionError struct {
	Err error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("composition failed: %v", e.Err)
}

func (e *CompositionError) Unwrap() error { return e.Err }

// PackagingError indicates the deliverable archive could not be assembled.
type PackagingError struct {
	Err error
}

func (e *PackagingError) Error() string {
	return fmt.Sprintf("packaging failed: %v", e.Err)
}

func (e *PackagingError) Unwrap() error { return e.Err }

// Classify names the error class for logging and HTTP mapping.
func Classify(err error) string {
	var (
		quotaErr    *QuotaExceededError
		retrieval   *RetrievalError
		metadata    *MetadataError
		extraction  *ExtractionError
		geometry    *CropGeometryError
		composition *CompositionError
		packaging   *PackagingError
	)
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "InvalidRequest"
	case errors.As(err, &quotaErr):
		return "QuotaExceeded"
	case errors.As(err, &retrieval):
		return "RetrievalFailed"
	case errors.As(err, &metadata):
		return "MetadataUnavailable"
	case errors.As(err, &extraction):
		return "ExtractionFailed"
	case errors.As(err, &geometry):
		return "InvalidCropGeometry"
	case errors.As(err, &composition):
		return "CompositionFailed"
	case errors.As(err, &packaging):
		return "PackagingFailed"
	default:
		return "Internal"
	}
}
