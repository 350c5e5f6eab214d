package pipeline

import (
	"math"
	"strconv"
)

// =============================================================================
// Common Types
// =============================================================================

// Dimension represents width and height in pixels.
type Dimension struct {
	Width  int
	Height int
}

// Rect represents an absolute pixel rectangle within a frame.
type Rect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// CropSpec is a percentage-based crop override for one frame. All values
// lie in [0, 100]. LeftOffset and BottomOffset are expressed as distances
// from the right and top edges respectively.
type CropSpec struct {
	Left         float64 `json:"left" yaml:"left"`
	LeftOffset   float64 `json:"leftOffset" yaml:"left_offset"`
	Bottom       float64 `json:"bottom" yaml:"bottom"`
	BottomOffset float64 `json:"bottomOffset" yaml:"bottom_offset"`
}

// Frame is one extracted still, identified by its source timestamp.
// Timestamps are the sole reliable join key between a capture request and
// its output file; directory enumeration order must never be trusted.
type Frame struct {
	// Timestamp is the source position in seconds, normalized to
	// centisecond precision.
	Timestamp float64
	// Path is the extracted, uncropped image file.
	Path string
	// Size is the frame's raw pixel dimensions.
	Size Dimension
	// CropRect is the absolute rectangle applied to this frame.
	CropRect Rect
	// CroppedPath is the cropped image file, set by the crop stage.
	CroppedPath string
}

// NormalizeTimestamp rounds a timestamp to centisecond precision, matching
// the precision embedded in extracted frame filenames.
func NormalizeTimestamp(t float64) float64 {
	return math.Round(t*100) / 100
}

// TimestampKey formats a normalized timestamp as its canonical string form,
// with trailing zeros trimmed ("12.5", not "12.50").
func TimestampKey(t float64) string {
	return strconv.FormatFloat(NormalizeTimestamp(t), 'f', -1, 64)
}

// =============================================================================
// Fetch Stage Types
// =============================================================================

// FetchInput contains parameters for source retrieval.
type FetchInput struct {
	// SourceURL is the opaque video locator.
	SourceURL string
	// DestPath is where the complete video payload is written.
	DestPath string
}

// FetchState tracks the retrieval state machine. Each Execute owns its
// own state; a fetch stage instance is shared across concurrent requests.
type FetchState int

const (
	FetchIdle FetchState = iota
	FetchConnecting
	FetchStreaming
	FetchRetrying
	FetchFinished
	FetchFailed
)

// String returns the state name.
func (s FetchState) String() string {
	switch s {
	case FetchIdle:
		return "idle"
	case FetchConnecting:
		return "connecting"
	case FetchStreaming:
		return "streaming"
	case FetchRetrying:
		return "retrying"
	case FetchFinished:
		return "finished"
	case FetchFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FetchResult contains the retrieval outcome.
type FetchResult struct {
	// Path is the destination file holding the complete payload.
	Path string
	// Bytes is the total payload size, when known.
	Bytes int64
	// Attempts is the number of connection attempts, including retries.
	Attempts int
	// State is the terminal retrieval state.
	State FetchState
}

// =============================================================================
// Probe Stage Types
// =============================================================================

// ProbeInput contains parameters for resolution probing.
type ProbeInput struct {
	VideoPath string
}

// ProbeResult contains the resolved source dimensions.
type ProbeResult struct {
	Size Dimension
	// Source identifies where the dimensions came from: "probe",
	// "container" or "default".
	Source string
}

// =============================================================================
// Extract Stage Types
// =============================================================================

// ExtractInput contains parameters for frame extraction.
type ExtractInput struct {
	VideoPath string
	// Timestamps in the order supplied by the caller. Extraction follows
	// this order; the result is re-sorted ascending afterwards.
	Timestamps []float64
	OutputDir  string
	// Size is the source resolution, recorded on every frame.
	Size Dimension
}

// ExtractResult contains the extracted frames in canonical order
// (ascending timestamp), regardless of extraction or enumeration order.
type ExtractResult struct {
	Frames []Frame
}

// =============================================================================
// Crop Stage Types
// =============================================================================

// CropInput contains parameters for the per-frame crop loop.
type CropInput struct {
	Frames []Frame
	// Specs maps TimestampKey(t) to a crop override. Frames without an
	// entry are cropped to the full frame.
	Specs     map[string]CropSpec
	OutputDir string
}

// CropResult contains the cropped frames in ascending timestamp order.
type CropResult struct {
	Frames []Frame
}

// =============================================================================
// Compose Stage Types
// =============================================================================

// ComposeInput contains parameters for document composition.
type ComposeInput struct {
	// Frames in ascending timestamp order; their cropped images become the
	// document's single vertical column.
	Frames []Frame
	Title  string
	// WorkspaceDir is where the document markup is written before rendering.
	WorkspaceDir string
}

// ComposeResult contains the rendered document.
type ComposeResult struct {
	// PDF is the rendered page.
	PDF []byte
	// ContentHeight is the realized document height in CSS pixels.
	ContentHeight int
	// HTMLPath is the composed markup written into the workspace.
	HTMLPath string
}

// =============================================================================
// Pack Stage Types
// =============================================================================

// PackInput contains parameters for deliverable packaging.
type PackInput struct {
	Frames []Frame
	PDF    []byte
}

// PackResult contains the final deliverable.
type PackResult struct {
	Archive     []byte
	MemberCount int
}
