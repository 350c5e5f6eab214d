package ports

// DebugSink saves intermediate pipeline artifacts for debugging.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveVideoMetaJSON saves the resolved source metadata as JSON.
	SaveVideoMetaJSON(data []byte) error

	// SaveRawFrame saves an extracted, uncropped frame.
	SaveRawFrame(timestamp float64, data []byte) error

	// SaveCroppedFrame saves a cropped frame.
	SaveCroppedFrame(timestamp float64, data []byte) error

	// SaveDocumentHTML saves the composed document markup.
	SaveDocumentHTML(data []byte) error

	// SaveDocumentPDF saves the rendered document page.
	SaveDocumentPDF(data []byte) error
}
