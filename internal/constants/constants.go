// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Image processing constants
const (
	// MaxPreviewSize is the maximum dimension (width or height) for preview thumbnails
	MaxPreviewSize = 1024

	// ExportQuality is the JPEG quality for print-ready exports
	ExportQuality = 100
)

// Job event constants
const (
	// EventChannelBuffer is the buffer size for per-listener job event channels
	EventChannelBuffer = 100
)

// Batch processing constants
const (
	// DefaultRetouchConcurrency is the default number of parallel generation
	// requests for the batch retouch command
	DefaultRetouchConcurrency = 2
)
