package ffmpeg

import "errors"

var ErrUnknownDuration = errors.New("media duration is unknown")

type Config struct {
	FFmpegBinary string
	LibraryPath  string // generated files are stored in subfolders of this path

	PreviewFrames int
	PreviewWidth  int // width of a single preview frame

	ScreenshotCount int
	ScreenshotWidth int     // 0 keeps source width
	ScreenshotStart float64 // in percent of duration
	ScreenshotEnd   float64 // in percent of duration

	TrailerSegments      int
	TrailerSegmentLength float64 // in seconds

	JPEGQuality int
}

func (c Config) withDefaultValues() Config {
	if c.FFmpegBinary == "" {
		c.FFmpegBinary = "ffmpeg"
	}
	if c.LibraryPath == "" {
		c.LibraryPath = "library"
	}
	if c.PreviewFrames == 0 {
		c.PreviewFrames = 24
	}
	if c.PreviewWidth == 0 {
		c.PreviewWidth = 160
	}
	if c.ScreenshotCount == 0 {
		c.ScreenshotCount = 20
	}
	if c.ScreenshotEnd == 0 {
		c.ScreenshotEnd = 100
	}
	if c.TrailerSegments == 0 {
		c.TrailerSegments = 5
	}
	if c.TrailerSegmentLength == 0 {
		c.TrailerSegmentLength = 3
	}
	if c.JPEGQuality == 0 {
		c.JPEGQuality = 85
	}
	return c
}

// Source describes the media a derivative is generated from.
type Source struct {
	ID       string
	Path     string
	Duration float64 // in seconds
}

// File is a generated derivative on disk.
type File struct {
	Path   string
	Size   int64
	Width  int
	Height int
}
