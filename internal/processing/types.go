package processing

import (
	"context"

	"github.com/scenevault/scenevault/internal/catalog"
	"github.com/scenevault/scenevault/internal/queue"
	"github.com/scenevault/scenevault/pkg/ffmpeg"
	"github.com/scenevault/scenevault/pkg/ffprobe"
)

type Queue interface {
	Head(ctx context.Context) (*catalog.Scene, error)
	Submit(ctx context.Context, id string, result *queue.Result) error
	Delete(ctx context.Context, id string) error
}

type Generator interface {
	Preview(ctx context.Context, src ffmpeg.Source) (*ffmpeg.File, error)
	Screenshots(ctx context.Context, src ffmpeg.Source) ([]ffmpeg.File, error)
	Trailer(ctx context.Context, src ffmpeg.Source) (*ffmpeg.File, error)
}

type Prober interface {
	Probe(ctx context.Context, path string) (*ffprobe.Metadata, error)
}

type Config struct {
	Queue     Queue
	Generator Generator
	Prober    Prober

	GeneratePreviews    bool
	GenerateScreenshots bool
	GenerateTrailers    bool

	// Stop after this many items, 0 drains the whole queue.
	MaxItems int
}

func (c Config) withDefaultValues() Config {
	if c.Prober == nil {
		c.Prober = ffprobe.Prober{}
	}
	return c
}

// Stats summarizes a single run.
type Stats struct {
	Processed    int
	Deleted      int
	StepFailures int
}
