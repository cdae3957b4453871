package scenestream

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/scenevault/scenevault/internal/catalog"
	"github.com/scenevault/scenevault/internal/utils"
	"github.com/scenevault/scenevault/pkg/ffmpeg"
	"github.com/scenevault/scenevault/pkg/ffprobe"
)

type Catalog interface {
	GetScene(ctx context.Context, id string) (*catalog.Scene, error)
	UpsertScene(ctx context.Context, scene *catalog.Scene) error
}

type Prober interface {
	Probe(ctx context.Context, path string) (*ffprobe.Metadata, error)
}

// Process is a running transcode whose stdout is the stream body.
type Process interface {
	Stdout() io.Reader
	Kill() error
	Wait() error
}

type Spawner interface {
	Spawn(args []string) (Process, error)
}

type Config struct {
	Catalog Catalog
	Prober  Prober
	Spawner Spawner

	FFmpegBinary  string
	FFprobeBinary string

	// Upper bound for a single transcoded response.
	StreamTimeout time.Duration
}

func (c Config) withDefaultValues() Config {
	if c.FFmpegBinary == "" {
		c.FFmpegBinary = "ffmpeg"
	}
	if c.FFprobeBinary == "" {
		c.FFprobeBinary = "ffprobe"
	}
	if c.StreamTimeout == 0 {
		c.StreamTimeout = 2 * time.Minute
	}
	if c.Prober == nil {
		c.Prober = ffprobe.Prober{Binary: c.FFprobeBinary}
	}
	if c.Spawner == nil {
		c.Spawner = ffmpegSpawner{binary: c.FFmpegBinary}
	}
	return c
}

type ffmpegSpawner struct {
	binary string
}

func (s ffmpegSpawner) Spawn(args []string) (Process, error) {
	logger := log.With().Str("module", "scenestream").Str("submodule", "ffmpeg").Logger()
	proc, err := ffmpeg.Start(s.binary, args, utils.LogWriter(logger))
	if err != nil {
		return nil, err
	}
	return proc, nil
}
