package process

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/scenevault/scenevault/internal/config"
	"github.com/scenevault/scenevault/internal/processing"
	"github.com/scenevault/scenevault/internal/queue"
	"github.com/scenevault/scenevault/pkg/ffmpeg"
	"github.com/scenevault/scenevault/pkg/ffprobe"
)

func NewCommand(engine *config.Engine) *Main {
	return &Main{
		Config: &Config{},
		Engine: engine,
	}
}

type Main struct {
	Config *Config
	Engine *config.Engine

	logger zerolog.Logger
}

func (main *Main) Preflight() {
	main.logger = log.With().Str("service", "process").Logger()
}

func (main *Main) loop() *processing.LoopCtx {
	config := main.Config

	return processing.New(&processing.Config{
		Queue: queue.New(queue.Config{
			URL:      config.QueueURL,
			Password: config.Password,
		}),
		Generator: ffmpeg.NewGenerator(&ffmpeg.Config{
			FFmpegBinary:         main.Engine.FFmpegBinary,
			LibraryPath:          config.LibraryPath,
			PreviewFrames:        config.PreviewFrames,
			ScreenshotCount:      config.ScreenshotCount,
			TrailerSegments:      config.TrailerSegments,
			TrailerSegmentLength: config.TrailerSegmentLength,
		}),
		Prober: ffprobe.Prober{Binary: main.Engine.FFprobeBinary},

		GeneratePreviews:    config.GeneratePreviews,
		GenerateScreenshots: config.GenerateScreenshots,
		GenerateTrailers:    config.GenerateTrailers,
		MaxItems:            config.MaxItems,
	})
}

// Run drains the queue once. The exit status tells the supervisor
// whether the queue owner was reachable the whole time.
func (main *Main) Run(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	main.logger.Info().Str("queue", main.Config.QueueURL).Msg("starting processing")
	stats, err := main.loop().Run(ctx)
	stop()

	if err != nil {
		main.logger.Error().Err(err).
			Int("processed", stats.Processed).
			Int("deleted", stats.Deleted).
			Msg("processing failed")
		os.Exit(1)
	}

	main.logger.Info().
		Int("processed", stats.Processed).
		Int("deleted", stats.Deleted).
		Int("step-failures", stats.StepFailures).
		Msg("processing done")
}
