package processing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/scenevault/scenevault/internal/catalog"
	"github.com/scenevault/scenevault/internal/metrics"
	"github.com/scenevault/scenevault/internal/queue"
	"github.com/scenevault/scenevault/pkg/ffmpeg"
)

// LoopCtx drains the work queue, one item at a time.
type LoopCtx struct {
	logger zerolog.Logger
	config Config
}

func New(config *Config) *LoopCtx {
	return &LoopCtx{
		logger: log.With().Str("module", "processing").Logger(),
		config: config.withDefaultValues(),
	}
}

// Run returns once the queue is empty. Errors talking to the queue
// owner end the run, errors of a single item only remove that item.
func (l *LoopCtx) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if l.config.MaxItems > 0 && stats.Processed+stats.Deleted >= l.config.MaxItems {
			l.logger.Info().Int("max-items", l.config.MaxItems).Msg("item limit reached")
			return stats, nil
		}

		l.logger.Debug().Msg("getting queue head")
		scene, err := l.config.Queue.Head(ctx)
		if err != nil {
			return stats, fmt.Errorf("unable to get queue head: %w", err)
		}

		if scene == nil {
			l.logger.Info().
				Int("processed", stats.Processed).
				Int("deleted", stats.Deleted).
				Int("step-failures", stats.StepFailures).
				Msg("processing done")
			return stats, nil
		}

		logger := l.logger.With().Str("scene", scene.ID).Str("path", scene.Path).Logger()
		logger.Info().Msg("processing")

		result, failures, err := l.process(ctx, logger, scene)
		stats.StepFailures += failures

		if err == nil {
			err = l.config.Queue.Submit(ctx, scene.ID, result)
		}

		if err != nil {
			logger.Err(err).Msg("processing error, removing item from queue")

			if err := l.config.Queue.Delete(ctx, scene.ID); err != nil {
				return stats, fmt.Errorf("unable to delete queue item %s: %w", scene.ID, err)
			}

			stats.Deleted++
			metrics.ItemsProcessedTotal.WithLabelValues("deleted").Inc()
			continue
		}

		stats.Processed++
		metrics.ItemsProcessedTotal.WithLabelValues("processed").Inc()
	}
}

// process runs every enabled step. A failing step is logged and left out
// of the result, only unexpected errors fail the whole item.
func (l *LoopCtx) process(ctx context.Context, logger zerolog.Logger, scene *catalog.Scene) (result *queue.Result, failures int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while processing: %v", r)
		}
	}()

	src := ffmpeg.Source{
		ID:       scene.ID,
		Path:     scene.Path,
		Duration: scene.Meta.Duration,
	}

	runPreview := l.config.GeneratePreviews && scene.Preview == nil

	// steps without a duration fail on their own with ffmpeg.ErrUnknownDuration
	needsDuration := runPreview || l.config.GenerateScreenshots || l.config.GenerateTrailers
	if needsDuration && src.Duration <= 0 {
		data, err := l.config.Prober.Probe(ctx, scene.Path)
		if err != nil {
			failures++
			l.stepFailed(logger, "probe", err)
		} else {
			src.Duration = data.Duration
		}
	}

	result = queue.NewResult()

	if runPreview {
		file, err := l.config.Generator.Preview(ctx, src)
		if err != nil {
			failures++
			l.stepFailed(logger, "preview", err)
		} else {
			image := newImage(scene, fmt.Sprintf("%s (preview)", scene.Name), file)
			result.Thumbs = append(result.Thumbs, *image)
			result.Scene.Preview = &image.ID
		}
	} else {
		logger.Debug().Msg("skipping preview generation")
	}

	if l.config.GenerateScreenshots {
		files, err := l.config.Generator.Screenshots(ctx, src)
		if err != nil {
			failures++
			l.stepFailed(logger, "screenshots", err)
			files = nil
		}

		for i := range files {
			image := newImage(scene, fmt.Sprintf("%s %d (screenshot)", scene.Name, i+1), &files[i])
			// keeps screenshots ordered when sorted by date
			image.AddedOn += int64(i)
			result.Images = append(result.Images, *image)
		}
	} else {
		logger.Debug().Msg("skipping screenshot generation")
	}

	if l.config.GenerateTrailers {
		file, err := l.config.Generator.Trailer(ctx, src)
		if err != nil {
			failures++
			l.stepFailed(logger, "trailer", err)
		} else {
			trailer := catalog.NewTrailer(fmt.Sprintf("%s (trailer)", scene.Name))
			trailer.Path = file.Path
			trailer.Scene = scene.ID
			trailer.Meta.Size = file.Size

			result.Trailer = trailer
			result.Scene.Trailer = &trailer.ID
		}
	} else {
		logger.Debug().Msg("skipping trailer generation")
	}

	return result, failures, nil
}

func (l *LoopCtx) stepFailed(logger zerolog.Logger, step string, err error) {
	metrics.StepFailuresTotal.WithLabelValues(step).Inc()
	logger.Err(err).Str("step", step).Msg("unable to generate")
}

func newImage(scene *catalog.Scene, name string, file *ffmpeg.File) *catalog.Image {
	image := catalog.NewImage(name)
	image.Path = file.Path
	image.Scene = scene.ID
	image.Meta = catalog.ImageMeta{
		Size: file.Size,
		Dimensions: catalog.Dimensions{
			Width:  file.Width,
			Height: file.Height,
		},
	}
	return image
}
