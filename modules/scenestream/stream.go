package scenestream

import (
	"context"
	"net/http"

	"github.com/scenevault/scenevault/internal/catalog"
	"github.com/scenevault/scenevault/internal/metrics"
	"github.com/scenevault/scenevault/internal/utils"
	"github.com/scenevault/scenevault/pkg/ffmpeg"
)

func (m *ModuleCtx) transcode(w http.ResponseWriter, r *http.Request, scene *catalog.Scene, p *plan) {
	logger := m.logger.With().
		Str("scene", scene.ID).
		Str("type", p.container).
		Float64("start", p.start).
		Logger()

	ctx, cancel := context.WithTimeout(r.Context(), m.config.StreamTimeout)
	defer cancel()

	stopOnShutdown := context.AfterFunc(m.ctx, cancel)
	defer stopOnShutdown()

	args := ffmpeg.StreamArgs(scene.Path, p.outputArgs)
	logger.Debug().Strs("args", args).Msg("starting transcode")

	proc, err := m.config.Spawner.Spawn(args)
	if err != nil {
		logger.Warn().Err(err).Msg("transcode could not be started")
		metrics.StreamsTotal.WithLabelValues(p.container, metrics.OutcomeFailed).Inc()
		http.Error(w, "500 not available", http.StatusInternalServerError)
		return
	}

	metrics.StreamsActive.Inc()
	defer metrics.StreamsActive.Dec()

	// client gone, timeout or shutdown
	stopKill := context.AfterFunc(ctx, func() {
		if err := proc.Kill(); err != nil {
			logger.Warn().Err(err).Msg("unable to kill transcode")
		}
	})

	writeStreamHeaders(w, p)
	w.WriteHeader(http.StatusOK)

	written, copyErr := utils.CopyToHTTP(ctx, w, proc.Stdout())

	killed := !stopKill()
	if copyErr != nil && !killed {
		// response is broken, nobody reads the rest
		killed = true
		if err := proc.Kill(); err != nil {
			logger.Warn().Err(err).Msg("unable to kill transcode")
		}
	}

	waitErr := proc.Wait()

	switch {
	case killed:
		logger.Debug().Err(waitErr).Int64("written", written).Msg("transcode killed")
		metrics.StreamsTotal.WithLabelValues(p.container, metrics.OutcomeKilled).Inc()
	case waitErr != nil:
		logger.Warn().Err(waitErr).Int64("written", written).Msg("transcode failed")
		metrics.StreamsTotal.WithLabelValues(p.container, metrics.OutcomeFailed).Inc()
	default:
		logger.Debug().Int64("written", written).Msg("transcode finished")
		metrics.StreamsTotal.WithLabelValues(p.container, metrics.OutcomeEnded).Inc()
	}
}

func writeStreamHeaders(w http.ResponseWriter, p *plan) {
	h := w.Header()
	h.Set("Accept-Ranges", "bytes")
	h.Set("Connection", "keep-alive")
	h.Set("Content-Disposition", "inline")
	h.Set("Content-Transfer-Encoding", "binary")
	h.Set("Content-Type", p.mimeType)
}
