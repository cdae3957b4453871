package scenestream

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/scenevault/scenevault/internal/catalog"
	"github.com/scenevault/scenevault/internal/metrics"
	"github.com/scenevault/scenevault/pkg/ffprobe"
)

var errNoCodecs = errors.New("could not determine video codecs for transcoding")

type ModuleCtx struct {
	logger     zerolog.Logger
	pathPrefix string
	config     Config
	router     chi.Router

	probes singleflight.Group

	// canceled on shutdown, stops every running transcode
	ctx    context.Context
	cancel context.CancelFunc
}

func New(pathPrefix string, config *Config) *ModuleCtx {
	ctx, cancel := context.WithCancel(context.Background())

	module := &ModuleCtx{
		logger:     log.With().Str("module", "scenestream").Logger(),
		pathPrefix: "/" + strings.Trim(pathPrefix, "/") + "/",
		config:     config.withDefaultValues(),
		ctx:        ctx,
		cancel:     cancel,
	}

	router := chi.NewRouter()
	router.Get(module.pathPrefix+"{sceneId}", module.serveScene)
	router.Head(module.pathPrefix+"{sceneId}", module.serveScene)
	module.router = router

	return module
}

func (m *ModuleCtx) Shutdown() {
	m.cancel()
}

func (m *ModuleCtx) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.router.ServeHTTP(w, r)
}

func (m *ModuleCtx) serveScene(w http.ResponseWriter, r *http.Request) {
	sceneID := chi.URLParam(r, "sceneId")
	logger := m.logger.With().Str("scene", sceneID).Logger()

	scene, err := m.config.Catalog.GetScene(r.Context(), sceneID)
	if err != nil {
		logger.Err(err).Msg("unable to get scene")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if scene == nil || scene.Path == "" {
		http.NotFound(w, r)
		return
	}

	streamType := strings.ToLower(r.URL.Query().Get("type"))
	if streamType == "" || streamType == typeDirect {
		m.serveDirect(w, r, scene)
		return
	}

	if !scene.Meta.HasCodecs() {
		if err := m.ensureCodecs(r.Context(), scene); err != nil {
			if r.Context().Err() != nil {
				logger.Debug().Err(err).Msg("client went away while probing")
				return
			}

			logger.Err(err).Msg("unable to probe scene")
			metrics.StreamsTotal.WithLabelValues(streamType, metrics.OutcomeFailed).Inc()
			http.Error(w, errNoCodecs.Error(), http.StatusInternalServerError)
			return
		}
	}

	p, err := pickStrategy(streamType, scene.Meta)
	if err == nil {
		var start float64
		start, err = parseStart(r.URL.Query().Get("start"))
		if err == nil {
			p = p.withStart(start)
		}
	}

	var reqErr *requestError
	if errors.As(err, &reqErr) {
		logger.Debug().Str("reason", reqErr.message).Msg("stream rejected")
		metrics.StreamsTotal.WithLabelValues(streamType, metrics.OutcomeRejected).Inc()
		http.Error(w, reqErr.message, reqErr.status)
		return
	}

	if r.Method == http.MethodHead {
		writeStreamHeaders(w, p)
		w.WriteHeader(http.StatusOK)
		return
	}

	m.transcode(w, r, scene, p)
}

func (m *ModuleCtx) serveDirect(w http.ResponseWriter, r *http.Request, scene *catalog.Scene) {
	path, err := filepath.Abs(scene.Path)
	if err != nil {
		m.logger.Err(err).Str("path", scene.Path).Msg("unable to resolve path")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if info, err := os.Stat(path); err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	metrics.StreamsTotal.WithLabelValues(typeDirect, metrics.OutcomeEnded).Inc()
	http.ServeFile(w, r, path)
}

// ensureCodecs probes the file once per scene at a time and stores the
// result in the catalog. Concurrent callers share the same probe, which is
// bounded by the stream timeout and canceled on shutdown. A caller whose
// ctx is done stops waiting, the probe keeps running for the others.
func (m *ModuleCtx) ensureCodecs(ctx context.Context, scene *catalog.Scene) error {
	updated := *scene

	ch := m.probes.DoChan(scene.ID, func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(m.ctx, m.config.StreamTimeout)
		defer cancel()

		started := time.Now()
		data, err := m.config.Prober.Probe(ctx, updated.Path)
		metrics.ProbeDuration.Observe(time.Since(started).Seconds())
		if err != nil {
			metrics.ProbeFailuresTotal.Inc()
			return nil, err
		}

		updated.Meta.Merge(data)
		if err := m.config.Catalog.UpsertScene(ctx, &updated); err != nil {
			m.logger.Warn().Err(err).Str("scene", updated.ID).Msg("unable to store probed metadata")
		}

		return data, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return ctx.Err()
	}

	if res.Err != nil {
		return res.Err
	}

	scene.Meta.Merge(res.Val.(*ffprobe.Metadata))

	// files without audio are still streamable
	if scene.Meta.VideoCodec == "" {
		return errNoCodecs
	}

	m.logger.Debug().Str("scene", scene.ID).Bool("shared", res.Shared).Msg("scene probed")
	return nil
}
