package serve

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/scenevault/scenevault/internal/catalog"
	"github.com/scenevault/scenevault/internal/config"
	"github.com/scenevault/scenevault/internal/server"
	"github.com/scenevault/scenevault/modules"
	"github.com/scenevault/scenevault/modules/scenestream"
)

const mediaPathPrefix = "/media/"

func NewCommand(engine *config.Engine) *Main {
	return &Main{
		Config: &Config{},
		Engine: engine,
	}
}

type Main struct {
	Config *Config
	Engine *config.Engine

	logger      zerolog.Logger
	server      *server.ServerManagerCtx
	sceneStream *scenestream.ModuleCtx
	modules     []modules.Module
}

func (main *Main) Preflight() {
	main.logger = log.With().Str("service", "serve").Logger()
}

func (main *Main) register(pathPrefix string, module modules.Module) {
	main.server.Handle(pathPrefix, module)
	main.modules = append(main.modules, module)
}

func (main *Main) start() {
	config := main.Config

	main.server = server.New(&server.Config{
		Bind:    config.Bind,
		Static:  config.Static,
		SSLCert: config.Cert,
		SSLKey:  config.Key,
		Proxy:   config.Proxy,
		PProf:   config.PProf,
		Metrics: config.Metrics,
	})

	main.sceneStream = scenestream.New(mediaPathPrefix, &scenestream.Config{
		Catalog:       catalog.New(catalog.Config{URL: config.CatalogURL}),
		FFmpegBinary:  main.Engine.FFmpegBinary,
		FFprobeBinary: main.Engine.FFprobeBinary,
		StreamTimeout: config.StreamTimeout,
	})
	main.register(mediaPathPrefix, main.sceneStream)
	main.logger.Info().Str("catalog", config.CatalogURL).Msg("scene streaming registered")

	main.server.Start()
}

func (main *Main) shutdown() {
	// running streams hold their connections open until killed
	for _, module := range main.modules {
		module.Shutdown()
	}
	main.logger.Info().Int("modules", len(main.modules)).Msg("modules shutdown")

	err := main.server.Shutdown()
	main.logger.Err(err).Msg("http manager shutdown")
}

func (main *Main) Run(cmd *cobra.Command, args []string) {
	main.logger.Info().Msg("starting main server")
	main.start()
	main.logger.Info().Msg("main ready")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	sig := <-quit

	main.logger.Warn().Msgf("received %s, attempting graceful shutdown", sig)
	main.shutdown()
	main.logger.Info().Msg("shutdown complete")
}
