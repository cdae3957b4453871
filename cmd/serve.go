package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/scenevault/scenevault/internal/config"
	"github.com/scenevault/scenevault/internal/serve"
)

func init() {
	service := serve.NewCommand(engineConfig)

	command := &cobra.Command{
		Use:   "serve",
		Short: "serve scenes over http",
		Long:  `serve scenes over http, directly or transcoded on demand`,
		Run:   service.Run,
	}

	configs := []config.Config{
		service.Config,
	}

	cobra.OnInitialize(func() {
		for _, cfg := range configs {
			cfg.Set()
		}
		service.Preflight()
	})

	for _, cfg := range configs {
		if err := cfg.Init(command); err != nil {
			log.Panic().Err(err).Msg("unable to run serve command")
		}
	}

	rootCmd.AddCommand(command)
}
