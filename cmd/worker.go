package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/scenevault/scenevault/internal/config"
	"github.com/scenevault/scenevault/internal/process"
)

func init() {
	service := process.NewCommand(engineConfig)

	command := &cobra.Command{
		Use:   "process",
		Short: "process the work queue",
		Long:  `generate previews, screenshots and trailers for every queued scene, exit when the queue is empty`,
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
			log.Panic().Err(err).Msg("unable to run process command")
		}
	}

	rootCmd.AddCommand(command)
}
