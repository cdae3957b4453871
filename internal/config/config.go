package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Config interface {
	Init(cmd *cobra.Command) error
	Set()
}

// Engine locates the external ffmpeg and ffprobe binaries, shared by
// every command.
type Engine struct {
	FFmpegBinary  string
	FFprobeBinary string
}

func (Engine) Init(cmd *cobra.Command) error {
	cmd.PersistentFlags().String("ffmpeg-binary", "ffmpeg", "path to the ffmpeg binary")
	if err := viper.BindPFlag("ffmpeg-binary", cmd.PersistentFlags().Lookup("ffmpeg-binary")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("ffprobe-binary", "ffprobe", "path to the ffprobe binary")
	if err := viper.BindPFlag("ffprobe-binary", cmd.PersistentFlags().Lookup("ffprobe-binary")); err != nil {
		return err
	}

	return nil
}

func (e *Engine) Set() {
	e.FFmpegBinary = viper.GetString("ffmpeg-binary")
	if e.FFmpegBinary == "" {
		e.FFmpegBinary = "ffmpeg"
	}

	e.FFprobeBinary = viper.GetString("ffprobe-binary")
	if e.FFprobeBinary == "" {
		e.FFprobeBinary = "ffprobe"
	}
}
