package process

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Config struct {
	QueueURL    string
	Password    string
	LibraryPath string

	GeneratePreviews    bool
	GenerateScreenshots bool
	GenerateTrailers    bool

	ScreenshotCount      int
	PreviewFrames        int
	TrailerSegments      int
	TrailerSegmentLength float64 // in seconds

	MaxItems int
}

func (Config) Init(cmd *cobra.Command) error {
	cmd.PersistentFlags().String("queue.url", "http://127.0.0.1:3000", "base url of the queue owner")
	if err := viper.BindPFlag("queue.url", cmd.PersistentFlags().Lookup("queue.url")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("auth.password", "", "password sent to the queue owner")
	if err := viper.BindPFlag("auth.password", cmd.PersistentFlags().Lookup("auth.password")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("library-path", "library", "directory where generated files are stored")
	if err := viper.BindPFlag("library-path", cmd.PersistentFlags().Lookup("library-path")); err != nil {
		return err
	}

	cmd.PersistentFlags().Bool("processing.generate-previews", true, "generate preview strips")
	if err := viper.BindPFlag("processing.generate-previews", cmd.PersistentFlags().Lookup("processing.generate-previews")); err != nil {
		return err
	}

	cmd.PersistentFlags().Bool("processing.generate-screenshots", true, "generate screenshots")
	if err := viper.BindPFlag("processing.generate-screenshots", cmd.PersistentFlags().Lookup("processing.generate-screenshots")); err != nil {
		return err
	}

	cmd.PersistentFlags().Bool("processing.generate-trailers", false, "generate trailers")
	if err := viper.BindPFlag("processing.generate-trailers", cmd.PersistentFlags().Lookup("processing.generate-trailers")); err != nil {
		return err
	}

	cmd.PersistentFlags().Int("processing.screenshot-count", 20, "number of screenshots per scene")
	if err := viper.BindPFlag("processing.screenshot-count", cmd.PersistentFlags().Lookup("processing.screenshot-count")); err != nil {
		return err
	}

	cmd.PersistentFlags().Int("processing.preview-frames", 24, "number of frames in a preview strip")
	if err := viper.BindPFlag("processing.preview-frames", cmd.PersistentFlags().Lookup("processing.preview-frames")); err != nil {
		return err
	}

	cmd.PersistentFlags().Int("processing.trailer-segments", 5, "number of clips in a trailer")
	if err := viper.BindPFlag("processing.trailer-segments", cmd.PersistentFlags().Lookup("processing.trailer-segments")); err != nil {
		return err
	}

	cmd.PersistentFlags().Float64("processing.trailer-segment-length", 3, "length of a trailer clip in seconds")
	if err := viper.BindPFlag("processing.trailer-segment-length", cmd.PersistentFlags().Lookup("processing.trailer-segment-length")); err != nil {
		return err
	}

	cmd.PersistentFlags().Int("processing.max-items", 0, "stop after this many items, 0 drains the queue")
	if err := viper.BindPFlag("processing.max-items", cmd.PersistentFlags().Lookup("processing.max-items")); err != nil {
		return err
	}

	return nil
}

func (c *Config) Set() {
	c.QueueURL = viper.GetString("queue.url")
	c.Password = viper.GetString("auth.password")
	c.LibraryPath = viper.GetString("library-path")

	c.GeneratePreviews = viper.GetBool("processing.generate-previews")
	c.GenerateScreenshots = viper.GetBool("processing.generate-screenshots")
	c.GenerateTrailers = viper.GetBool("processing.generate-trailers")

	c.ScreenshotCount = viper.GetInt("processing.screenshot-count")
	c.PreviewFrames = viper.GetInt("processing.preview-frames")
	c.TrailerSegments = viper.GetInt("processing.trailer-segments")
	c.TrailerSegmentLength = viper.GetFloat64("processing.trailer-segment-length")

	c.MaxItems = viper.GetInt("processing.max-items")
}
