package serve

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Config struct {
	Bind    string
	Static  string
	Cert    string
	Key     string
	Proxy   bool
	PProf   bool
	Metrics bool

	CatalogURL    string
	StreamTimeout time.Duration
}

func (Config) Init(cmd *cobra.Command) error {
	cmd.PersistentFlags().String("bind", "127.0.0.1:8080", "address/port/socket to serve http")
	if err := viper.BindPFlag("bind", cmd.PersistentFlags().Lookup("bind")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("static", "", "path to client files to serve")
	if err := viper.BindPFlag("static", cmd.PersistentFlags().Lookup("static")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("cert", "", "path to the SSL cert")
	if err := viper.BindPFlag("cert", cmd.PersistentFlags().Lookup("cert")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("key", "", "path to the SSL key")
	if err := viper.BindPFlag("key", cmd.PersistentFlags().Lookup("key")); err != nil {
		return err
	}

	cmd.PersistentFlags().Bool("proxy", false, "allow reverse proxies")
	if err := viper.BindPFlag("proxy", cmd.PersistentFlags().Lookup("proxy")); err != nil {
		return err
	}

	cmd.PersistentFlags().Bool("pprof", false, "enable pprof endpoint available at /debug/pprof")
	if err := viper.BindPFlag("pprof", cmd.PersistentFlags().Lookup("pprof")); err != nil {
		return err
	}

	cmd.PersistentFlags().Bool("metrics", true, "enable prometheus endpoint available at /metrics")
	if err := viper.BindPFlag("metrics", cmd.PersistentFlags().Lookup("metrics")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("catalog.url", "http://127.0.0.1:8000", "base url of the catalog service")
	if err := viper.BindPFlag("catalog.url", cmd.PersistentFlags().Lookup("catalog.url")); err != nil {
		return err
	}

	cmd.PersistentFlags().Duration("stream.timeout", 2*time.Minute, "maximum duration of a transcoded stream")
	if err := viper.BindPFlag("stream.timeout", cmd.PersistentFlags().Lookup("stream.timeout")); err != nil {
		return err
	}

	return nil
}

func (c *Config) Set() {
	c.Bind = viper.GetString("bind")
	c.Static = viper.GetString("static")
	c.Cert = viper.GetString("cert")
	c.Key = viper.GetString("key")
	c.Proxy = viper.GetBool("proxy")
	c.PProf = viper.GetBool("pprof")
	c.Metrics = viper.GetBool("metrics")

	c.CatalogURL = viper.GetString("catalog.url")
	c.StreamTimeout = viper.GetDuration("stream.timeout")
}
