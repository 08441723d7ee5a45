package cmd

import (
	"fmt"
	"io"
	"strings"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"brewchain/cmd/brewsim/sim"
)

const (
	envPrefix = "BREWSIM"

	flagScenario = "scenario"
	flagLogLevel = "log-level"
	flagLogJSON  = "log-json"
	flagOutput   = "output"
	flagListen   = "listen"
)

// Config is the resolved simulator configuration: flags, then BREWSIM_*
// environment variables, then an optional config file.
type Config struct {
	Scenario string `mapstructure:"scenario"`
	LogLevel string `mapstructure:"log-level"`
	LogJSON  bool   `mapstructure:"log-json"`
	Output   string `mapstructure:"output"`
	Listen   string `mapstructure:"listen"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(flagLogLevel, zerolog.InfoLevel.String())
	v.SetDefault(flagOutput, sim.FormatJSON)
	v.SetDefault(flagListen, "127.0.0.1:1318")
	return v
}

func loadConfig(cmd *cobra.Command, v *viper.Viper) (Config, error) {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return Config{}, err
	}
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Scenario == "" {
		return Config{}, fmt.Errorf("--%s is required", flagScenario)
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg Config) (log.Logger, error) {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", flagLogLevel, cfg.LogLevel, err)
	}
	opts := []log.Option{log.LevelOption(lvl)}
	if cfg.LogJSON {
		opts = append(opts, log.OutputJSONOption())
	} else {
		opts = append(opts, log.ColorOption(false))
	}
	return log.NewLogger(w, opts...), nil
}
