package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML configuration file. Command-line flags override
// its values.
type fileConfig struct {
	Indent   int    `yaml:"indent"`
	LogLevel string `yaml:"log_level"`
	Trace    bool   `yaml:"trace"`
	REPL     struct {
		Prompt      string `yaml:"prompt"`
		HistoryFile string `yaml:"history_file"`
	} `yaml:"repl"`
}

func defaultConfig() *fileConfig {
	cfg := &fileConfig{LogLevel: "warn"}
	cfg.REPL.Prompt = "kunjs> "
	cfg.REPL.HistoryFile = filepath.Join(os.TempDir(), ".kunjs_history")
	return cfg
}

// loadConfig reads the config file at path. With an empty path it tries
// $HOME/.kunjs.yaml and falls back to the defaults if that does not exist.
func loadConfig(path string) (*fileConfig, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".kunjs.yaml")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}

// newLogger builds a console logger on stderr that logs at level and above.
func newLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", level)
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), lvl)
	return zap.New(core), nil
}
