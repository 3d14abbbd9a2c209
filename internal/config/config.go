// Package config loads runtime settings from GLYPHSCENE_* environment
// variables on top of built-in defaults.
package config

import (
	"io"
	"os"
	"path/filepath"

	jlconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

type Config struct {
	FPS          int     `config:"GLYPHSCENE_FPS"`
	PhysicsScale float64 `config:"GLYPHSCENE_PHYSICS_SCALE"` // pixels per simulation unit
	Gravity      float64 `config:"GLYPHSCENE_GRAVITY"`       // simulation units per second squared
	CellWidth    float64 `config:"GLYPHSCENE_CELL_WIDTH"`    // pixels per logical cell
	CellHeight   float64 `config:"GLYPHSCENE_CELL_HEIGHT"`

	LogLevel      string `config:"GLYPHSCENE_LOG_LEVEL"`
	LogFile       string `config:"GLYPHSCENE_LOG_FILE"`
	StatsdAddress string `config:"GLYPHSCENE_STATSD_ADDRESS"`
	RunLogDir     string `config:"GLYPHSCENE_RUN_LOG_DIR"`

	SSHPort int    `config:"GLYPHSCENE_SSH_PORT"`
	HostKey string `config:"GLYPHSCENE_HOST_KEY"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		FPS:          30,
		PhysicsScale: 32,
		Gravity:      9.8,
		CellWidth:    8,
		CellHeight:   16,
		LogLevel:     "info",
		SSHPort:      2222,
		HostKey:      "server_host_key",
	}
}

// Load reads the environment over Default and validates the result.
func Load() (Config, error) {
	cfg := Default()
	if err := jlconfig.FromEnv().To(&cfg); err != nil {
		return Config{}, eris.Wrap(err, "read environment")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.FPS <= 0:
		return eris.Errorf("fps must be positive, got %d", c.FPS)
	case c.PhysicsScale <= 0:
		return eris.Errorf("physics scale must be positive, got %v", c.PhysicsScale)
	case c.CellWidth <= 0 || c.CellHeight <= 0:
		return eris.Errorf("cell size must be positive, got %vx%v", c.CellWidth, c.CellHeight)
	case c.SSHPort <= 0 || c.SSHPort > 65535:
		return eris.Errorf("invalid ssh port %d", c.SSHPort)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return eris.Wrapf(err, "log level %q", c.LogLevel)
	}
	return nil
}

// NewLogger builds the logger described by c. With no LogFile the logger
// writes to fallback. The returned closer releases the log file, if any.
func (c Config) NewLogger(fallback io.Writer) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.Nop(), nil, eris.Wrapf(err, "log level %q", c.LogLevel)
	}
	var w io.Writer = fallback
	var closer io.Closer = nopCloser{}
	if c.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(c.LogFile), 0o755); err != nil {
			return zerolog.Nop(), nil, eris.Wrap(err, "create log dir")
		}
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, eris.Wrap(err, "open log file")
		}
		w, closer = f, f
	}
	if w == nil {
		w = io.Discard
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
