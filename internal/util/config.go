package util

import (
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds runtime settings and flags.
type Config struct {
	Scenario         int    `env:"LWOT_SCENARIO" envDefault:"1"`
	Ideology         int    `env:"LWOT_IDEOLOGY" envDefault:"1"`
	Seed             string `env:"LWOT_SEED"`
	DataDir          string `env:"LWOT_DATA_DIR" envDefault:".lwot"`
	DSN              string `env:"DATABASE_URL"`
	LogLevel         string `env:"LWOT_LOG_LEVEL" envDefault:"info"`
	LogFile          string `env:"LWOT_LOG_FILE" envDefault:"lwot.log"`
	StrictInvariants bool   `env:"LWOT_STRICT_INVARIANTS" envDefault:"true"`
	Theme            string `env:"LWOT_THEME" envDefault:"catppuccin"`
	Plain            bool   `env:"LWOT_PLAIN" envDefault:"false"`
}

// LoadConfig reads an optional .env file and then the environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Scenario < 1 || c.Scenario > 4 {
		return errors.Errorf("scenario %d out of range 1-4", c.Scenario)
	}
	if c.Ideology < 1 || c.Ideology > 5 {
		return errors.Errorf("ideology %d out of range 1-5", c.Ideology)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log level")
	}
	return nil
}

// SnapshotPath is the bbolt file under DataDir.
func (c Config) SnapshotPath() string {
	return filepath.Join(c.DataDir, "lwot.db")
}

// NewLogger builds the process logger. The full-screen shell owns the terminal, so
// toFile sends output to LogFile instead of stderr.
func NewLogger(c Config, toFile bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}
	out := []string{"stderr"}
	if toFile {
		out = []string{c.LogFile}
	}
	cfg := zap.Config{
		Level:       zap.NewAtomicLevelAt(level),
		Development: level == zapcore.DebugLevel,
		Encoding:    "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      out,
		ErrorOutputPaths: []string{"stderr"},
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return l, nil
}
