// Package logging builds the zap loggers used by the binaries.
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"unbounded-life/internal/config"
)

// New builds a logger for cfg. Unknown levels fall back to info. Format
// "auto" picks the console encoder when stderr is a terminal.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	return build(cfg, isTerminal(os.Stderr))
}

func build(cfg config.LoggingConfig, tty bool) (*zap.Logger, error) {
	return zapConfig(cfg, tty).Build()
}

func zapConfig(cfg config.LoggingConfig, tty bool) zap.Config {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if resolveFormat(cfg.Format, tty) == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		if tty {
			zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		}
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg
}

func resolveFormat(format string, tty bool) string {
	switch format {
	case "json", "console":
		return format
	}
	if tty {
		return "console"
	}
	return "json"
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
