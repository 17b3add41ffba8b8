// Package commands implements the pwscripts subcommands.
package commands

import (
	"context"
	"log/slog"

	"github.com/Piiit/pwScripts/internal/cli/config"
)

// Version is stamped by the root command so output headers carry the
// build version.
var Version = "dev"

// ConfigKey is the context key under which the root command stores the
// loaded configuration.
type ConfigKey struct{}

// LoggerKey is the context key under which the root command stores the
// logger.
type LoggerKey struct{}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(ConfigKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		XScale:         config.DefaultXScale,
		YScale:         config.DefaultYScale,
		SubfigureLeft:  config.DefaultSubfigureLeft,
		SubfigureRight: config.DefaultSubfigureRight,
		OutputType:     config.DefaultOutputType,
		HistBuckets:    config.DefaultHistBuckets,
	}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(LoggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
