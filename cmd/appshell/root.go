package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/appshell/middlewares"
	"github.com/dmitrymomot/appshell/pkg/logger"
	"github.com/dmitrymomot/appshell/pkg/registry"
)

// envPrefix maps APPSHELL_HTTP_ADDRESS onto http.address and so on.
const envPrefix = "APPSHELL"

var (
	configFile string
	logLevel   string
	logFormat  string
)

// defaults apply when neither the config file nor the environment sets a key.
var defaults = map[string]any{
	"http.address":          ":8080",
	"http.shutdown_timeout": "10s",
	"gzip":                  false,
	"session.cookie":        "appshell_session",
	"session.ttl":           "24h",
	"session.path":          "/",
	"session.same_site":     "lax",
	"session.redis_url":     "",
	"tls.domains":           "",
	"tls.cache_dir":         "certs",
	"sentry.dsn":            "",
	"sentry.environment":    "development",
}

var rootCmd = &cobra.Command{
	Use:           "appshell",
	Short:         "Application shell for web and console programs",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("appshell {{.Version}}\n")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logger.FormatJSON, "Log format (json, text)")
}

// loadConfig reads --config when given and layers the environment and
// defaults beneath it.
func loadConfig() (*registry.Registry, error) {
	opts := []registry.Option{
		registry.WithEnvPrefix(envPrefix),
		registry.WithDefaults(defaults),
	}
	if configFile == "" {
		return registry.New(nil, opts...), nil
	}

	cfg, err := registry.Load(configFile, opts...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *registry.Registry) *slog.Logger {
	return logger.NewWithSentry(
		logger.SentryConfig{
			DSN:         cfg.String("sentry.dsn", ""),
			Environment: cfg.String("sentry.environment", ""),
			Release:     version,
			MinLevel:    slog.LevelError,
		},
		logger.WithLevel(logger.ParseLevel(logLevel)),
		logger.WithFormat(logFormat),
		logger.WithExtractors(middlewares.RequestIDExtractor()),
	)
}
