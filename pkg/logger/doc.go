// Package logger builds the structured loggers used by the application shell.
//
// Loggers are plain *slog.Logger values. This package adds three things on
// top of log/slog:
//   - options for output, level and format (JSON or text),
//   - context extractors that add request-scoped attributes such as the
//     request ID to every record,
//   - optional Sentry fan-out for warnings and errors.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithExtractors(middlewares.RequestIDExtractor()),
//	)
//
// An application that is given no logger falls back to NewNope, which
// discards everything.
//
// # Sentry
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//	    DSN:         os.Getenv("SENTRY_DSN"),
//	    Environment: "production",
//	    MinLevel:    slog.LevelWarn,
//	})
//
// With an empty DSN, or when the SDK fails to initialise, the Sentry logger
// degrades to the plain one.
package logger
