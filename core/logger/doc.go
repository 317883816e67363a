// Package logger provides structured logging utilities built on Go's standard slog package.
//
// Create loggers with the factory function and environment presets:
//
//	log := logger.New(
//		logger.WithDevelopment("contactform"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("submission persisted",
//		logger.Component("intake"),
//		logger.Count("rows", 3),
//	)
//
// Attribute helpers return an empty slog.Attr for nil values, so they are safe to
// pass unconditionally:
//
//	log.Error("notify failed", logger.Error(err))
package logger
