// Package logging provides a minimal logging facade for valist.
//
// The Logger interface wraps a subset of log/slog so applications can plug in
// their own implementation. Two backends ship with the package:
//
//	logger := logging.New(nil)                      // slog.Default()
//	logger := logging.NewZerolog(zerolog.New(os.Stderr))
//
// Libraries in this module never log through globals; they take a Logger
// through an option and default to Discard.
//
// Redacted marks attributes whose value was intentionally dropped:
//
//	logger.Info(ctx, "library loaded", logging.Redacted("path"))
//	// path="[redacted]"
package logging
