package logging

import (
	"log/slog"
)

const (
	ServiceKey = "service"
	ErrorKey   = "error"
)

// Child returns a new logger with the given service name added to the logger attrs.
func Child(logger *slog.Logger, serviceName string) *slog.Logger {
	return DefaultIfNil(logger).With(
		slog.String(ServiceKey, serviceName),
	)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(ErrorKey, "<nil>")
	}
	return slog.String(ErrorKey, err.Error())
}

// DefaultIfNil returns the default logger if the given logger is nil.
func DefaultIfNil(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
