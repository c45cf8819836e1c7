package session

import "github.com/rs/zerolog"

// CacheLogger adapts a zerolog.Logger to cache.Logger.
type CacheLogger struct {
	Logger zerolog.Logger
}

// Error logs a backend failure at error level.
func (l CacheLogger) Error(msg string, err error) {
	l.Logger.Error().Err(err).Msg(msg)
}
