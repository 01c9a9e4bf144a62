package logger

import (
	"pscan/core/facet"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a new zap logger based on the configuration.
func New(cfg *Config) (*zap.Logger, error) {
	var config zap.Config

	if cfg.Level == "debug" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
		if lvl, err := zapcore.ParseLevel(cfg.Level); err == nil {
			config.Level = zap.NewAtomicLevelAt(lvl)
		}
	}

	if cfg.Format == "console" {
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.DisableStacktrace = true
	} else {
		config.Encoding = "json"
	}

	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.MessageKey = "message"

	return config.Build()
}

// WithRayID returns a logger with the ray_id field set from the Fiber context.
func WithRayID(l *zap.Logger, c *fiber.Ctx) *zap.Logger {
	rid := c.Locals("ray_id")
	if str, ok := rid.(string); ok && str != "" {
		return l.With(zap.String("ray_id", str))
	}
	return l
}

// NoticeReporter returns a facet.Reporter that logs every notice at warn level.
func NoticeReporter(l *zap.Logger) facet.Reporter {
	return func(n facet.Notice) {
		fields := []zap.Field{zap.String("kind", string(n.Kind))}
		if !n.Key.IsZero() {
			fields = append(fields, zap.Stringer("key", n.Key))
		}
		if n.Path != "" {
			fields = append(fields, zap.String("path", n.Path))
		}
		if n.Discarded != "" {
			fields = append(fields, zap.String("discarded", n.Discarded))
		}
		l.Warn(n.Message, fields...)
	}
}
