package faker

import (
	"time"

	"github.com/decred/slog"
)

// EvaluatorLogEvent describes an evaluation attempt for logging.
type EvaluatorLogEvent struct {
	Engine   string
	Expr     string
	Locale   string
	Duration time.Duration
	Err      error
}

// EvaluatorLogger records evaluator events.
type EvaluatorLogger interface {
	LogEvaluation(EvaluatorLogEvent)
}

// EvaluatorLoggerFunc adapts a function to EvaluatorLogger.
type EvaluatorLoggerFunc func(EvaluatorLogEvent)

// LogEvaluation implements EvaluatorLogger.
func (f EvaluatorLoggerFunc) LogEvaluation(event EvaluatorLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopEvaluatorLogger struct{}

func (noopEvaluatorLogger) LogEvaluation(EvaluatorLogEvent) {}

// WithEvaluatorLogger attaches an evaluator logger.
func WithEvaluatorLogger(logger EvaluatorLogger) Option {
	return func(cfg *config) {
		if logger == nil {
			cfg.logger = noopEvaluatorLogger{}
			return
		}
		cfg.logger = logger
	}
}

// ResolveLogEvent describes one definition lookup. Source is the locale that
// supplied the value, empty when the lookup failed.
type ResolveLogEvent struct {
	Category Category
	Property string
	Locale   string
	Source   string
	Fallback bool
	Duration time.Duration
	Err      error
}

// ResolveLogger records resolver lookups.
type ResolveLogger interface {
	LogResolve(ResolveLogEvent)
}

// ResolveLoggerFunc adapts a function to ResolveLogger.
type ResolveLoggerFunc func(ResolveLogEvent)

// LogResolve implements ResolveLogger.
func (f ResolveLoggerFunc) LogResolve(event ResolveLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopResolveLogger struct{}

func (noopResolveLogger) LogResolve(ResolveLogEvent) {}

// WithResolveLogger attaches a resolver logger.
func WithResolveLogger(logger ResolveLogger) Option {
	return func(cfg *config) {
		if logger == nil {
			cfg.resolveLogger = noopResolveLogger{}
			return
		}
		cfg.resolveLogger = logger
	}
}

// SlogResolveLogger writes resolver events to a decred slog logger: hits at
// trace, fallbacks at debug, failures at warn.
func SlogResolveLogger(logger slog.Logger) ResolveLogger {
	if logger == nil {
		return noopResolveLogger{}
	}
	return ResolveLoggerFunc(func(event ResolveLogEvent) {
		switch {
		case event.Err != nil:
			logger.Warnf("resolve %s.%s locale=%s: %v", event.Category, event.Property, event.Locale, event.Err)
		case event.Fallback:
			logger.Debugf("resolve %s.%s locale=%s fell back to %s (%v)", event.Category, event.Property, event.Locale, event.Source, event.Duration)
		default:
			logger.Tracef("resolve %s.%s locale=%s (%v)", event.Category, event.Property, event.Locale, event.Duration)
		}
	})
}
