// File: internal/observability/sink.go
package observability

import "go.uber.org/zap"

// Sink receives structured diagnostic events from the generation pipeline. It
// replaces ad hoc trace logging so callers decide whether diagnostics go anywhere.
type Sink interface {
	Record(name string, fields ...zap.Field)
}

// NopSink discards every event. It is the default.
type NopSink struct{}

func (NopSink) Record(string, ...zap.Field) {}

// ZapSink writes events to a logger at debug level.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink creates a sink backed by logger. A nil logger yields a no-op logger.
func NewZapSink(logger *zap.Logger) *ZapSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapSink{logger: logger.Named("diagnostics")}
}

func (s *ZapSink) Record(name string, fields ...zap.Field) {
	if ce := s.logger.Check(zap.DebugLevel, name); ce != nil {
		ce.Write(fields...)
	}
}

// OrNop returns sink, or NopSink when sink is nil.
func OrNop(sink Sink) Sink {
	if sink == nil {
		return NopSink{}
	}
	return sink
}
