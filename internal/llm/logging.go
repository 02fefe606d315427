package llm

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// LoggingProvider is a decorator that emits one structured log event per
// request.
type LoggingProvider struct {
	inner  Provider
	logger zerolog.Logger
}

// WithLogging wraps a Provider with request logging.
func WithLogging(p Provider, logger zerolog.Logger) Provider {
	return &LoggingProvider{inner: p, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	evt := l.logger.Info()
	if err != nil {
		evt = l.logger.Error().Err(err)
	}
	evt = evt.
		Str("model", l.inner.ModelID()).
		Str("purpose", PurposeFrom(ctx)).
		Dur("latency", time.Since(start)).
		Int("messages", len(req.Messages))
	if req.Schema != nil {
		evt = evt.Str("schema", req.Schema.Name)
	}
	if resp != nil {
		evt = evt.
			Str("served_by", resp.Model).
			Str("stop_reason", resp.StopReason).
			Int("input_tokens", resp.Usage.InputTokens).
			Int("output_tokens", resp.Usage.OutputTokens)
	}
	evt.Msg("llm generate")

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
