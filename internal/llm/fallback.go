package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"leaselens/internal/model"
)

// Fallback fills pattern-missed fields through an optional provider.
// With no provider configured it is a no-op: the rest of the pipeline
// never notices the difference and never touches the network.
type Fallback struct {
	provider Provider
	limiter  *rate.Limiter
	config   Config
}

// NewFallback creates the fallback from configuration. A missing or
// empty provider yields a disabled (but usable) fallback.
func NewFallback(config Config) (*Fallback, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}
	return NewFallbackWithProvider(provider, config), nil
}

// NewFallbackWithProvider wires an explicit provider (tests inject
// stubs here)
func NewFallbackWithProvider(provider Provider, config Config) *Fallback {
	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	burst := config.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Fallback{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		config:   config,
	}
}

// IsEnabled reports whether a provider is configured
func (f *Fallback) IsEnabled() bool {
	return f != nil && f.provider != nil
}

// Provider returns the configured provider (nil when disabled)
func (f *Fallback) Provider() Provider {
	if f == nil {
		return nil
	}
	return f.provider
}

// Fill asks the provider for the missing fields. Transport errors,
// timeouts, and malformed output all degrade to an empty result; the
// error return exists for diagnostics only and demotes nothing that the
// patterns already resolved.
func (f *Fallback) Fill(ctx context.Context, text string, missing []model.FieldKind) (map[model.FieldKind]string, error) {
	if !f.IsEnabled() || len(missing) == 0 {
		return nil, nil
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	resp, err := f.provider.ExtractFacts(ctx, ExtractRequest{
		Text:    text,
		Missing: missing,
	})
	if err != nil {
		return nil, fmt.Errorf("%s fallback: %w", f.provider.Name(), err)
	}

	return resp.Values, nil
}
