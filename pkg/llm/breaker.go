package llm

import (
	"context"
	"time"

	"github.com/alemhq/alem/pkg/errorsx"
	"github.com/alemhq/alem/pkg/resilience"
)

// BreakerService wraps a Service with a circuit breaker keyed on rate-limit
// responses. While the circuit is open, calls fail fast with a tagged error
// instead of hitting the provider; the triage layer degrades those turns to
// canned replies.
type BreakerService struct {
	inner   Service
	breaker *resilience.CircuitBreaker
}

func WithBreaker(inner Service, threshold int, cooldown time.Duration) *BreakerService {
	return &BreakerService{
		inner:   inner,
		breaker: resilience.NewCircuitBreaker(threshold, cooldown),
	}
}

func (s *BreakerService) Name() string { return s.inner.Name() }

func (s *BreakerService) Classify(ctx context.Context, prompt string) (string, error) {
	return s.call(ctx, prompt, s.inner.Classify)
}

func (s *BreakerService) Complete(ctx context.Context, prompt string) (string, error) {
	return s.call(ctx, prompt, s.inner.Complete)
}

func (s *BreakerService) call(ctx context.Context, prompt string, fn func(context.Context, string) (string, error)) (string, error) {
	if !s.breaker.Allow() {
		return "", errorsx.New(errorsx.ReasonCircuitOpen)
	}
	text, err := fn(ctx, prompt)
	if err != nil {
		s.breaker.OnError(err)
		if resilience.IsRateLimit(err) {
			return "", errorsx.Wrap(err, errorsx.ReasonRateLimit)
		}
		return "", err
	}
	s.breaker.OnSuccess()
	return text, nil
}

var _ Service = (*BreakerService)(nil)
