package transports

import "context"

// Transport is a serving surface for the triage layer. Implementations own
// their network lifecycle; Start blocks until the listener fails or Stop is
// called.
type Transport interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
