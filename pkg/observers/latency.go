package observers

import (
	"log/slog"
	"sync"
	"time"

	"github.com/alemhq/alem/pkg/metrics"
)

// LatencyObserver correlates turn_start/turn_done events per session and logs
// how long each turn took end to end.
type LatencyObserver struct {
	mu     sync.Mutex
	starts map[string]time.Time
	log    *slog.Logger
}

func NewLatencyObserver(log *slog.Logger) *LatencyObserver {
	if log == nil {
		log = slog.Default()
	}
	return &LatencyObserver{
		starts: make(map[string]time.Time),
		log:    log,
	}
}

func (o *LatencyObserver) RecordEvent(ev metrics.MetricsEvent) {
	sessionID := ""
	if ev.Tags != nil {
		sessionID = ev.Tags["session_id"]
	}
	if sessionID == "" {
		return
	}
	switch ev.Name {
	case "turn_start":
		o.mu.Lock()
		o.starts[sessionID] = ev.Time
		o.mu.Unlock()
	case "turn_done":
		o.mu.Lock()
		start, ok := o.starts[sessionID]
		delete(o.starts, sessionID)
		o.mu.Unlock()
		if !ok {
			return
		}
		o.log.Info("turn latency",
			"session_id", sessionID,
			"turn_ms", ev.Time.Sub(start).Milliseconds(),
			"escalated", ev.Tags["escalated"],
			"degraded", ev.Tags["degraded"],
		)
	}
}
