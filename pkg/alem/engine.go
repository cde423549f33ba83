package alem

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alemhq/alem/pkg/configutil"
	"github.com/alemhq/alem/pkg/crisis"
	"github.com/alemhq/alem/pkg/lang"
	"github.com/alemhq/alem/pkg/logging"
	"github.com/alemhq/alem/pkg/metrics"
	"github.com/alemhq/alem/pkg/observers"
	"github.com/alemhq/alem/pkg/redact"
	"github.com/alemhq/alem/pkg/reply"
	"github.com/alemhq/alem/pkg/runner"
	"github.com/alemhq/alem/pkg/store"
	"github.com/alemhq/alem/pkg/transports"
	"github.com/alemhq/alem/pkg/transports/httpapi"
	"github.com/alemhq/alem/pkg/transports/ws"
	"github.com/alemhq/alem/pkg/triage"
)

// Engine wires configuration into a running service: provider, store,
// orchestrator, and transports. It owns their lifecycles.
type Engine struct {
	cfg        Config
	log        *slog.Logger
	orch       *triage.Orchestrator
	store      store.Store
	transports []transports.Transport
	asyncObs   *metrics.AsyncObserver
	eventsFile *os.File

	runCtx context.Context
	cancel context.CancelFunc

	// runMu guards runErr; transports fail from their own goroutines.
	runMu  sync.Mutex
	runErr error
}

type EngineOptions struct {
	Config    Config
	Providers *ProviderRegistry
}

func NewEngine(opts EngineOptions) (*Engine, error) {
	cfg := opts.Config
	log := logging.InitLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	slog.SetDefault(log)
	redact.SetEnabled(cfg.Privacy.RedactPII)

	log.Info("alem_init",
		"environment", cfg.Environment,
		"llm_provider", cfg.Vendors.LLM.Provider,
		"store_driver", cfg.Store.Driver,
	)

	e := &Engine{cfg: cfg, log: log}

	obsList := []metrics.Observer{
		observers.NewLatencyObserver(log),
		observers.NewLoggerObserver(log),
	}
	if path := cfg.Observability.EventsPath; path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open events file: %w", err)
		}
		e.eventsFile = f
		obsList = append(obsList, metrics.NewJSONLObserver(f))
	}
	e.asyncObs = metrics.NewAsyncObserver(observers.NewMultiObserver(obsList...), cfg.Observability.AsyncBuffer)

	registry := opts.Providers
	if registry == nil {
		registry = NewProviderRegistry()
	}
	svc, err := registry.BuildLLM(cfg.Vendors.LLM.Provider, cfg)
	if err != nil {
		return nil, err
	}

	st, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}
	e.store = st

	classifier := crisis.NewClassifier(crisis.Config{
		EscalationKeywords: cfg.Safety.EscalationKeywords,
		DangerKeywords:     cfg.Safety.DangerKeywords,
		SuicidalKeywords:   cfg.Safety.SuicidalKeywords,
		DistressPhrases:    cfg.Safety.DistressPhrases,
		DefaultLanguage:    cfg.Languages.Default,
	})
	ident := lang.NewIdentifier(svc, logging.NewComponentLogger(log, "lang"),
		lang.WithFallback(lang.Parse(cfg.Languages.Default)))
	gen := reply.NewGenerator(svc, classifier, logging.NewComponentLogger(log, "reply"))
	e.orch = triage.NewOrchestrator(
		ident,
		lang.NewSettler(ident),
		classifier,
		gen,
		logging.NewComponentLogger(log, "triage"),
		triage.WithMaxHistory(cfg.Conversation.MaxHistory),
		triage.WithObserver(e.asyncObs),
	)

	e.transports = append(e.transports, httpapi.NewServer(cfg.Server.Addr, e.orch, e.store, logging.NewComponentLogger(log, "httpapi")))
	if cfg.Server.WSAddr != "" {
		e.transports = append(e.transports, ws.NewTransport(cfg.Server.WSAddr, e.orch, logging.NewComponentLogger(log, "ws")))
	}
	return e, nil
}

// Orchestrator exposes the turn state machine for embedding without the
// bundled transports.
func (e *Engine) Orchestrator() *triage.Orchestrator { return e.orch }

// Run serves until ctx is cancelled or a transport fails, then drains
// everything through the lifecycle runner.
func (e *Engine) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	e.cancel = cancel
	e.runCtx = ctx

	lr := runner.NewLifecycleRunner(e, runner.Hooks{OnStart: e.startTransports}, 15*time.Second)
	if err := lr.Run(ctx); err != nil {
		return err
	}
	e.runMu.Lock()
	defer e.runMu.Unlock()
	return e.runErr
}

func (e *Engine) startTransports() {
	for _, t := range e.transports {
		t := t
		go func() {
			if err := t.Start(e.runCtx); err != nil {
				e.log.Error("transport failed", "transport", t.Name(), "err", err)
				e.fail(err)
			}
		}()
	}
}

// fail records the first transport error and tears down the run context.
func (e *Engine) fail(err error) {
	e.runMu.Lock()
	if e.runErr == nil {
		e.runErr = err
	}
	e.runMu.Unlock()
	e.cancel()
}

// Drain implements runner.Drainer: stop the transports, flush observers,
// release the store.
func (e *Engine) Drain() error {
	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	for _, t := range e.transports {
		if err := t.Stop(shutdownCtx); err != nil {
			e.log.Warn("transport shutdown failed", "transport", t.Name(), "err", err)
		}
	}
	if err := e.store.Close(); err != nil {
		e.log.Warn("store close failed", "err", err)
	}
	e.asyncObs.Close()
	if e.eventsFile != nil {
		_ = e.eventsFile.Close()
	}
	return nil
}

type redisStoreSettings struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTLHours int    `mapstructure:"ttl_hours"`
}

type postgresStoreSettings struct {
	DSN string `mapstructure:"dsn"`
}

func buildStore(cfg Config) (store.Store, error) {
	switch store.Driver(cfg.Store.Driver) {
	case store.DriverMemory:
		return store.NewStore(store.DriverMemory)
	case store.DriverRedis:
		schema := configutil.Schema{Required: []string{"addr"}, Optional: []string{"password", "db", "ttl_hours"}}
		if err := configutil.ValidateSettings(cfg.Store.Settings, schema); err != nil {
			return nil, fmt.Errorf("store settings: %w", err)
		}
		var settings redisStoreSettings
		if err := configutil.DecodeSettings(cfg.Store.Settings, &settings); err != nil {
			return nil, fmt.Errorf("store settings: %w", err)
		}
		client := redis.NewClient(&redis.Options{
			Addr:     settings.Addr,
			Password: settings.Password,
			DB:       settings.DB,
		})
		return store.NewStore(store.DriverRedis,
			store.WithRedisClient(client),
			store.WithTTL(time.Duration(settings.TTLHours)*time.Hour),
		)
	case store.DriverPostgres:
		schema := configutil.Schema{Required: []string{"dsn"}}
		if err := configutil.ValidateSettings(cfg.Store.Settings, schema); err != nil {
			return nil, fmt.Errorf("store settings: %w", err)
		}
		var settings postgresStoreSettings
		if err := configutil.DecodeSettings(cfg.Store.Settings, &settings); err != nil {
			return nil, fmt.Errorf("store settings: %w", err)
		}
		db, err := sql.Open("postgres", settings.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		st, err := store.NewStore(store.DriverPostgres, store.WithDB(db))
		if err != nil {
			return nil, err
		}
		ctx, done := context.WithTimeout(context.Background(), 10*time.Second)
		defer done()
		if err := st.(*store.PostgresStore).EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}
}
