package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/lotwatch-hq/lotwatch/internal/config"
	"github.com/lotwatch-hq/lotwatch/internal/delta"
	"github.com/lotwatch-hq/lotwatch/internal/domain"
	"github.com/lotwatch-hq/lotwatch/internal/logger"
	"github.com/lotwatch-hq/lotwatch/internal/notify"
	"github.com/lotwatch-hq/lotwatch/internal/storage"
	"github.com/lotwatch-hq/lotwatch/pkg/providers"
	"github.com/lotwatch-hq/lotwatch/pkg/publishers"
)

// snapshotFetcher is the provider surface the watcher depends on. The source
// chain satisfies it; tests substitute stubs.
type snapshotFetcher interface {
	Fetch(ctx context.Context, criteria domain.Criteria) (providers.Snapshot, error)
}

// Watcher wires provider chain, delta engine, seen store, notifier, and the
// optional event fanout, and executes one inventory check per invocation.
type Watcher struct {
	cfg      *config.Config
	criteria domain.Criteria
	fetcher  snapshotFetcher
	store    storage.SeenStore
	notifier notify.Notifier
	fanout   *publishers.Fanout
	log      logger.Logger
}

// NewWatcher builds a watcher runtime from config.
func NewWatcher(ctx context.Context, cfg *config.Config, log logger.Logger) (*Watcher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	sourceReg, err := providers.LoadRegistry(cfg.SourcesFile)
	if err != nil {
		return nil, fmt.Errorf("load sources registry: %w", err)
	}
	sources := sourceReg.All()
	sourceIDs := make([]string, 0, len(sources))
	for _, s := range sources {
		sourceIDs = append(sourceIDs, s.ID)
	}
	log.InfoObj("sources registry loaded", "sources_meta", map[string]any{
		"count": len(sourceIDs),
		"ids":   sourceIDs,
	})

	client := providers.DefaultHTTPClient(cfg.HTTPTimeout)
	chain := providers.NewChain(providers.DefaultFetcherRegistry(client), sources, log)

	store, err := storage.NewStore(cfg.StorageType, cfg.SeenFile, cfg.BBoltPath)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":       cfg.StorageType,
		"seen_file":  cfg.SeenFile,
		"bbolt_path": cfg.BBoltPath,
	})

	fanout, err := buildFanout(ctx, cfg, log)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &Watcher{
		cfg: cfg,
		criteria: domain.Criteria{
			Model:       cfg.ModelCode,
			Condition:   cfg.Condition,
			Zip:         cfg.TargetZip,
			RadiusMiles: cfg.SearchDistance,
		},
		fetcher:  chain,
		store:    store,
		notifier: notify.NewFromConfig(cfg, log),
		fanout:   fanout,
		log:      log,
	}, nil
}

// buildFanout constructs the downstream event fanout when a publishers file
// is configured and present. No file means no fanout, which is the default.
func buildFanout(ctx context.Context, cfg *config.Config, log logger.Logger) (*publishers.Fanout, error) {
	if cfg.PublishersFile == "" {
		return nil, nil
	}
	if _, err := os.Stat(cfg.PublishersFile); err != nil {
		log.WarnObj("publishers file configured but not readable; event fanout disabled", "publishers_file", cfg.PublishersFile)
		return nil, nil
	}

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	enabled := publisherReg.Enabled()
	if len(enabled) == 0 {
		return nil, nil
	}

	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubs)
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count": fanout.Size(),
	})
	return fanout, nil
}

// Run executes one inventory check: load seen set, fetch, compute the delta,
// notify once for all new listings, persist. The seen set is saved whenever
// the fetch succeeded with a non-empty snapshot, even if notification failed;
// dropping newly-seen ids on a notify failure would re-notify the same
// listings on every later run.
func (w *Watcher) Run(ctx context.Context) error {
	if w == nil || w.fetcher == nil {
		return fmt.Errorf("watcher is not initialized")
	}

	start := time.Now()
	seen, err := w.store.Load()
	if err != nil || seen == nil {
		w.log.WarnObj("seen set unreadable; starting from empty", "load_error", errString(err))
		seen = make(map[string]struct{})
	}

	snap, err := w.fetcher.Fetch(ctx, w.criteria)
	if err != nil {
		w.log.ErrorObj("inventory fetch failed; persisted state untouched", "fetch_error", err.Error())
		return fmt.Errorf("fetch inventory: %w", err)
	}

	if len(snap.Listings) == 0 {
		w.log.InfoObj("no listings found", "run_meta", map[string]any{
			"source_id":  snap.SourceID,
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	fresh, updated := delta.Compute(snap.Listings, seen)

	if len(fresh) == 0 {
		w.log.InfoObj("no new listings since last check", "run_meta", map[string]any{
			"source_id":      snap.SourceID,
			"listings_total": len(snap.Listings),
			"seen_total":     len(seen),
		})
	} else {
		msg := buildDigest(w.cfg, w.criteria, fresh)
		if err := w.notifier.Notify(ctx, msg); err != nil {
			w.log.ErrorObj("notification failed; continuing to persist seen set", "notify_error", err.Error())
		}
		w.publishEvents(ctx, snap, fresh)
	}

	if err := w.store.Save(updated); err != nil {
		w.log.ErrorObj("seen set save failed; next run will re-notify these listings", "persist_error", err.Error())
		return fmt.Errorf("persist seen set: %w", err)
	}

	w.log.InfoObj("run completed", "run_meta", map[string]any{
		"source_id":      snap.SourceID,
		"listings_total": len(snap.Listings),
		"new_listings":   len(fresh),
		"seen_total":     len(updated),
		"elapsed_ms":     time.Since(start).Milliseconds(),
	})
	return nil
}

// publishEvents fans out one event per new listing. Failures are diagnostic
// only.
func (w *Watcher) publishEvents(ctx context.Context, snap providers.Snapshot, fresh []domain.Listing) {
	if w.fanout == nil || w.fanout.Size() == 0 {
		return
	}

	for _, l := range fresh {
		evt := publishers.NewEvent(snap.SourceID, snap.SourceName, l)
		if _, err := w.fanout.Publish(ctx, evt); err != nil {
			w.log.WarnObj("event publish failed", "publish_error", map[string]any{
				"listing_id": l.ID,
				"error":      err.Error(),
			})
		}
	}
}

// Close releases the storage backend.
func (w *Watcher) Close() {
	if w == nil || w.store == nil {
		return
	}
	if err := w.store.Close(); err != nil {
		w.log.ErrorObj("storage close failed", "error", err)
	}
}

func errString(err error) string {
	if err == nil {
		return "empty state"
	}
	return err.Error()
}
