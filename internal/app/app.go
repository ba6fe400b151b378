package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/samvad-hq/samvad-summarizer/internal/config"
	"github.com/samvad-hq/samvad-summarizer/internal/domain"
	"github.com/samvad-hq/samvad-summarizer/internal/extractor"
	"github.com/samvad-hq/samvad-summarizer/internal/langid"
	"github.com/samvad-hq/samvad-summarizer/internal/logger"
	"github.com/samvad-hq/samvad-summarizer/internal/metrics"
	"github.com/samvad-hq/samvad-summarizer/internal/notifier"
	"github.com/samvad-hq/samvad-summarizer/internal/pipeline"
	"github.com/samvad-hq/samvad-summarizer/internal/server"
	"github.com/samvad-hq/samvad-summarizer/internal/storage"
	"github.com/samvad-hq/samvad-summarizer/internal/summarizer"
	"github.com/samvad-hq/samvad-summarizer/internal/translator"
	"github.com/samvad-hq/samvad-summarizer/pkg/httpclient"
	"github.com/samvad-hq/samvad-summarizer/pkg/inference"
	"github.com/samvad-hq/samvad-summarizer/pkg/publishers"
)

const shutdownTimeout = 10 * time.Second

// App is the summarizer runtime. It owns the pipeline, the optional
// notification path and the resources behind them.
type App struct {
	cfg      *config.Config
	pipeline *pipeline.Pipeline
	metrics  *metrics.Metrics
	notifier *notifier.Notifier
	fanout   *publishers.Fanout
	store    storage.Store
	log      logger.Logger
}

// New builds the runtime from config. Model backends are only declared here;
// they are constructed on first use.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	return NewWithRegistry(ctx, cfg, inference.DefaultRegistry(), log)
}

// NewWithRegistry is New with a custom backend registry.
func NewWithRegistry(ctx context.Context, cfg *config.Config, backends inference.Registry, log logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)
	if ctx == nil {
		ctx = context.Background()
	}

	modelReg, err := inference.LoadRegistry(cfg.ModelsFile)
	if err != nil {
		return nil, fmt.Errorf("load models registry: %w", err)
	}
	modelSummaries := make([]map[string]string, 0, len(modelReg.All()))
	for _, m := range modelReg.All() {
		modelSummaries = append(modelSummaries, map[string]string{
			"id":    m.ID,
			"task":  m.Task,
			"type":  m.Type,
			"model": m.Model,
		})
	}
	log.InfoObj("models registry loaded", "models_meta", map[string]any{
		"count":  len(modelSummaries),
		"models": modelSummaries,
	})

	m := metrics.New()
	a := &App{cfg: cfg, metrics: m, log: log}

	opts := []pipeline.Option{pipeline.WithMetrics(m)}
	if cfg.PublishersFile != "" {
		if err := a.initNotifier(ctx); err != nil {
			return nil, err
		}
		opts = append(opts, pipeline.WithNotifier(a.notifier))
	}

	ex := extractor.New(
		httpclient.NewRestyClient(cfg.FetchTimeout, httpclient.WithMaxBodyBytes(int64(cfg.FetchMaxBodyBytes))),
		extractor.Options{
			UserAgent:      cfg.FetchUserAgent,
			AcceptLanguage: "en,hi;q=0.9,*;q=0.5",
			MaxBodyBytes:   cfg.FetchMaxBodyBytes,
		},
		log,
	)
	tr := translator.New(
		langid.New(log),
		inference.TranslationLoader(backends, modelReg),
		translator.Options{MaxChars: cfg.TranslateMaxChars},
		log,
	)
	sum := summarizer.New(
		inference.SummarizationLoader(backends, modelReg),
		summarizer.Options{MaxChars: cfg.SummarizeMaxChars},
		log,
	)

	a.pipeline = pipeline.New(ex, tr, sum, log, opts...)
	return a, nil
}

func (a *App) initNotifier(ctx context.Context) error {
	publisherReg, err := publishers.LoadRegistry(a.cfg.PublishersFile)
	if err != nil {
		return fmt.Errorf("load publishers registry: %w", err)
	}
	enabled := publisherReg.Enabled()
	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, a.log)
	if err != nil {
		return fmt.Errorf("build publishers: %w", err)
	}
	a.fanout = publishers.NewFanout(pubClients)

	publisherSummaries := make([]map[string]string, 0, len(enabled))
	for _, pubCfg := range enabled {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	a.log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	store, err := storage.NewStore(a.cfg.StorageType, a.cfg.BBoltPath, storage.Options{
		AnnounceTTL:     a.cfg.StorageTTL,
		CleanupInterval: a.cfg.StorageCleanupInterval,
	})
	if err != nil {
		_ = a.fanout.Close()
		return fmt.Errorf("init storage: %w", err)
	}
	a.store = store
	a.log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     a.cfg.StorageType,
		"path":                     a.cfg.BBoltPath,
		"announce_ttl_seconds":     int(a.cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(a.cfg.StorageCleanupInterval.Seconds()),
	})

	a.notifier = notifier.New(store, a.fanout, a.metrics, a.log)
	return nil
}

// Handler returns the HTTP routes served by Serve.
func (a *App) Handler() http.Handler {
	return server.New(a.pipeline, a.metrics.GetStats, a.log).Routes()
}

// Serve runs the HTTP server until ctx is cancelled, then shuts down gracefully.
func (a *App) Serve(ctx context.Context) error {
	if a == nil || a.pipeline == nil {
		return fmt.Errorf("app is not initialized")
	}
	defer a.Close()

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.InfoObj("http server listening", "http_addr", a.cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		a.log.InfoObj("http server shutting down", "reason", ctx.Err().Error())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// SummarizeOnce runs the pipeline for a single URL and waits for any
// notification it triggered.
func (a *App) SummarizeOnce(ctx context.Context, url string) (domain.PipelineResult, error) {
	if a == nil || a.pipeline == nil {
		return domain.PipelineResult{}, fmt.Errorf("app is not initialized")
	}
	res, err := a.pipeline.Run(ctx, url)
	a.notifier.Wait()
	return res, err
}

// Stats returns the runtime counters.
func (a *App) Stats() map[string]interface{} {
	return a.metrics.GetStats()
}

// Close drains pending notifications and releases publishers and storage.
func (a *App) Close() {
	if a == nil {
		return
	}
	a.notifier.Wait()
	if a.fanout != nil {
		if err := a.fanout.Close(); err != nil {
			a.log.ErrorObj("publisher close failed", "error", err.Error())
		}
		a.fanout = nil
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.ErrorObj("storage close failed", "error", err.Error())
		}
		a.store = nil
	}
}
