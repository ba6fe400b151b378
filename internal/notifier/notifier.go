// Package notifier announces finished summaries to the configured publishers,
// at most once per URL within the store's retention window.
package notifier

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samvad-hq/samvad-summarizer/internal/domain"
	"github.com/samvad-hq/samvad-summarizer/internal/logger"
	"github.com/samvad-hq/samvad-summarizer/internal/metrics"
	"github.com/samvad-hq/samvad-summarizer/internal/storage"
	"github.com/samvad-hq/samvad-summarizer/pkg/publishers"
)

const defaultPublishTimeout = 30 * time.Second

// Dispatcher delivers an event to every sink.
type Dispatcher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
	Size() int
}

// Notifier dedupes and dispatches summary events.
type Notifier struct {
	store   storage.Store
	fanout  Dispatcher
	metrics *metrics.Metrics
	log     logger.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// New builds a Notifier. A nil store disables dedupe.
func New(store storage.Store, fanout Dispatcher, m *metrics.Metrics, log logger.Logger) *Notifier {
	if store == nil {
		store, _ = storage.NewStore(storage.TypeNone, "", storage.Options{})
	}
	if m == nil {
		m = metrics.New()
	}
	return &Notifier{
		store:   store,
		fanout:  fanout,
		metrics: m,
		log:     logger.Ensure(log),
		timeout: defaultPublishTimeout,
	}
}

// Notify announces res for url unless it was already announced. It returns
// the number of sinks that accepted the event.
func (n *Notifier) Notify(ctx context.Context, url string, res domain.PipelineResult) (int, error) {
	if n == nil || n.fanout == nil || n.fanout.Size() == 0 {
		return 0, nil
	}

	announced, err := n.store.Announced(url)
	if err != nil {
		return 0, fmt.Errorf("check announced: %w", err)
	}
	if announced {
		n.metrics.IncrementDuplicatesSuppressed()
		n.log.DebugObj("summary already announced", "notifier_duplicate", map[string]any{"url": url})
		return 0, nil
	}

	delivered, pubErr := n.fanout.Publish(ctx, publishers.NewEvent(url, res))
	if delivered > 0 {
		n.metrics.IncrementAnnounced()
		if err := n.store.MarkAnnounced(url); err != nil {
			n.log.WarnObj("failed to record announcement", "notifier_store_error", map[string]any{
				"url":   url,
				"error": err.Error(),
			})
		}
	}
	if pubErr != nil {
		return delivered, pubErr
	}

	n.log.InfoObj("summary announced", "notifier_delivered", map[string]any{
		"url":       url,
		"delivered": delivered,
	})
	return delivered, nil
}

// NotifyAsync runs Notify in the background, detached from the caller's
// cancellation. Failures are only logged.
func (n *Notifier) NotifyAsync(ctx context.Context, url string, res domain.PipelineResult) {
	if n == nil || n.fanout == nil || n.fanout.Size() == 0 {
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
		defer cancel()

		if _, err := n.Notify(pubCtx, url, res); err != nil {
			n.log.ErrorObj("summary announcement failed", "notifier_error", map[string]any{
				"url":   url,
				"error": err.Error(),
			})
		}
	}()
}

// Wait blocks until background notifications finish.
func (n *Notifier) Wait() {
	if n == nil {
		return
	}
	n.wg.Wait()
}
