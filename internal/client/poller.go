package client

import (
	"context"
	"log"
	"sync"
	"time"

	"arcbank/internal/models"
	"arcbank/internal/services/transfer"
)

// DefaultPollInterval is how often the poller reconciles missed
// transfer updates. The channel is best effort, so the period is fixed
// rather than backed off.
const DefaultPollInterval = 30 * time.Second

// Fetcher pulls a page of transfer updates from the server.
type Fetcher interface {
	FetchUpdates(ctx context.Context, since *time.Time, limit int) (*transfer.UpdatesPage, error)
}

// UpdateHandler receives each decided transfer exactly once across the
// combined push and polling paths.
type UpdateHandler func(update transfer.TransferUpdate)

// PollerConfig configures the reconciliation poller.
type PollerConfig struct {
	Interval time.Duration
	Limit    int
	// LiveConnected, when set, lets the poller skip a cycle while the
	// push channel is up. Pure bandwidth optimization: polling while
	// connected stays safe because the dedup set absorbs repeats.
	LiveConnected func() bool
}

// Poller periodically diffs known transfer state against the server to
// recover transitions the push channel missed.
type Poller struct {
	fetcher Fetcher
	handler UpdateHandler
	dedup   *Dedup
	config  PollerConfig

	mu        sync.Mutex
	watermark time.Time

	stopOnce sync.Once
	done     chan struct{}
}

// NewPoller creates a reconciliation poller. The dedup set is shared
// with whatever consumes the live channel so both paths feed one
// notification stream.
func NewPoller(fetcher Fetcher, dedup *Dedup, handler UpdateHandler, config PollerConfig) *Poller {
	if fetcher == nil {
		panic("fetcher is required")
	}
	if dedup == nil {
		dedup = NewDedup()
	}
	if config.Interval <= 0 {
		config.Interval = DefaultPollInterval
	}

	return &Poller{
		fetcher: fetcher,
		handler: handler,
		dedup:   dedup,
		config:  config,
		done:    make(chan struct{}),
	}
}

// Start runs the polling loop until Stop is called or ctx is done.
// A failed cycle is logged and retried on the next interval; it never
// takes the host down.
func (p *Poller) Start(ctx context.Context) {
	ticker := time.NewTicker(p.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.done:
			return
		case <-ticker.C:
			if p.config.LiveConnected != nil && p.config.LiveConnected() {
				continue
			}
			if err := p.Tick(ctx); err != nil {
				log.Printf("poller: tick failed, retrying next interval: %v", err)
			}
		}
	}
}

// Stop terminates the polling loop. Safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.done) })
}

// Tick performs one reconciliation cycle: fetch everything updated
// after the watermark, surface decided transfers not yet seen, then
// advance the watermark. The watermark moves to the time captured
// before the fetch — not to the newest fetched timestamp — so clock
// skew between client and server cannot open a gap; overlap is fine
// because the dedup set drops repeats.
func (p *Poller) Tick(ctx context.Context) error {
	now := time.Now().UTC()

	p.mu.Lock()
	since := p.watermark
	p.mu.Unlock()

	var sincePtr *time.Time
	if !since.IsZero() {
		sincePtr = &since
	}

	page, err := p.fetcher.FetchUpdates(ctx, sincePtr, p.config.Limit)
	if err != nil {
		return err
	}

	for _, update := range page.Updates {
		if update.Status != models.TransferStatusCompleted && update.Status != models.TransferStatusRejected {
			continue
		}
		if p.dedup.Observe(update.TransferID, update.Status) {
			continue
		}
		if p.handler != nil {
			p.handler(update)
		}
	}

	p.mu.Lock()
	p.watermark = now
	p.mu.Unlock()
	return nil
}

// Watermark returns the current reconciliation boundary.
func (p *Poller) Watermark() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.watermark
}
