package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"arcbank/internal/models"
	"arcbank/internal/services/transfer"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// fakeFetcher returns canned pages and records the since values it was
// asked for.
type fakeFetcher struct {
	pages  []*transfer.UpdatesPage
	err    error
	calls  int
	sinces []*time.Time
}

func (f *fakeFetcher) FetchUpdates(ctx context.Context, since *time.Time, limit int) (*transfer.UpdatesPage, error) {
	f.calls++
	f.sinces = append(f.sinces, since)
	if f.err != nil {
		return nil, f.err
	}
	page := f.pages[0]
	if len(f.pages) > 1 {
		f.pages = f.pages[1:]
	}
	return page, nil
}

func update(id uint, status string) transfer.TransferUpdate {
	return transfer.TransferUpdate{
		TransferID: id,
		Reference:  "TRF-test",
		Status:     status,
		Amount:     decimal.RequireFromString("100.00"),
		BankName:   "Chase",
		Timestamp:  time.Now().UTC(),
	}
}

func TestPollerTickSurfacesDecidedTransfers(t *testing.T) {
	fetcher := &fakeFetcher{pages: []*transfer.UpdatesPage{{
		Updates: []transfer.TransferUpdate{
			update(1, models.TransferStatusCompleted),
			update(2, models.TransferStatusRejected),
			update(3, models.TransferStatusPending),
		},
	}}}

	var got []transfer.TransferUpdate
	p := NewPoller(fetcher, nil, func(u transfer.TransferUpdate) {
		got = append(got, u)
	}, PollerConfig{})

	err := p.Tick(context.Background())

	assert.NoError(t, err)
	// The pending entry produces no notification.
	assert.Len(t, got, 2)
	assert.Equal(t, uint(1), got[0].TransferID)
	assert.Equal(t, uint(2), got[1].TransferID)
}

func TestPollerTickDropsAlreadySeenUpdates(t *testing.T) {
	fetcher := &fakeFetcher{pages: []*transfer.UpdatesPage{{
		Updates: []transfer.TransferUpdate{update(1, models.TransferStatusCompleted)},
	}}}

	dedup := NewDedup()
	// The push channel delivered this transition first.
	dedup.Observe(1, models.TransferStatusCompleted)

	var got []transfer.TransferUpdate
	p := NewPoller(fetcher, dedup, func(u transfer.TransferUpdate) {
		got = append(got, u)
	}, PollerConfig{})

	assert.NoError(t, p.Tick(context.Background()))
	assert.Empty(t, got)

	// A second cycle returning the same page stays quiet too.
	assert.NoError(t, p.Tick(context.Background()))
	assert.Empty(t, got)
}

func TestPollerWatermarkAdvancesOnlyOnSuccess(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("server unavailable")}
	p := NewPoller(fetcher, nil, nil, PollerConfig{})

	err := p.Tick(context.Background())
	assert.Error(t, err)
	assert.True(t, p.Watermark().IsZero())

	fetcher.err = nil
	fetcher.pages = []*transfer.UpdatesPage{{}}

	before := time.Now().UTC()
	assert.NoError(t, p.Tick(context.Background()))
	mark := p.Watermark()
	assert.False(t, mark.IsZero())
	assert.False(t, mark.Before(before))
}

func TestPollerFirstTickFetchesFromTheBeginning(t *testing.T) {
	fetcher := &fakeFetcher{pages: []*transfer.UpdatesPage{{}}}
	p := NewPoller(fetcher, nil, nil, PollerConfig{})

	assert.NoError(t, p.Tick(context.Background()))
	assert.NoError(t, p.Tick(context.Background()))

	// No watermark yet on the first call, the captured one on the second.
	assert.Nil(t, fetcher.sinces[0])
	assert.NotNil(t, fetcher.sinces[1])
}

func TestPollerStartSkipsCyclesWhileLiveConnected(t *testing.T) {
	fetcher := &fakeFetcher{pages: []*transfer.UpdatesPage{{}}}
	p := NewPoller(fetcher, nil, nil, PollerConfig{
		Interval:      5 * time.Millisecond,
		LiveConnected: func() bool { return true },
	})

	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()
	p.Start(ctx)

	assert.Zero(t, fetcher.calls)
}

func TestPollerStop(t *testing.T) {
	fetcher := &fakeFetcher{pages: []*transfer.UpdatesPage{{}}}
	p := NewPoller(fetcher, nil, nil, PollerConfig{Interval: time.Hour})

	done := make(chan struct{})
	go func() {
		p.Start(context.Background())
		close(done)
	}()

	p.Stop()
	p.Stop() // safe to call twice

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}
}

func TestDedupObserve(t *testing.T) {
	d := NewDedup()

	assert.False(t, d.Observe(1, models.TransferStatusCompleted))
	assert.True(t, d.Observe(1, models.TransferStatusCompleted))

	// A different status for the same transfer is a distinct transition.
	assert.False(t, d.Observe(1, models.TransferStatusRejected))
	assert.False(t, d.Observe(2, models.TransferStatusCompleted))
}
