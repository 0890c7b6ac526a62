// Package feed polls an external latest-location endpoint on a fixed
// interval. If a poll is still outstanding when the next tick fires, the new
// poll is skipped, so there is never more than one in-flight fetch.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nandanugg/geofence-tracker/module/core/domain"
)

// HandleFunc receives each fresh sample in arrival order.
type HandleFunc func(ctx context.Context, sample domain.PositionSample)

type Poller struct {
	url      string
	interval time.Duration
	client   *http.Client
	handle   HandleFunc

	inFlight atomic.Bool

	mu     sync.Mutex
	lastTS time.Time
}

func NewPoller(url string, interval time.Duration, handle HandleFunc) *Poller {
	return &Poller{
		url:      url,
		interval: interval,
		client:   &http.Client{Timeout: 10 * time.Second},
		handle:   handle,
	}
}

// Run polls until ctx is canceled. Feed connectivity failures are logged and
// retried on the next tick; the core only ever sees fresh samples.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.inFlight.CompareAndSwap(false, true) {
				continue
			}
			go func() {
				defer p.inFlight.Store(false)
				if err := p.poll(ctx); err != nil {
					log.Printf("feed poll: %v", err)
				}
			}()
		}
	}
}

func (p *Poller) poll(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var sample domain.PositionSample
	if err := json.NewDecoder(resp.Body).Decode(&sample); err != nil {
		return fmt.Errorf("decode sample: %w", err)
	}

	// An unchanged timestamp means no new data, which is a valid response;
	// the tracker simply does not advance.
	p.mu.Lock()
	fresh := !sample.Timestamp.Equal(p.lastTS)
	if fresh {
		p.lastTS = sample.Timestamp
	}
	p.mu.Unlock()

	if fresh {
		p.handle(ctx, sample)
	}
	return nil
}
