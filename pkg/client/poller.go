package client

import (
	"context"
	"log"
	"time"

	"chat-service/internal/state"
)

// DefaultPollInterval bounds staleness: a client is never more than one
// interval behind the server.
const (
	DefaultPollInterval      = 3 * time.Second
	DefaultHeartbeatInterval = 30 * time.Second
)

// Poller drives the pull protocol: a state fetch on a fixed tick, a heartbeat
// on an independent tick, and an out-of-band refresh after every mutation.
// A failed cycle is logged and skipped; the next tick re-syncs. No backoff,
// no circuit breaker: the interval is short enough that retrying on schedule
// is the simplest correct behavior.
type Poller struct {
	c          *Client
	roomID     int64
	interval   time.Duration
	hbInterval time.Duration
	refresh    chan struct{}

	// OnState receives every successfully fetched view.
	OnState func(*state.View)
}

func NewPoller(c *Client, roomID int64) *Poller {
	return &Poller{
		c:          c,
		roomID:     roomID,
		interval:   DefaultPollInterval,
		hbInterval: DefaultHeartbeatInterval,
		refresh:    make(chan struct{}, 1),
	}
}

// Refresh requests an immediate out-of-band fetch, used right after a
// mutating action instead of locally patching state.
func (p *Poller) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// Run blocks until ctx is cancelled. Both timers stop on cancellation;
// responses to in-flight requests arriving afterwards are discarded.
func (p *Poller) Run(ctx context.Context) {
	poll := time.NewTicker(p.interval)
	defer poll.Stop()
	hb := time.NewTicker(p.hbInterval)
	defer hb.Stop()

	p.fetch(ctx)
	p.heartbeat(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-poll.C:
			p.fetch(ctx)
		case <-p.refresh:
			p.fetch(ctx)
		case <-hb.C:
			p.heartbeat(ctx)
		}
	}
}

func (p *Poller) fetch(ctx context.Context) {
	v, err := p.c.FetchState(ctx, p.roomID)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("state fetch: %v", err)
		}
		return
	}
	if ctx.Err() != nil {
		return
	}
	if p.OnState != nil {
		p.OnState(v)
	}
}

func (p *Poller) heartbeat(ctx context.Context) {
	if err := p.c.Heartbeat(ctx, p.roomID); err != nil && ctx.Err() == nil {
		log.Printf("heartbeat: %v", err)
	}
}
