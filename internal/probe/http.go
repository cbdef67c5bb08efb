package probe

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"resty.dev/v3"

	"github.com/vk/waitgate/internal/config"
	"github.com/vk/waitgate/internal/ctxlog"
)

// defaultHTTPInterval is how often the readiness endpoint is probed when
// the waiter block does not say otherwise.
const defaultHTTPInterval = 50 * time.Millisecond

// HTTP watches a readiness endpoint in the background and settles once it
// answers with the expected status code. The waiter callback itself only
// reads a flag, so the settle sweep never blocks on the network.
type HTTP struct {
	url          string
	interval     time.Duration
	expectStatus int

	client *resty.Client
	ready  atomic.Bool
	cancel context.CancelFunc
	done   chan struct{}
}

// NewHTTP builds an HTTP readiness probe. Options:
//
//	url           — readiness endpoint (required)
//	interval      — probe interval as a Go duration string (default "50ms")
//	expect_status — status code that counts as ready (default 200)
func NewHTTP(spec *config.Waiter) (Probe, error) {
	url, err := requireStringOption(spec.Options, "url")
	if err != nil {
		return nil, err
	}

	interval := defaultHTTPInterval
	var intervalStr string
	if ok, err := decodeOption(spec.Options, "interval", &intervalStr); err != nil {
		return nil, err
	} else if ok {
		interval, err = time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", "interval", err)
		}
	}

	expectStatus := 200
	if _, err := decodeOption(spec.Options, "expect_status", &expectStatus); err != nil {
		return nil, err
	}

	return &HTTP{
		url:          url,
		interval:     interval,
		expectStatus: expectStatus,
	}, nil
}

// Start launches the background readiness loop.
func (p *HTTP) Start(ctx context.Context) error {
	probeCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.client = resty.New()
	p.done = make(chan struct{})
	go p.loop(probeCtx)
	return nil
}

// loop probes the endpoint until it reports ready or the context ends.
func (p *HTTP) loop(ctx context.Context) {
	defer close(p.done)
	logger := ctxlog.FromContext(ctx).With("probe", "http", "url", p.url)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		resp, err := p.client.R().SetContext(ctx).Get(p.url)
		if err == nil && resp.StatusCode() == p.expectStatus {
			logger.Debug("Endpoint became ready.", "status", resp.StatusCode())
			p.ready.Store(true)
			return
		}
		if err != nil {
			logger.Debug("Probe attempt failed.", "error", err)
		} else {
			logger.Debug("Endpoint not ready yet.", "status", resp.StatusCode())
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Settled reports whether the endpoint has answered with the expected
// status at least once.
func (p *HTTP) Settled() bool {
	return p.ready.Load()
}

// Stop tears down the background loop and the HTTP client.
func (p *HTTP) Stop() {
	if p.cancel != nil {
		p.cancel()
		<-p.done
	}
	if p.client != nil {
		_ = p.client.Close()
	}
}
