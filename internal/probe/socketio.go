package probe

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"sync/atomic"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/waitgate/internal/config"
	"github.com/vk/waitgate/internal/ctxlog"
)

// SocketIO settles once a socket.io event has been observed on a
// connection it owns. A test that needs its realtime channel up before
// proceeding registers this probe and lets the settle loop wait for the
// server's handshake (or an application-level event such as "ready").
type SocketIO struct {
	rawURL    string
	namespace string
	event     string
	insecure  bool

	settled atomic.Bool
	io      *socket.Socket
}

// NewSocketIO builds a socket.io event probe. Options:
//
//	url                  — socket.io server URL (required)
//	namespace            — namespace to join (default "/")
//	event                — event that settles the waiter (default "connect")
//	insecure_skip_verify — skip TLS verification (default false)
func NewSocketIO(spec *config.Waiter) (Probe, error) {
	rawURL, err := requireStringOption(spec.Options, "url")
	if err != nil {
		return nil, err
	}

	namespace := "/"
	if _, err := decodeOption(spec.Options, "namespace", &namespace); err != nil {
		return nil, err
	}

	event := "connect"
	if _, err := decodeOption(spec.Options, "event", &event); err != nil {
		return nil, err
	}

	insecure := false
	if _, err := decodeOption(spec.Options, "insecure_skip_verify", &insecure); err != nil {
		return nil, err
	}

	return &SocketIO{
		rawURL:    rawURL,
		namespace: namespace,
		event:     event,
		insecure:  insecure,
	}, nil
}

// Start connects the socket client and arms the event listener. The
// connection handshake continues in the background; Start itself does not
// wait for it.
func (p *SocketIO) Start(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("probe", "socketio", "url", p.rawURL, "event", p.event)

	parsedURL, err := url.Parse(p.rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))

	if p.insecure {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	manager := socket.NewManager(baseURL, opts)
	p.io = manager.Socket(p.namespace, opts)

	p.io.On(types.EventName(p.event), func(...any) {
		logger.Debug("Settle event observed.")
		p.settled.Store(true)
	})
	p.io.On(types.EventName("connect_error"), func(errs ...any) {
		logger.Debug("Connection attempt failed, client will retry.", "error", errs)
	})

	p.io.Connect()
	return nil
}

// Settled reports whether the configured event has been observed.
func (p *SocketIO) Settled() bool {
	return p.settled.Load()
}

// Stop disconnects the socket client.
func (p *SocketIO) Stop() {
	if p.io != nil {
		p.io.Disconnect()
	}
}
