package testutil

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/vk/waitgate/internal/config"
	"github.com/vk/waitgate/internal/probe"
)

// Manual is a controllable waiter kind for integration tests: probes built
// by its factory stay pending until the test body settles them by name.
type Manual struct {
	mu     sync.Mutex
	probes map[string]*ManualProbe
	armed  map[string]bool
}

// NewManual creates an empty manual probe coordinator.
func NewManual() *Manual {
	return &Manual{
		probes: make(map[string]*ManualProbe),
		armed:  make(map[string]bool),
	}
}

// Factory is the probe.Factory that builds manual probes, keyed by the
// waiter's name label.
func (m *Manual) Factory(spec *config.Waiter) (probe.Probe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, dup := m.probes[spec.Name]; dup {
		return nil, fmt.Errorf("manual probe %q created twice", spec.Name)
	}
	p := &ManualProbe{}
	if m.armed[spec.Name] {
		p.settled.Store(true)
	}
	m.probes[spec.Name] = p
	return p, nil
}

// Settle marks the named probe as settled. Settling a probe that does not
// exist yet arms it, so a later step's waiter can be settled up front.
func (m *Manual) Settle(name string) {
	m.mu.Lock()
	if p, ok := m.probes[name]; ok {
		m.mu.Unlock()
		p.settled.Store(true)
		return
	}
	m.armed[name] = true
	m.mu.Unlock()
}

// Probe returns the named probe for state assertions.
func (m *Manual) Probe(name string) *ManualProbe {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.probes[name]
	if !ok {
		panic(fmt.Sprintf("manual probe %q was never created by the harness", name))
	}
	return p
}

// ManualProbe is a probe whose settle state is flipped by the test body.
type ManualProbe struct {
	settled atomic.Bool
	started atomic.Bool
	stopped atomic.Bool
}

func (p *ManualProbe) Start(ctx context.Context) error {
	p.started.Store(true)
	return nil
}

func (p *ManualProbe) Settled() bool {
	return p.settled.Load()
}

func (p *ManualProbe) Stop() {
	p.stopped.Store(true)
}

// Started reports whether the harness ever started this probe.
func (p *ManualProbe) Started() bool { return p.started.Load() }

// Stopped reports whether the harness tore this probe down.
func (p *ManualProbe) Stopped() bool { return p.stopped.Load() }
