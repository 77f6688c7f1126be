// Package monitor periodically probes the remote API and reports a display
// status. It is advisory: the identity service never switches backends
// because of it.
package monitor

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/profilesync/internal/client/config"
	"github.com/dmitrijs2005/profilesync/internal/logging"
	"github.com/dmitrijs2005/profilesync/internal/netx"
)

type Status string

const (
	StatusChecking Status = "checking"
	StatusOnline   Status = "online"
	StatusOffline  Status = "offline"
	StatusMock     Status = "mock"
	StatusError    Status = "error"
)

// statusTunnelError is returned by the tunnel in front of the API when the
// origin is gone.
const statusTunnelError = 530

var tunnelMarkers = [][]byte{[]byte("Cloudflare Tunnel error"), []byte("Error 1033")}

// probeCredentials are sent to /login; any answer from the API means it is up.
var probeCredentials = map[string]string{"email": "test@test.com", "password": "test"}

type Monitor struct {
	baseURL  string
	mock     bool
	interval time.Duration
	timeout  time.Duration
	http     *http.Client
	log      logging.Logger
	now      func() time.Time

	mu          sync.RWMutex
	status      Status
	lastChecked time.Time
	onChange    func(from, to Status)
}

func New(cfg *config.Config, log logging.Logger) *Monitor {
	return &Monitor{
		baseURL:  strings.TrimRight(cfg.APIBaseURL, "/"),
		mock:     cfg.UseMockAPI,
		interval: cfg.OnlineCheckInterval,
		timeout:  cfg.ProbeTimeout,
		http:     &http.Client{},
		log:      log.With("component", "monitor"),
		now:      time.Now,
		status:   StatusChecking,
	}
}

// OnChange registers fn to be called on every status transition. fn runs on
// the probing goroutine.
func (m *Monitor) OnChange(fn func(from, to Status)) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// LastChecked is zero until the first probe completes.
func (m *Monitor) LastChecked() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastChecked
}

// Run probes once immediately and then every interval until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	m.Check(ctx)
	if m.mock {
		return
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Check runs a single probe, records the result and returns it.
func (m *Monitor) Check(ctx context.Context) Status {
	status := StatusMock
	if !m.mock {
		status = m.probe(ctx)
	}
	m.set(status)
	return status
}

func (m *Monitor) probe(ctx context.Context) Status {
	if m.baseURL == "" {
		return StatusError
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	resp, err := netx.DoJSON(ctx, m.http, http.MethodPost, m.baseURL+"/login", nil, probeCredentials)
	if err != nil {
		if netx.IsTimeout(err) {
			return StatusOffline
		}
		m.log.Debug(ctx, "probe failed", "error", err)
		return StatusError
	}

	if resp.Status == statusTunnelError {
		return StatusError
	}
	for _, marker := range tunnelMarkers {
		if bytes.Contains(resp.Body, marker) {
			return StatusError
		}
	}
	return StatusOnline
}

func (m *Monitor) set(status Status) {
	m.mu.Lock()
	prev := m.status
	m.status = status
	m.lastChecked = m.now()
	fn := m.onChange
	m.mu.Unlock()

	if prev == status {
		return
	}
	m.log.Info(context.Background(), "connectivity changed", "from", prev, "to", status)
	if fn != nil {
		fn(prev, status)
	}
}
