package monitor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/profilesync/internal/client/config"
	"github.com/dmitrijs2005/profilesync/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(url string) *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = url
	cfg.ProbeTimeout = 200 * time.Millisecond
	cfg.OnlineCheckInterval = 20 * time.Millisecond
	return cfg
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestCheck_Classification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   Status
	}{
		{"ok", 200, `{}`, StatusOnline},
		{"unauthorized still online", 401, `{"error":"bad"}`, StatusOnline},
		{"server error still online", 500, ``, StatusOnline},
		{"tunnel status", 530, ``, StatusError},
		{"tunnel body", 502, `<h1>Cloudflare Tunnel error</h1>`, StatusError},
		{"error 1033", 200, `Error 1033 Argo Tunnel`, StatusError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := serve(t, tt.status, tt.body)
			m := New(newConfig(ts.URL), logging.Discard())
			assert.Equal(t, tt.want, m.Check(context.Background()))
			assert.Equal(t, tt.want, m.Status())
			assert.False(t, m.LastChecked().IsZero())
		})
	}
}

func TestCheck_SendsProbeLogin(t *testing.T) {
	var (
		path string
		body map[string]string
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &body)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	New(newConfig(ts.URL+"/api"), logging.Discard()).Check(context.Background())
	assert.Equal(t, "/api/login", path)
	assert.Equal(t, map[string]string{"email": "test@test.com", "password": "test"}, body)
}

func TestCheck_TimeoutIsOffline(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()

	cfg := newConfig(ts.URL)
	cfg.ProbeTimeout = 30 * time.Millisecond
	assert.Equal(t, StatusOffline, New(cfg, logging.Discard()).Check(context.Background()))
}

func TestCheck_RefusedIsError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	assert.Equal(t, StatusError, New(newConfig(url), logging.Discard()).Check(context.Background()))
	assert.Equal(t, StatusError, New(newConfig(""), logging.Discard()).Check(context.Background()))
}

func TestMockModeNeverProbes(t *testing.T) {
	hit := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hit = true }))
	defer ts.Close()

	cfg := newConfig(ts.URL)
	cfg.UseMockAPI = true
	m := New(cfg, logging.Discard())
	assert.Equal(t, StatusChecking, m.Status())

	m.Run(context.Background())
	assert.Equal(t, StatusMock, m.Status())
	assert.False(t, hit)
}

func TestRun_NotifiesTransitions(t *testing.T) {
	var (
		mu     sync.Mutex
		status = http.StatusOK
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		w.WriteHeader(status)
	}))
	defer ts.Close()

	m := New(newConfig(ts.URL), logging.Discard())
	changes := make(chan [2]Status, 10)
	m.OnChange(func(from, to Status) { changes <- [2]Status{from, to} })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	select {
	case c := <-changes:
		assert.Equal(t, [2]Status{StatusChecking, StatusOnline}, c)
	case <-time.After(2 * time.Second):
		t.Fatal("no transition to online")
	}

	mu.Lock()
	status = statusTunnelError
	mu.Unlock()

	select {
	case c := <-changes:
		assert.Equal(t, [2]Status{StatusOnline, StatusError}, c)
	case <-time.After(2 * time.Second):
		t.Fatal("no transition to error")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		require.FailNow(t, "Run did not stop")
	}
}
