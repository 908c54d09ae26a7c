package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/abuabdirohman4/better-habit/internal/config"
)

func testConfig(kind string) *config.Config {
	return &config.Config{
		Service: config.ServiceConfig{Name: "better-habit", Environment: "test", Timezone: "UTC"},
		HTTP:    config.HTTPConfig{Port: 0, ReadTimeout: 5, WriteTimeout: 5, RequestTimeout: time.Second},
		Backend: config.BackendConfig{Kind: kind, ReadRetries: 1, RetryBackoff: time.Millisecond},
		Sheets:  config.SheetsConfig{SpreadsheetID: "local", HabitsSheet: "Habits", LogsSheet: "HabitLogs"},
	}
}

func TestNewWithConfig_Memory(t *testing.T) {
	a, err := NewWithConfig(context.Background(), testConfig(config.BackendMemory), zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.True(t, a.configured)
	assert.Nil(t, a.scheduler)
	assert.Nil(t, a.grpcServer)

	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/habits", "application/json",
		strings.NewReader(`{"displayName":"Read","iconName":"book_icon"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/habits")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewWithConfig_Unconfigured(t *testing.T) {
	cfg := testConfig(config.BackendSheets)
	cfg.GRPC = config.GRPCConfig{Enabled: true, Port: 0}

	a, err := NewWithConfig(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.False(t, a.configured)
	require.NotNil(t, a.grpcServer)

	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/habits")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/habits", "application/json",
		strings.NewReader(`{"displayName":"Read","iconName":"book_icon"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestNewWithConfig_Auth(t *testing.T) {
	cfg := testConfig(config.BackendMemory)
	cfg.Auth = config.AuthConfig{Enabled: true, JWTSecret: "secret", Issuer: "better-habit", TokenTTL: time.Hour}
	cfg.RateLimit.RequestsPerMinute = 100

	a, err := NewWithConfig(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NotNil(t, a.limiter)

	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/habits")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRunContext_Shutdown(t *testing.T) {
	cfg := testConfig(config.BackendMemory)
	// the listener goroutine may still log after the test returns
	a, err := NewWithConfig(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	a.httpServer.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.RunContext(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunContext did not return after cancel")
	}
}
