package bootstrap

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"picklog/internal/platform/config"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.HTTPPort = "0"
	cfg.ShutdownTimeout = 2 * time.Second
	return cfg
}

func TestLoggedPickReachesActivityConsumer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logs := &syncBuffer{}
	cfg := testConfig()
	app, err := buildAPI(ctx, cfg, logs)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, app.Close()) })
	require.NotNil(t, app.bus)
	require.NoError(t, app.pickActivity.Start(ctx))

	req := httptest.NewRequest(http.MethodPost, "/pick", strings.NewReader(`{"robot_id":"Robot-A","item_id":"Item-1"}`))
	rr := httptest.NewRecorder()
	app.server.Handler().ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	require.Eventually(t, func() bool {
		return strings.Contains(logs.String(), `"event":"pick_activity_observed"`)
	}, 2*time.Second, 10*time.Millisecond)
	require.Contains(t, logs.String(), `"process":"api"`)
}

func TestBuildAPIWithoutEventBus(t *testing.T) {
	cfg := testConfig()
	cfg.EnableEventBus = false
	cfg.RateLimitRPS = 5

	app, err := buildAPI(context.Background(), cfg, &syncBuffer{})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, app.Close()) })
	require.Nil(t, app.bus)
	require.Nil(t, app.pickActivity)

	rr := httptest.NewRecorder()
	app.server.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/pick", strings.NewReader(`{"robot_id":"R1","item_id":"A"}`)))
	require.Equal(t, http.StatusCreated, rr.Code)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	app, err := buildAPI(context.Background(), testConfig(), &syncBuffer{})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, app.Close()) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, parseLevel("warning"))
	require.Equal(t, slog.LevelError, parseLevel(" error "))
	require.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestNormalizeAddr(t *testing.T) {
	require.Equal(t, ":8080", normalizeAddr(""))
	require.Equal(t, ":9000", normalizeAddr("9000"))
	require.Equal(t, ":9000", normalizeAddr(":9000"))
}

func TestCloseDeliversPicksLoggedBeforeShutdown(t *testing.T) {
	logs := &syncBuffer{}
	app, err := buildAPI(context.Background(), testConfig(), logs)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	require.Eventually(t, func() bool {
		return strings.Contains(logs.String(), `"event":"bootstrap_api_started"`)
	}, 2*time.Second, 10*time.Millisecond)

	const picks = 20
	for i := 0; i < picks; i++ {
		rr := httptest.NewRecorder()
		app.server.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/pick", strings.NewReader(`{"robot_id":"R1","item_id":"A"}`)))
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	require.NoError(t, app.Close())

	require.Equal(t, picks, strings.Count(logs.String(), `"event":"pick_activity_observed"`))
}
