package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/api-sage/remittance-wallet/src/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() config.Config {
	cfg := config.Default()
	cfg.StorageDriver = config.StorageDriverMemory
	cfg.HTTPAddr = "127.0.0.1:0"
	cfg.StaticDir = ""
	cfg.ShutdownTimeout = time.Second
	return cfg
}

func TestInitializeAppWithMemoryStorage(t *testing.T) {
	app, cleanup, err := InitializeApp(context.Background(), memoryConfig())
	require.NoError(t, err)
	defer cleanup()

	rr := httptest.NewRecorder()
	app.server.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/wallet/contacts", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestNewStoresRejectsUnknownDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.StorageDriver = "sqlite"

	_, _, err := NewStores(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
}

func TestAppRunStopsWhenContextIsCanceled(t *testing.T) {
	app, cleanup, err := InitializeApp(context.Background(), memoryConfig())
	require.NoError(t, err)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not shut down")
	}
}
