package server_test

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizza-delivery-api/app/repositories"
	"github.com/shashiranjanraj/pizza-delivery-api/config"
	"github.com/shashiranjanraj/pizza-delivery-api/internal/kernel"
	"github.com/shashiranjanraj/pizza-delivery-api/internal/server"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/database"
)

func TestServeAndGracefulShutdown(t *testing.T) {
	db, err := database.Connect("sqlite", ":memory:")
	require.NoError(t, err)

	cfg := &config.Config{
		AppEnv:          "test",
		AppPort:         "0",
		JWTSecret:       "server-test-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		MaxBodyBytes:    1 << 20,
	}
	k := kernel.New(cfg, db, repositories.NewBlocklistRepository(db))
	t.Cleanup(func() { _ = k.Close() })

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.New(k).Serve(ctx, lis) }()

	resp, err := http.Get("http://" + lis.Addr().String() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
