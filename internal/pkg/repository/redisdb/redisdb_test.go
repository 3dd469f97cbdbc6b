package redisdb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projetos-logistica/Cadastro-HC/internal/pkg/config"
)

// Runs against a live server only: ATTENDANCE_TEST_REDIS_ADDR=localhost:6379.
func TestRevoker(t *testing.T) {
	addr := os.Getenv("ATTENDANCE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("ATTENDANCE_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	client, err := Connect(ctx, config.Redis{Addr: addr})
	require.NoError(t, err)
	defer client.Close()

	r := NewRevoker(client)
	id := uuid.NewString()

	revoked, err := r.IsRevoked(ctx, id)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, id, time.Now().Add(time.Minute)))

	revoked, err = r.IsRevoked(ctx, id)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRevokeExpiredIsNoop(t *testing.T) {
	r := NewRevoker(nil)
	assert.NoError(t, r.Revoke(context.Background(), "x", time.Now().Add(-time.Second)))
}
