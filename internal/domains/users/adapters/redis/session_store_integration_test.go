//go:build integration
// +build integration

package redis_test

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	usersredis "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/adapters/redis"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/ports"
)

func TestRedisSessionStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })
	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := goredis.ParseURL(uri)
	require.NoError(t, err)
	client := goredis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	store := usersredis.NewSessionStore(client)
	require.NoError(t, store.Save(ctx, ports.Session{UserID: "usr-1", TokenID: "tok", ExpiresAt: time.Now().Add(time.Hour)}))

	session, err := store.Get(ctx, "usr-1")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "tok", session.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, time.Minute)

	require.NoError(t, store.Delete(ctx, "usr-1"))
	session, err = store.Get(ctx, "usr-1")
	require.NoError(t, err)
	assert.Nil(t, session)
}
