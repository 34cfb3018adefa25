package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}
	t.Cleanup(func() {
		container.Terminate(context.Background())
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := Connect(ctx, endpoint, "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRedis_Hit(t *testing.T) {
	client := newTestRedis(t)
	limiter := NewRedis(client, 3, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		res, err := limiter.Hit(ctx, "login:1.2.3.4")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "hit %d", i)
		assert.Equal(t, 3-i, res.Remaining)
		assert.Equal(t, 3, res.Limit)
	}

	res, err := limiter.Hit(ctx, "login:1.2.3.4")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.WithinDuration(t, time.Now().Add(time.Minute), res.Reset, 5*time.Second)

	// keys are independent
	res, err = limiter.Hit(ctx, "login:5.6.7.8")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestRedis_WindowExpires(t *testing.T) {
	client := newTestRedis(t)
	limiter := NewRedis(client, 1, 500*time.Millisecond)
	ctx := context.Background()

	res, err := limiter.Hit(ctx, "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = limiter.Hit(ctx, "k")
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	time.Sleep(700 * time.Millisecond)

	res, err = limiter.Hit(ctx, "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}
