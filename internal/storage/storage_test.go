package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisk_PutOpenDelete(t *testing.T) {
	disk, err := NewDisk(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { disk.Close() })
	ctx := context.Background()

	key, size, err := disk.Put(ctx, "pet-shop", ".png", strings.NewReader("not really a png"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "pet-shop/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.Equal(t, int64(16), size)

	rc, err := disk.Open(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "not really a png", string(body))

	require.NoError(t, disk.Delete(ctx, key))
	_, err = disk.Open(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting twice is fine
	assert.NoError(t, disk.Delete(ctx, key))
}

func TestDisk_RejectsEscapingKeys(t *testing.T) {
	disk, err := NewDisk(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { disk.Close() })

	_, err = disk.Open(context.Background(), "../../etc/passwd")
	assert.Error(t, err)
}

func TestDisk_CancelledContext(t *testing.T) {
	disk, err := NewDisk(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { disk.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = disk.Put(ctx, "pet-shop", ".png", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
