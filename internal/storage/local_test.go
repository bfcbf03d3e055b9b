package storage

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T) *LocalClient {
	t.Helper()
	client, err := NewLocalClient(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, client.EnsureBucket(context.Background()))
	return client
}

func TestLocalClient_PutGetDelete(t *testing.T) {
	client := newLocal(t)
	ctx := context.Background()

	err := client.Put(ctx, "key-1", strings.NewReader("payload"), 7, "text/plain")
	require.NoError(t, err)

	reader, err := client.Get(ctx, "key-1")
	require.NoError(t, err)
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.NoError(t, reader.Close())
	assert.Equal(t, "payload", string(data))

	require.NoError(t, client.Delete(ctx, "key-1"))
	_, err = client.Get(ctx, "key-1")
	assert.True(t, os.IsNotExist(err))
}

func TestLocalClient_RejectsPathKeys(t *testing.T) {
	client := newLocal(t)
	ctx := context.Background()

	for _, key := range []string{"", "../escape", "a/b", "/abs"} {
		err := client.Put(ctx, key, strings.NewReader("x"), 1, "")
		assert.Error(t, err, "key %q", key)
	}
}

func TestLocalClient_MissingDirRequired(t *testing.T) {
	_, err := NewLocalClient("  ")
	assert.Error(t, err)
}
