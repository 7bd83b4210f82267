package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubObjectStorage_UploadAndExists(t *testing.T) {
	s := NewStubObjectStorage()
	ctx := context.Background()

	require.NoError(t, s.Upload(ctx, "uploads/abc.png", []byte("png"), "image/png"))

	exists, err := s.ObjectExists(ctx, "uploads/abc.png")
	require.NoError(t, err)
	assert.True(t, exists)

	data, ok := s.Get("uploads/abc.png")
	require.True(t, ok)
	assert.Equal(t, []byte("png"), data)
}

func TestStubObjectStorage_UploadCopiesData(t *testing.T) {
	s := NewStubObjectStorage()
	ctx := context.Background()

	payload := []byte("original")
	require.NoError(t, s.Upload(ctx, "uploads/x.pdf", payload, "application/pdf"))

	payload[0] = 'X'

	data, ok := s.Get("uploads/x.pdf")
	require.True(t, ok)
	assert.Equal(t, []byte("original"), data)
}

func TestStubObjectStorage_Delete(t *testing.T) {
	s := NewStubObjectStorage()
	ctx := context.Background()

	require.NoError(t, s.Upload(ctx, "uploads/abc.png", []byte("png"), "image/png"))
	require.NoError(t, s.Delete(ctx, "uploads/abc.png"))

	exists, err := s.ObjectExists(ctx, "uploads/abc.png")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting again is a no-op
	assert.NoError(t, s.Delete(ctx, "uploads/abc.png"))
}

func TestStubObjectStorage_EmptyKey(t *testing.T) {
	s := NewStubObjectStorage()
	ctx := context.Background()

	assert.Error(t, s.Upload(ctx, "", []byte("x"), "image/png"))
	assert.Error(t, s.Delete(ctx, ""))

	_, err := s.ObjectExists(ctx, "")
	assert.Error(t, err)
}
