package storage

import (
	"context"
	"strings"
	"testing"

	"consultbr_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveExistsDelete(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "https://cdn.example.com/uploads/")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "portfolio/a.png", strings.NewReader("png"), "image/png"))

	ok, err := s.Exists(ctx, "portfolio/a.png")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/uploads/portfolio/a.png", s.URL("portfolio/a.png"))

	require.NoError(t, s.Delete(ctx, "portfolio/a.png"))
	require.NoError(t, s.Delete(ctx, "portfolio/a.png"))

	ok, err = s.Exists(ctx, "portfolio/a.png")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalStorage_KeyCannotEscapeBase(t *testing.T) {
	base := t.TempDir()
	s, err := NewLocalStorage(base, "")
	require.NoError(t, err)

	full, err := s.fullPath("../../etc/passwd")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(full, base))

	_, err = s.fullPath("")
	assert.Error(t, err)
}

func TestNew_SelectsBackend(t *testing.T) {
	cfg := &config.Config{}

	s, err := New(cfg)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Save(context.Background(), "k", strings.NewReader(""), "text/plain"), ErrDisabled)

	cfg.Storage.Type = TypeLocal
	cfg.Storage.BasePath = t.TempDir()
	s, err = New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, s)

	cfg.Storage.Type = TypeCloudflareR2
	cfg.Storage.Bucket = "b"
	_, err = New(cfg)
	assert.Error(t, err, "r2 without endpoint")

	cfg.Storage.Type = "ftp"
	_, err = New(cfg)
	assert.Error(t, err)
}
