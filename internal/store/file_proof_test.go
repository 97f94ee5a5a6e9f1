// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/food-rescue/internal/logger"
)

func newTestProofStorage(t *testing.T) (ProofFileStorage, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "proofs")
	s, err := NewProofFileStorage(dir, logger.Nop())
	require.NoError(t, err)
	return s, dir
}

func TestProofFileStorage_SaveGetDelete(t *testing.T) {
	s, dir := newTestProofStorage(t)
	ctx := context.Background()

	key, err := s.Save(ctx, "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "proof_"))
	assert.Equal(t, ".png", filepath.Ext(key))

	_, err = os.Stat(filepath.Join(dir, key))
	require.NoError(t, err)

	rc, mimeType, err := s.Get(ctx, key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "image/png", mimeType)

	require.NoError(t, s.Delete(ctx, key))
	_, _, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, ErrProofNotFound)
	assert.ErrorIs(t, s.Delete(ctx, key), ErrProofNotFound)
}

func TestProofFileStorage_UniqueKeys(t *testing.T) {
	s, _ := newTestProofStorage(t)

	k1, err := s.Save(context.Background(), "application/pdf", bytes.NewReader([]byte("a")))
	require.NoError(t, err)
	k2, err := s.Save(context.Background(), "application/pdf", bytes.NewReader([]byte("b")))
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2)
}

func TestProofFileStorage_AcceptedTypes(t *testing.T) {
	tests := []struct {
		mimeType string
		wantExt  string
		wantMime string
	}{
		{"image/png", ".png", "image/png"},
		{"image/jpeg", ".jpg", "image/jpeg"},
		{"image/webp", ".webp", "image/webp"},
		{"application/pdf", ".pdf", "application/pdf"},
		{"IMAGE/PNG", ".png", "image/png"},
		{"image/jpeg; q=0.9", ".jpg", "image/jpeg"},
	}

	s, _ := newTestProofStorage(t)
	for _, tt := range tests {
		t.Run(tt.mimeType, func(t *testing.T) {
			key, err := s.Save(context.Background(), tt.mimeType, strings.NewReader("x"))
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, filepath.Ext(key))

			rc, mimeType, err := s.Get(context.Background(), key)
			require.NoError(t, err)
			require.NoError(t, rc.Close())
			assert.Equal(t, tt.wantMime, mimeType)
		})
	}
}

func TestProofFileStorage_RejectsUnsupportedTypes(t *testing.T) {
	s, dir := newTestProofStorage(t)

	for _, mimeType := range []string{"text/html", "application/octet-stream", "image/svg+xml", "", "not a type"} {
		_, err := s.Save(context.Background(), mimeType, strings.NewReader("<script>alert(1)</script>"))
		assert.ErrorIs(t, err, ErrUnsupportedProofType, "mime %q", mimeType)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestProofFileStorage_SaveFailureRemovesFile(t *testing.T) {
	s, dir := newTestProofStorage(t)

	_, err := s.Save(context.Background(), "image/png", failingReader{})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProofFileStorage_RejectsTraversal(t *testing.T) {
	s, _ := newTestProofStorage(t)

	for _, key := range []string{"../secret", "../../etc/passwd", "", "."} {
		_, _, err := s.Get(context.Background(), key)
		assert.ErrorIs(t, err, ErrInvalidProofKey, "key %q", key)
		assert.ErrorIs(t, s.Delete(context.Background(), key), ErrInvalidProofKey, "key %q", key)
	}
}
