// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/food-rescue/internal/logger"
	"github.com/MKhiriev/food-rescue/internal/utils"
)

// proofFileStorage keeps delivery proof documents as flat files under
// baseDir. Keys are generated file names, never user input.
type proofFileStorage struct {
	baseDir string
	ids     *utils.UUIDGenerator
	logger  *logger.Logger
}

// NewProofFileStorage creates baseDir if needed and returns a
// [ProofFileStorage] rooted there.
func NewProofFileStorage(baseDir string, logger *logger.Logger) (ProofFileStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create proof directory: %w", err)
	}
	logger.Debug().Str("dir", baseDir).Msg("creating proof file storage")

	return &proofFileStorage{
		baseDir: baseDir,
		ids:     utils.NewUUIDGenerator(),
		logger:  logger,
	}, nil
}

// Save streams r into a new file and returns its storage key.
// Only PNG, JPEG, WebP and PDF documents are accepted, anything else yields
// ErrUnsupportedProofType. A partially written file is removed on failure.
func (s *proofFileStorage) Save(ctx context.Context, mimeType string, r io.Reader) (string, error) {
	log := logger.FromContext(ctx)

	ext, ok := mimeTypeToExt(mimeType)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProofType, mimeType)
	}

	key := "proof_" + s.ids.Generate() + ext
	path := filepath.Join(s.baseDir, key)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		if cerr := f.Close(); cerr != nil {
			log.Err(cerr).Str("func", "*proofFileStorage.Save").Msg("failed to close file after write error")
		}
		if rerr := os.Remove(path); rerr != nil {
			log.Err(rerr).Str("func", "*proofFileStorage.Save").Msg("failed to remove file after write error")
		}
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		if rerr := os.Remove(path); rerr != nil {
			log.Err(rerr).Str("func", "*proofFileStorage.Save").Msg("failed to remove file after close error")
		}
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return key, nil
}

// Get opens a stored proof and reports its MIME type.
func (s *proofFileStorage) Get(ctx context.Context, storageKey string) (io.ReadCloser, string, error) {
	path, err := s.safeJoin(storageKey)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, "", ErrProofNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	return f, extToMimeType(path), nil
}

// Delete removes a stored proof.
func (s *proofFileStorage) Delete(ctx context.Context, storageKey string) error {
	path, err := s.safeJoin(storageKey)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrProofNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// safeJoin resolves storageKey under baseDir and rejects directory traversal.
func (s *proofFileStorage) safeJoin(storageKey string) (string, error) {
	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(s.baseDir, storageKey))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", ErrInvalidProofKey
	}
	return absPath, nil
}

func mimeTypeToExt(mimeType string) (string, bool) {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return "", false
	}

	switch mediaType {
	case "image/png":
		return ".png", true
	case "image/jpeg":
		return ".jpg", true
	case "image/webp":
		return ".webp", true
	case "application/pdf":
		return ".pdf", true
	default:
		return "", false
	}
}

func extToMimeType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	default:
		return "image/jpeg"
	}
}
