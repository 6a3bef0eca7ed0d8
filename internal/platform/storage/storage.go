// Package storage persists uploaded files on the local file system.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/phrazzld/taskify-api/internal/platform/logger"
)

// PublicPrefix is the URL path under which stored files are served.
const PublicPrefix = "/uploads"

const avatarDir = "avatars"

// Upload rejections. Each is a domain validation error on the avatar field.
var (
	ErrEmptyUpload      = domain.NewValidationError("avatar", "is empty", nil)
	ErrUploadTooLarge   = domain.NewValidationError("avatar", "exceeds the maximum size", nil)
	ErrUnsupportedImage = domain.NewValidationError("avatar", "must be an image", nil)
)

// LocalAvatarStore writes avatars to <baseDir>/avatars/<userID>/<random><ext>.
type LocalAvatarStore struct {
	baseDir  string
	maxBytes int64
	logger   *slog.Logger
}

// NewLocalAvatarStore creates the base directory if needed.
func NewLocalAvatarStore(baseDir string, maxBytes int64, logger *slog.Logger) (*LocalAvatarStore, error) {
	if baseDir == "" {
		return nil, domain.NewValidationError("baseDir", "cannot be empty", domain.ErrValidation)
	}
	if maxBytes <= 0 {
		return nil, domain.NewValidationError("maxBytes", "must be positive", domain.ErrValidation)
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalAvatarStore{
		baseDir:  baseDir,
		maxBytes: maxBytes,
		logger:   logger.With(slog.String("component", "avatar_store")),
	}, nil
}

// BaseDir returns the directory served under PublicPrefix.
func (s *LocalAvatarStore) BaseDir() string {
	return s.baseDir
}

// Save validates upload as an image no larger than the configured limit,
// writes it, and returns its public path.
func (s *LocalAvatarStore) Save(ctx context.Context, userID uuid.UUID, upload *domain.FileUpload) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if upload == nil || upload.Content == nil {
		return "", ErrEmptyUpload
	}

	data, err := io.ReadAll(io.LimitReader(upload.Content, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmptyUpload
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrUploadTooLarge
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		log.Debug("rejected avatar upload",
			slog.String("detected_type", mtype.String()),
			slog.String("declared_type", upload.ContentType))
		return "", ErrUnsupportedImage
	}

	dir := filepath.Join(s.baseDir, avatarDir, userID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create avatar directory: %w", err)
	}

	name := uuid.NewString() + mtype.Extension()
	if err := writeFile(filepath.Join(dir, name), data); err != nil {
		return "", err
	}

	public := path.Join(PublicPrefix, avatarDir, userID.String(), name)
	log.Info("stored avatar",
		slog.String("user_id", userID.String()),
		slog.String("path", public),
		slog.Int("bytes", len(data)))
	return public, nil
}

// writeFile writes data through a temp file and rename so readers never see
// a partial avatar.
func writeFile(dst string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, bytes.NewReader(data)); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write avatar: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close avatar: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to set avatar permissions: %w", err)
	}
	if err = os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("failed to move avatar into place: %w", err)
	}
	return nil
}
