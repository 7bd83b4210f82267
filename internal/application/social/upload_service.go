package social

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/legallink/backend/internal/domain/shared"
)

// ObjectStorage is the port for the attachment bucket. Implemented by
// the S3 adapter in infrastructure/storage.
type ObjectStorage interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	Delete(ctx context.Context, storageKey string) error
}

// allowedUploadTypes maps accepted content types to the extension used
// in the storage key
var allowedUploadTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"image/gif":       ".gif",
	"application/pdf": ".pdf",
}

// DefaultMaxUploadSize caps attachments when configuration leaves the
// limit unset
const DefaultMaxUploadSize = 10 << 20 // 10 MiB

// UploadService validates and stores post attachments, returning the
// public URL to embed in a post
type UploadService struct {
	storage       ObjectStorage
	publicBaseURL string
	maxSize       int64
	logger        *zap.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(storage ObjectStorage, publicBaseURL string, maxSize int64, logger *zap.Logger) *UploadService {
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}
	return &UploadService{
		storage:       storage,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		maxSize:       maxSize,
		logger:        logger,
	}
}

// MaxSize returns the per-file limit in bytes
func (s *UploadService) MaxSize() int64 {
	return s.maxSize
}

// UploadAttachment validates the payload, stores it under a fresh key
// and returns the public URL
func (s *UploadService) UploadAttachment(ctx context.Context, contentType string, data []byte) (*UploadResponse, error) {
	contentType = normalizeContentType(contentType)

	ext, ok := allowedUploadTypes[contentType]
	if !ok {
		return nil, shared.NewDomainError("UNSUPPORTED_MEDIA_TYPE",
			fmt.Sprintf("Content type %q is not accepted for uploads", contentType))
	}
	if len(data) == 0 {
		return nil, shared.NewDomainError("EMPTY_UPLOAD", "Upload body is empty")
	}
	if int64(len(data)) > s.maxSize {
		return nil, shared.NewDomainError("UPLOAD_TOO_LARGE",
			fmt.Sprintf("Upload exceeds the %d byte limit", s.maxSize))
	}

	key := path.Join("uploads", uuid.New().String()+ext)
	if err := s.storage.Upload(ctx, key, data, contentType); err != nil {
		s.logger.Error("Attachment upload failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}

	s.logger.Info("Attachment uploaded",
		zap.String("key", key),
		zap.Int("size", len(data)),
		zap.String("content_type", contentType))

	return &UploadResponse{
		Key: key,
		URL: s.publicBaseURL + "/" + key,
	}, nil
}

// normalizeContentType strips parameters like "; charset=..." and
// lowercases the media type
func normalizeContentType(ct string) string {
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
