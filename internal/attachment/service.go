package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"time"

	"chat-service/internal/message"
	"chat-service/internal/metrics"
	"chat-service/internal/shared/httpx"

	"github.com/google/uuid"
)

// Download URLs are presigned for a week; clients re-fetch state often enough
// that expiry is refreshed well before it matters.
const presignTTL = 7 * 24 * time.Hour

// BlobStore is the external byte storage; only the URL handle it returns is
// kept here.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, r io.Reader, size int64) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (*url.URL, error)
}

type UploadReq struct {
	RoomID    int64
	Content   string
	ReplyToID *int64
}

type Upload struct {
	Message    *message.Message    `json:"message"`
	Attachment *message.Attachment `json:"attachment"`
}

type Service interface {
	Upload(ctx context.Context, userID string, in UploadReq, file io.Reader, originalName, mimeType string, size int64) (*Upload, error)
}

type service struct {
	repo     Repository
	messages message.Service
	blobs    BlobStore
}

func NewService(r Repository, messages message.Service, blobs BlobStore) Service {
	return &service{repo: r, messages: messages, blobs: blobs}
}

// Upload stores the bytes, creates the owning message with the classified
// type, and records the attachment metadata. The caller identity must already
// be resolved; that precondition is checked before any storage call.
func (s *service) Upload(ctx context.Context, userID string, in UploadReq, file io.Reader, originalName, mimeType string, size int64) (*Upload, error) {
	if userID == "" {
		return nil, httpx.ErrUnauthorized
	}
	if originalName == "" {
		return nil, fmt.Errorf("%w: file name is required", httpx.ErrValidation)
	}
	// A dangling reply target must fail before bytes hit the bucket, or the
	// rejected send would leave an orphaned object behind.
	if in.ReplyToID != nil {
		target, err := s.messages.GetByID(*in.ReplyToID)
		if err != nil {
			if errors.Is(err, httpx.ErrNotFound) {
				return nil, fmt.Errorf("%w: reply target %d does not exist", httpx.ErrValidation, *in.ReplyToID)
			}
			return nil, err
		}
		if target.RoomID != in.RoomID {
			return nil, fmt.Errorf("%w: reply target %d is not in room %d", httpx.ErrValidation, *in.ReplyToID, in.RoomID)
		}
	}
	typ := Classify(mimeType, originalName)

	key := uuid.NewString() + filepath.Ext(originalName)
	if err := s.blobs.Put(ctx, key, mimeType, file, size); err != nil {
		return nil, fmt.Errorf("store blob: %w", err)
	}
	u, err := s.blobs.PresignGet(ctx, key, presignTTL)
	if err != nil {
		return nil, fmt.Errorf("presign: %w", err)
	}

	m, err := s.messages.Send(userID, message.SendReq{
		RoomID:    in.RoomID,
		Content:   in.Content,
		Type:      typ,
		ReplyToID: in.ReplyToID,
	})
	if err != nil {
		return nil, err
	}
	a, err := s.repo.Create(&message.Attachment{
		MessageID:    m.ID,
		FileName:     key,
		OriginalName: originalName,
		MimeType:     mimeType,
		FileSize:     size,
		DownloadURL:  u.String(),
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return nil, err
	}
	metrics.AttachmentsStored.Inc()
	m.Attachments = []message.Attachment{*a}
	return &Upload{Message: m, Attachment: a}, nil
}
