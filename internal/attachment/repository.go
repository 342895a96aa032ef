package attachment

import (
	"chat-service/internal/message"
	"chat-service/internal/shared/db"
)

type Repository interface {
	Create(a *message.Attachment) (*message.Attachment, error)
	ListByMessage(messageID int64) ([]message.Attachment, error)
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func (r *repo) Create(a *message.Attachment) (*message.Attachment, error) {
	if err := r.store.Base.Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

func (r *repo) ListByMessage(messageID int64) ([]message.Attachment, error) {
	var out []message.Attachment
	err := r.store.Base.Where("message_id = ?", messageID).Order("id").Find(&out).Error
	return out, err
}
