package message

import (
	"chat-service/internal/shared/db"

	"gorm.io/gorm"
)

type Repository interface {
	Create(m *Message) (*Message, error)
	GetByID(messageID int64) (*Message, error)
	ListWindow(roomID int64, limit int) ([]Message, error)
	UpdateContent(m *Message) error
	CascadeDelete(messageID int64) error
	CountByRoom(roomID int64) (int64, error)
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func (r *repo) Create(m *Message) (*Message, error) {
	if err := r.store.Base.Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (r *repo) GetByID(messageID int64) (*Message, error) {
	var m Message
	if err := r.store.Base.First(&m, "id = ?", messageID).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ListWindow returns the most recent limit messages of a room in ascending
// creation order with reply targets, attachments and reactions resolved.
func (r *repo) ListWindow(roomID int64, limit int) ([]Message, error) {
	var out []Message
	err := r.store.Base.
		Where("room_id = ?", roomID).
		Order("created_at DESC, id DESC").Limit(limit).
		Preload("ReplyTo").
		Preload("Attachments").
		Preload("Reactions").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (r *repo) UpdateContent(m *Message) error {
	return r.store.Base.Model(m).
		Select("content", "is_edited", "updated_at").
		Updates(map[string]any{
			"content":    m.Content,
			"is_edited":  m.IsEdited,
			"updated_at": m.UpdatedAt,
		}).Error
}

// CascadeDelete removes the message, its reactions and attachments, and every
// direct reply (with that reply's reactions and attachments) in one
// transaction. Partial cascades are never observable.
func (r *repo) CascadeDelete(messageID int64) error {
	return r.store.Base.Transaction(func(tx *gorm.DB) error {
		var replyIDs []int64
		if err := tx.Model(&Message{}).
			Where("reply_to_id = ?", messageID).
			Pluck("id", &replyIDs).Error; err != nil {
			return err
		}
		ids := append([]int64{messageID}, replyIDs...)
		if err := tx.Where("message_id IN ?", ids).Delete(&Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("message_id IN ?", ids).Delete(&Attachment{}).Error; err != nil {
			return err
		}
		if len(replyIDs) > 0 {
			if err := tx.Where("id IN ?", replyIDs).Delete(&Message{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&Message{}, messageID).Error
	})
}

func (r *repo) CountByRoom(roomID int64) (int64, error) {
	var n int64
	err := r.store.Base.Model(&Message{}).Where("room_id = ?", roomID).Count(&n).Error
	return n, err
}
