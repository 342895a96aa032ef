package reaction

import (
	"time"

	"chat-service/internal/message"
	"chat-service/internal/shared/db"

	"gorm.io/gorm/clause"
)

type Repository interface {
	Add(messageID int64, userID, emoji string) error
	Remove(messageID int64, userID, emoji string) error
	ListByMessage(messageID int64) ([]message.Reaction, error)
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

// Add inserts the (message, user, emoji) tuple; re-adding an identical tuple
// is absorbed by the unique index rather than duplicated.
func (r *repo) Add(messageID int64, userID, emoji string) error {
	row := &message.Reaction{
		MessageID: messageID,
		UserID:    userID,
		Emoji:     emoji,
		CreatedAt: time.Now(),
	}
	return r.store.Base.Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}, {Name: "user_id"}, {Name: "emoji"}},
			DoNothing: true,
		},
	).Create(row).Error
}

// Remove deletes the matching tuple if present; absent tuples are a no-op.
func (r *repo) Remove(messageID int64, userID, emoji string) error {
	return r.store.Base.
		Where("message_id = ? AND user_id = ? AND emoji = ?", messageID, userID, emoji).
		Delete(&message.Reaction{}).Error
}

func (r *repo) ListByMessage(messageID int64) ([]message.Reaction, error) {
	var out []message.Reaction
	err := r.store.Base.Where("message_id = ?", messageID).Order("id").Find(&out).Error
	return out, err
}
