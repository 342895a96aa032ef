package reaction

import (
	"fmt"

	"chat-service/internal/message"
	"chat-service/internal/shared/httpx"
)

type Service interface {
	Add(messageID int64, userID, emoji string) error
	Remove(messageID int64, userID, emoji string) error
	ListByMessage(messageID int64) ([]message.Reaction, error)
}

type service struct {
	repo     Repository
	messages message.Service
}

func NewService(r Repository, messages message.Service) Service {
	return &service{repo: r, messages: messages}
}

func (s *service) Add(messageID int64, userID, emoji string) error {
	if emoji == "" {
		return fmt.Errorf("%w: emoji is required", httpx.ErrValidation)
	}
	if _, err := s.messages.GetByID(messageID); err != nil {
		return err
	}
	return s.repo.Add(messageID, userID, emoji)
}

func (s *service) Remove(messageID int64, userID, emoji string) error {
	if emoji == "" {
		return fmt.Errorf("%w: emoji is required", httpx.ErrValidation)
	}
	return s.repo.Remove(messageID, userID, emoji)
}

func (s *service) ListByMessage(messageID int64) ([]message.Reaction, error) {
	return s.repo.ListByMessage(messageID)
}

// Count is one rendered emoji bucket.
type Count struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// Aggregate rolls raw reaction rows up into display counts, first-seen emoji
// order. It says nothing about whether the viewer reacted; callers that need
// that scan the raw rows with Reacted.
func Aggregate(rows []message.Reaction) []Count {
	idx := make(map[string]int, len(rows))
	out := make([]Count, 0, len(rows))
	for _, r := range rows {
		i, ok := idx[r.Emoji]
		if !ok {
			idx[r.Emoji] = len(out)
			out = append(out, Count{Emoji: r.Emoji})
			i = len(out) - 1
		}
		out[i].Count++
	}
	return out
}

// Reacted reports whether userID has the given emoji among rows.
func Reacted(rows []message.Reaction, userID, emoji string) bool {
	for _, r := range rows {
		if r.UserID == userID && r.Emoji == emoji {
			return true
		}
	}
	return false
}
