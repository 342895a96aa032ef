package message

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"chat-service/internal/metrics"
	"chat-service/internal/shared/httpx"

	"gorm.io/gorm"
)

// Event kinds emitted on the chat events topic.
const (
	EventCreated = "chat.message.created"
	EventDeleted = "chat.message.deleted"
)

// Publisher emits chat events to the broker. Emission is best-effort and
// never fails the user-facing operation.
type Publisher interface {
	PublishEvent(ctx context.Context, kind, key string, payload any) error
}

type Service interface {
	Send(userID string, in SendReq) (*Message, error)
	Edit(messageID int64, userID string, newContent string) (*Message, error)
	Delete(messageID int64, userID string) error
	GetByID(messageID int64) (*Message, error)
	ListWindow(roomID int64, limit int) ([]Message, error)
}

type service struct {
	repo   Repository
	events Publisher
}

func NewService(r Repository, events Publisher) Service {
	return &service{repo: r, events: events}
}

func (s *service) Send(userID string, in SendReq) (*Message, error) {
	typ := in.Type
	if typ == "" {
		typ = TypeText
	}
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: unknown message type %q", httpx.ErrValidation, in.Type)
	}
	// A bodiless TEXT message has nothing to show; file-bearing kinds get
	// their content from the attachment recorded right after creation.
	if in.Content == "" && typ == TypeText {
		return nil, fmt.Errorf("%w: content is required for text messages", httpx.ErrValidation)
	}
	if in.ReplyToID != nil {
		target, err := s.repo.GetByID(*in.ReplyToID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: reply target %d does not exist", httpx.ErrValidation, *in.ReplyToID)
			}
			return nil, err
		}
		if target.RoomID != in.RoomID {
			return nil, fmt.Errorf("%w: reply target %d is not in room %d", httpx.ErrValidation, *in.ReplyToID, in.RoomID)
		}
	}
	now := time.Now()
	m := &Message{
		RoomID:    in.RoomID,
		UserID:    userID,
		Content:   in.Content,
		Type:      typ,
		ReplyToID: in.ReplyToID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := s.repo.Create(m)
	if err != nil {
		return nil, err
	}
	metrics.MessagesSent.Inc()
	s.emit(EventCreated, created)
	return created, nil
}

func (s *service) Edit(messageID int64, userID string, newContent string) (*Message, error) {
	if newContent == "" {
		return nil, fmt.Errorf("%w: content is required", httpx.ErrValidation)
	}
	m, err := s.repo.GetByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	if m.UserID != userID {
		return nil, fmt.Errorf("%w: only the author may edit a message", httpx.ErrForbidden)
	}
	if !m.Type.Editable() {
		return nil, fmt.Errorf("%w: messages of type %s cannot be edited", httpx.ErrValidation, m.Type)
	}
	m.Content = newContent
	m.IsEdited = true
	m.UpdatedAt = time.Now()
	if err := s.repo.UpdateContent(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Delete(messageID int64, userID string) error {
	m, err := s.repo.GetByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpx.ErrNotFound
		}
		return err
	}
	if m.UserID != userID {
		return fmt.Errorf("%w: only the author may delete a message", httpx.ErrForbidden)
	}
	if err := s.repo.CascadeDelete(messageID); err != nil {
		return err
	}
	metrics.MessagesDeleted.Inc()
	s.emit(EventDeleted, m)
	return nil
}

func (s *service) GetByID(messageID int64) (*Message, error) {
	m, err := s.repo.GetByID(messageID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httpx.ErrNotFound
	}
	return m, err
}

func (s *service) ListWindow(roomID int64, limit int) ([]Message, error) {
	return s.repo.ListWindow(roomID, limit)
}

// Events are keyed by room so a partitioned topic keeps per-room order.
func (s *service) emit(kind string, m *Message) {
	if s.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.events.PublishEvent(ctx, kind, fmt.Sprintf("room-%d", m.RoomID), m); err != nil {
		log.Printf("event publish %s: %v", kind, err)
	}
}
