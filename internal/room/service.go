package room

import (
	"errors"
	"fmt"
	"time"

	"chat-service/internal/metrics"
	"chat-service/internal/shared/httpx"

	"gorm.io/gorm"
)

type Service interface {
	EnsureGeneral(actorID, role string) (*Room, error)
	GetByID(roomID int64) (*Room, error)
	Join(roomID int64, userID string) error
	Heartbeat(roomID int64, userID string) error
	OnlineMembers(roomID int64, now time.Time) ([]Member, error)
	ListMembers(roomID int64) ([]Member, error)
}

type service struct {
	repo Repository
}

func NewService(r Repository) Service {
	return &service{repo: r}
}

// EnsureGeneral returns the canonical room, creating it lazily. Creation is
// restricted to a privileged identity; everyone else gets not-found until an
// admin has shown up once.
func (s *service) EnsureGeneral(actorID, role string) (*Room, error) {
	r, err := s.repo.GetByName(GeneralRoomName)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if role != RoleAdmin {
		return nil, fmt.Errorf("%w: room %q", httpx.ErrNotFound, GeneralRoomName)
	}
	return s.repo.Create(&Room{
		Name:        GeneralRoomName,
		Description: "Community-wide chat",
		CreatedBy:   actorID,
		CreatedAt:   time.Now(),
	})
}

func (s *service) GetByID(roomID int64) (*Room, error) {
	r, err := s.repo.GetByID(roomID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httpx.ErrNotFound
	}
	return r, err
}

func (s *service) Join(roomID int64, userID string) error {
	if _, err := s.GetByID(roomID); err != nil {
		return err
	}
	return s.repo.UpsertMember(roomID, userID, RoleMember, time.Now())
}

// Heartbeat refreshes the caller's last-seen timestamp. Idempotent: redundant
// calls from multiple open sessions of the same identity only move the
// timestamp forward.
func (s *service) Heartbeat(roomID int64, userID string) error {
	if err := s.repo.TouchMember(roomID, userID, time.Now()); err != nil {
		return err
	}
	metrics.Heartbeats.Inc()
	return nil
}

// OnlineMembers is a pure derived view over heartbeat recency; nothing about
// "online" is persisted separately.
func (s *service) OnlineMembers(roomID int64, now time.Time) ([]Member, error) {
	return s.repo.ListOnline(roomID, now.Add(-PresenceWindow))
}

func (s *service) ListMembers(roomID int64) ([]Member, error) {
	return s.repo.ListMembers(roomID)
}
