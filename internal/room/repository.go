package room

import (
	"time"

	"chat-service/internal/shared/db"

	"gorm.io/gorm/clause"
)

type Repository interface {
	GetByName(name string) (*Room, error)
	GetByID(roomID int64) (*Room, error)
	Create(r *Room) (*Room, error)
	UpsertMember(roomID int64, userID, role string, seenAt time.Time) error
	TouchMember(roomID int64, userID string, seenAt time.Time) error
	ListMembers(roomID int64) ([]Member, error)
	ListOnline(roomID int64, since time.Time) ([]Member, error)
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func (r *repo) GetByName(name string) (*Room, error) {
	var out Room
	if err := r.store.Base.First(&out, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repo) GetByID(roomID int64) (*Room, error) {
	var out Room
	if err := r.store.Base.First(&out, "id = ?", roomID).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repo) Create(room *Room) (*Room, error) {
	if err := r.store.Base.Create(room).Error; err != nil {
		return nil, err
	}
	return room, nil
}

// UpsertMember creates the membership row or refreshes last-seen if it
// already exists. The stored role is never overwritten on conflict, so a
// heartbeat routed through here cannot demote an admin. Safe to call
// repeatedly from concurrent sessions.
func (r *repo) UpsertMember(roomID int64, userID, role string, seenAt time.Time) error {
	m := &Member{RoomID: roomID, UserID: userID, Role: role, LastSeenAt: seenAt}
	return r.store.Base.Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "room_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_seen_at"}),
		},
	).Create(m).Error
}

// TouchMember bumps last-seen, creating the membership with the default role
// if the heartbeat races ahead of an explicit join.
func (r *repo) TouchMember(roomID int64, userID string, seenAt time.Time) error {
	return r.UpsertMember(roomID, userID, RoleMember, seenAt)
}

func (r *repo) ListMembers(roomID int64) ([]Member, error) {
	var out []Member
	err := r.store.Base.Where("room_id = ?", roomID).Order("user_id").Find(&out).Error
	return out, err
}

func (r *repo) ListOnline(roomID int64, since time.Time) ([]Member, error) {
	var out []Member
	err := r.store.Base.
		Where("room_id = ? AND last_seen_at > ?", roomID, since).
		Order("user_id").Find(&out).Error
	return out, err
}
