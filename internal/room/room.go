package room

import "time"

// PresenceWindow is the recency threshold for counting a member as online.
// Presence is derived from heartbeat age, not socket liveness: a backgrounded
// client that stops polling ages out even though its tab is still open.
const PresenceWindow = 5 * time.Minute

// GeneralRoomName is the canonical room every identity lands in.
const GeneralRoomName = "General"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type Room struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;uniqueIndex" json:"name"`
	Description string    `gorm:"size:500" json:"description"`
	CreatedBy   string    `gorm:"size:64" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type Member struct {
	RoomID     int64     `gorm:"primaryKey" json:"room_id"`
	UserID     string    `gorm:"primaryKey;size:64" json:"user_id"`
	Role       string    `gorm:"size:32" json:"role"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// Online reports whether the member's last heartbeat falls inside the
// presence window.
func (m Member) Online(now time.Time) bool {
	return now.Sub(m.LastSeenAt) < PresenceWindow
}
