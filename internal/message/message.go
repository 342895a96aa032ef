package message

import "time"

// Type is the closed set of message kinds. Render sites switch on it
// exhaustively; adding a kind is a compile-visible change.
type Type string

const (
	TypeText     Type = "TEXT"
	TypeFile     Type = "FILE"
	TypeImage    Type = "IMAGE"
	TypeCode     Type = "CODE"
	TypeDocument Type = "DOCUMENT"
)

func (t Type) Valid() bool {
	switch t {
	case TypeText, TypeFile, TypeImage, TypeCode, TypeDocument:
		return true
	}
	return false
}

// Editable reports whether the content of a message of this type may be
// rewritten. File-bearing kinds are immutable content-wise.
func (t Type) Editable() bool {
	return t == TypeText || t == TypeCode
}

type Message struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	RoomID    int64     `gorm:"index" json:"room_id"`
	UserID    string    `gorm:"size:64" json:"user_id"`
	Content   string    `json:"content"`
	Type      Type      `gorm:"size:16" json:"message_type"`
	ReplyToID *int64    `gorm:"index" json:"reply_to_id,omitempty"`
	IsEdited  bool      `json:"is_edited"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// ReplyTo is resolved at fetch time, never stored as a snapshot, so the
	// preview always reflects the referenced message's current content.
	ReplyTo     *Message     `gorm:"foreignKey:ReplyToID" json:"reply_to,omitempty"`
	Attachments []Attachment `gorm:"foreignKey:MessageID" json:"attachments,omitempty"`
	Reactions   []Reaction   `gorm:"foreignKey:MessageID" json:"reactions,omitempty"`
}

type Attachment struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	MessageID    int64     `gorm:"index;not null" json:"message_id"`
	FileName     string    `gorm:"size:255" json:"file_name"`
	OriginalName string    `gorm:"size:255" json:"original_name"`
	MimeType     string    `gorm:"size:100" json:"mime_type"`
	FileSize     int64     `json:"file_size"`
	DownloadURL  string    `gorm:"size:1024" json:"download_url"`
	CreatedAt    time.Time `json:"created_at"`
}

type Reaction struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	MessageID int64     `gorm:"uniqueIndex:idx_reaction_tuple;not null" json:"message_id"`
	UserID    string    `gorm:"uniqueIndex:idx_reaction_tuple;size:64;not null" json:"user_id"`
	Emoji     string    `gorm:"uniqueIndex:idx_reaction_tuple;size:32;not null" json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
}
