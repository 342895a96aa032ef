package migrate

import (
	"chat-service/internal/message"
	"chat-service/internal/room"
	"chat-service/internal/shared/db"
)

func AutoMigrateAll(store *db.Store) error {
	return store.Base.AutoMigrate(
		&room.Room{}, &room.Member{},
		&message.Message{},
		&message.Attachment{},
		&message.Reaction{},
	)
}
