package message_test

import (
	"context"
	"errors"
	"testing"

	"chat-service/internal/message"
	"chat-service/internal/migrate"
	"chat-service/internal/shared/db"
	"chat-service/internal/shared/httpx"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *db.Store {
	t.Helper()
	base, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := base.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	store := &db.Store{Base: base}
	require.NoError(t, migrate.AutoMigrateAll(store))
	return store
}

func newService(t *testing.T) (message.Service, *db.Store) {
	store := newTestStore(t)
	return message.NewService(message.NewRepository(store), nil), store
}

type capturedEvent struct {
	kind string
	key  string
}

type fakePublisher struct {
	events []capturedEvent
}

func (f *fakePublisher) PublishEvent(_ context.Context, kind, key string, _ any) error {
	f.events = append(f.events, capturedEvent{kind: kind, key: key})
	return nil
}

func TestLifecycleEventsPublished(t *testing.T) {
	store := newTestStore(t)
	pub := &fakePublisher{}
	svc := message.NewService(message.NewRepository(store), pub)

	m, err := svc.Send("alice", message.SendReq{RoomID: 7, Content: "hello"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(m.ID, "alice"))

	require.Len(t, pub.events, 2)
	require.Equal(t, message.EventCreated, pub.events[0].kind)
	require.Equal(t, message.EventDeleted, pub.events[1].kind)
	// both keyed by room so a partitioned topic keeps per-room order
	require.Equal(t, "room-7", pub.events[0].key)
	require.Equal(t, "room-7", pub.events[1].key)
}

func TestSendRequiresContentForText(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Send("alice", message.SendReq{RoomID: 1})
	require.Error(t, err)
}

func TestSendRejectsDanglingReply(t *testing.T) {
	svc, _ := newService(t)
	missing := int64(999)
	_, err := svc.Send("alice", message.SendReq{RoomID: 1, Content: "hi", ReplyToID: &missing})
	require.Error(t, err)
}

func TestSendRejectsCrossRoomReply(t *testing.T) {
	svc, _ := newService(t)
	a, err := svc.Send("alice", message.SendReq{RoomID: 1, Content: "room one"})
	require.NoError(t, err)
	_, err = svc.Send("bob", message.SendReq{RoomID: 2, Content: "room two", ReplyToID: &a.ID})
	require.Error(t, err)
}

func TestEditByNonAuthorRejected(t *testing.T) {
	svc, _ := newService(t)
	m, err := svc.Send("alice", message.SendReq{RoomID: 1, Content: "mine"})
	require.NoError(t, err)

	_, err = svc.Edit(m.ID, "mallory", "stolen")
	require.ErrorIs(t, err, httpx.ErrForbidden)

	got, err := svc.GetByID(m.ID)
	require.NoError(t, err)
	require.Equal(t, "mine", got.Content)
	require.False(t, got.IsEdited)
}

func TestEditRestrictedToTextAndCode(t *testing.T) {
	svc, _ := newService(t)
	img, err := svc.Send("alice", message.SendReq{RoomID: 1, Type: message.TypeImage})
	require.NoError(t, err)
	_, err = svc.Edit(img.ID, "alice", "new caption")
	require.Error(t, err)

	code, err := svc.Send("alice", message.SendReq{RoomID: 1, Content: "x := 1", Type: message.TypeCode})
	require.NoError(t, err)
	edited, err := svc.Edit(code.ID, "alice", "x := 2")
	require.NoError(t, err)
	require.True(t, edited.IsEdited)
	require.Equal(t, "x := 2", edited.Content)
}

func TestDeleteByNonAuthorRejected(t *testing.T) {
	svc, _ := newService(t)
	m, err := svc.Send("alice", message.SendReq{RoomID: 1, Content: "mine"})
	require.NoError(t, err)

	err = svc.Delete(m.ID, "mallory")
	require.ErrorIs(t, err, httpx.ErrForbidden)

	_, err = svc.GetByID(m.ID)
	require.NoError(t, err)
}

func TestLiveReplyReference(t *testing.T) {
	svc, _ := newService(t)
	a, err := svc.Send("alice", message.SendReq{RoomID: 1, Content: "Hello"})
	require.NoError(t, err)
	_, err = svc.Send("bob", message.SendReq{RoomID: 1, Content: "Hi", ReplyToID: &a.ID})
	require.NoError(t, err)

	_, err = svc.Edit(a.ID, "alice", "Hello everyone")
	require.NoError(t, err)

	window, err := svc.ListWindow(1, 50)
	require.NoError(t, err)
	require.Len(t, window, 2)
	reply := window[1]
	require.NotNil(t, reply.ReplyTo)
	require.Equal(t, "Hello everyone", reply.ReplyTo.Content)
	require.True(t, reply.ReplyTo.IsEdited)
}

func TestCascadeDeleteCompleteness(t *testing.T) {
	svc, store := newService(t)

	root, err := svc.Send("alice", message.SendReq{RoomID: 1, Content: "root"})
	require.NoError(t, err)
	reply1, err := svc.Send("bob", message.SendReq{RoomID: 1, Content: "reply 1", ReplyToID: &root.ID})
	require.NoError(t, err)
	_, err = svc.Send("carol", message.SendReq{RoomID: 1, Content: "reply 2", ReplyToID: &root.ID})
	require.NoError(t, err)
	bystander, err := svc.Send("dave", message.SendReq{RoomID: 1, Content: "unrelated"})
	require.NoError(t, err)

	require.NoError(t, store.Base.Create(&message.Reaction{MessageID: root.ID, UserID: "bob", Emoji: "👍"}).Error)
	require.NoError(t, store.Base.Create(&message.Reaction{MessageID: reply1.ID, UserID: "alice", Emoji: "🎉"}).Error)
	require.NoError(t, store.Base.Create(&message.Attachment{MessageID: root.ID, FileName: "a.png", MimeType: "image/png"}).Error)

	var before int64
	require.NoError(t, store.Base.Model(&message.Message{}).Count(&before).Error)

	require.NoError(t, svc.Delete(root.ID, "alice"))

	var after int64
	require.NoError(t, store.Base.Model(&message.Message{}).Count(&after).Error)
	// root + 2 direct replies gone
	require.Equal(t, before-3, after)

	var reactions, attachments int64
	require.NoError(t, store.Base.Model(&message.Reaction{}).Count(&reactions).Error)
	require.NoError(t, store.Base.Model(&message.Attachment{}).Count(&attachments).Error)
	require.Zero(t, reactions)
	require.Zero(t, attachments)

	_, err = svc.GetByID(bystander.ID)
	require.NoError(t, err)
}

func TestDeleteMissingMessage(t *testing.T) {
	svc, _ := newService(t)
	err := svc.Delete(424242, "alice")
	require.True(t, errors.Is(err, httpx.ErrNotFound))
}
