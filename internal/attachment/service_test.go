package attachment_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"chat-service/internal/attachment"
	"chat-service/internal/message"
	"chat-service/internal/migrate"
	"chat-service/internal/shared/db"
	"chat-service/internal/shared/httpx"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeBlobs struct {
	objects map[string][]byte
}

func (f *fakeBlobs) Put(_ context.Context, key, _ string, r io.Reader, _ int64) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[key] = b
	return nil
}

func (f *fakeBlobs) PresignGet(_ context.Context, key string, _ time.Duration) (*url.URL, error) {
	return url.Parse(fmt.Sprintf("http://blobs.local/%s?sig=test", key))
}

func setup(t *testing.T) (attachment.Service, *fakeBlobs, *db.Store) {
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

	msgSvc := message.NewService(message.NewRepository(store), nil)
	blobs := &fakeBlobs{}
	return attachment.NewService(attachment.NewRepository(store), msgSvc, blobs), blobs, store
}

func TestUploadImageProducesImageMessage(t *testing.T) {
	svc, blobs, _ := setup(t)
	payload := bytes.Repeat([]byte{0x89}, 1024)

	out, err := svc.Upload(context.Background(), "alice",
		attachment.UploadReq{RoomID: 1},
		bytes.NewReader(payload), "diagram.png", "image/png", 1258291)
	require.NoError(t, err)

	require.Equal(t, message.TypeImage, out.Message.Type)
	require.Equal(t, "alice", out.Message.UserID)
	require.Equal(t, "image/png", out.Attachment.MimeType)
	require.EqualValues(t, 1258291, out.Attachment.FileSize)
	require.Equal(t, "diagram.png", out.Attachment.OriginalName)
	require.True(t, strings.HasSuffix(out.Attachment.FileName, ".png"))
	require.Contains(t, out.Attachment.DownloadURL, out.Attachment.FileName)
	require.Len(t, blobs.objects, 1)
}

func TestUploadRequiresIdentity(t *testing.T) {
	svc, blobs, _ := setup(t)
	_, err := svc.Upload(context.Background(), "",
		attachment.UploadReq{RoomID: 1},
		bytes.NewReader([]byte("x")), "a.txt", "text/plain", 1)
	require.ErrorIs(t, err, httpx.ErrUnauthorized)
	// precondition failure happens before any storage call
	require.Empty(t, blobs.objects)
}

func TestUploadDanglingReplyLeavesNoBlob(t *testing.T) {
	svc, blobs, _ := setup(t)
	missing := int64(424242)
	_, err := svc.Upload(context.Background(), "bob",
		attachment.UploadReq{RoomID: 1, ReplyToID: &missing},
		bytes.NewReader([]byte("data")), "notes.txt", "text/plain", 4)
	require.ErrorIs(t, err, httpx.ErrValidation)
	// the rejected send must not strand an object in the bucket
	require.Empty(t, blobs.objects)
}

func TestUploadReplyAcrossRoomsRejected(t *testing.T) {
	svc, blobs, store := setup(t)
	msgSvc := message.NewService(message.NewRepository(store), nil)
	other, err := msgSvc.Send("alice", message.SendReq{RoomID: 2, Content: "elsewhere"})
	require.NoError(t, err)

	_, err = svc.Upload(context.Background(), "bob",
		attachment.UploadReq{RoomID: 1, ReplyToID: &other.ID},
		bytes.NewReader([]byte("data")), "notes.txt", "text/plain", 4)
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.Empty(t, blobs.objects)
}

func TestUploadAsReply(t *testing.T) {
	svc, _, store := setup(t)
	msgSvc := message.NewService(message.NewRepository(store), nil)
	root, err := msgSvc.Send("alice", message.SendReq{RoomID: 1, Content: "look at this"})
	require.NoError(t, err)

	out, err := svc.Upload(context.Background(), "bob",
		attachment.UploadReq{RoomID: 1, ReplyToID: &root.ID},
		bytes.NewReader([]byte("data")), "notes.txt", "text/plain", 4)
	require.NoError(t, err)
	require.Equal(t, message.TypeCode, out.Message.Type)
	require.NotNil(t, out.Message.ReplyToID)
	require.Equal(t, root.ID, *out.Message.ReplyToID)
}
