package client_test

import (
	"testing"

	"chat-service/pkg/client"

	"github.com/stretchr/testify/require"
)

func TestComposerHappyPath(t *testing.T) {
	c := client.NewComposer()
	require.Equal(t, client.PhaseIdle, c.Phase())

	require.NoError(t, c.SetDraft("hello"))
	require.Equal(t, client.PhaseComposing, c.Phase())

	require.NoError(t, c.BeginSend())
	require.Equal(t, client.PhaseSending, c.Phase())

	c.Succeed()
	require.Equal(t, client.PhaseIdle, c.Phase())
	require.Empty(t, c.Draft())
	require.Nil(t, c.Reply())
}

func TestComposerFailureRetainsDraft(t *testing.T) {
	c := client.NewComposer()
	require.NoError(t, c.SetDraft("important thought"))
	require.NoError(t, c.BeginSend())

	c.Fail()
	require.Equal(t, client.PhaseComposing, c.Phase())
	require.Equal(t, "important thought", c.Draft())
}

func TestComposerCannotSendFromIdle(t *testing.T) {
	c := client.NewComposer()
	require.Error(t, c.BeginSend())
}

func TestComposerDoubleSendBlocked(t *testing.T) {
	c := client.NewComposer()
	require.NoError(t, c.SetDraft("x"))
	require.NoError(t, c.BeginSend())
	require.ErrorIs(t, c.BeginSend(), client.ErrBusy)
	require.ErrorIs(t, c.SetDraft("y"), client.ErrBusy)
}

func TestComposerReplyContext(t *testing.T) {
	c := client.NewComposer()
	require.NoError(t, c.BeginReply(client.Reply{MessageID: 7, Author: "alice", Content: "Hello"}))
	require.Equal(t, client.PhaseComposing, c.Phase())
	require.NotNil(t, c.Reply())
	require.EqualValues(t, 7, c.Reply().MessageID)

	c.CancelReply()
	require.Nil(t, c.Reply())
	require.Equal(t, client.PhaseIdle, c.Phase())
}

func TestComposerReplyClearedOnSuccess(t *testing.T) {
	c := client.NewComposer()
	require.NoError(t, c.BeginReply(client.Reply{MessageID: 7}))
	require.NoError(t, c.SetDraft("re: hi"))
	require.NoError(t, c.BeginSend())
	c.Succeed()
	require.Nil(t, c.Reply())
}

func TestComposerEditPrefillsDraft(t *testing.T) {
	c := client.NewComposer()
	require.NoError(t, c.BeginEdit(client.Edit{MessageID: 12, Original: "typo hre"}))
	require.Equal(t, client.PhaseComposing, c.Phase())
	require.NotNil(t, c.Editing())
	require.EqualValues(t, 12, c.Editing().MessageID)
	require.Equal(t, "typo hre", c.Draft())

	require.NoError(t, c.SetDraft("typo here"))
	require.NoError(t, c.BeginSend())
	c.Succeed()
	require.Nil(t, c.Editing())
	require.Empty(t, c.Draft())
	require.Equal(t, client.PhaseIdle, c.Phase())
}

func TestComposerEditCancelDropsTarget(t *testing.T) {
	c := client.NewComposer()
	require.NoError(t, c.BeginEdit(client.Edit{MessageID: 12, Original: "old body"}))
	c.CancelEdit()
	require.Nil(t, c.Editing())
	require.Empty(t, c.Draft())
	require.Equal(t, client.PhaseIdle, c.Phase())
}

func TestComposerEditAndReplyAreExclusive(t *testing.T) {
	c := client.NewComposer()
	require.NoError(t, c.BeginReply(client.Reply{MessageID: 7, Author: "alice"}))
	require.NoError(t, c.BeginEdit(client.Edit{MessageID: 12, Original: "old body"}))
	require.Nil(t, c.Reply())
	require.NotNil(t, c.Editing())

	require.NoError(t, c.BeginReply(client.Reply{MessageID: 8}))
	require.Nil(t, c.Editing())
	require.NotNil(t, c.Reply())
}

func TestComposerEditBlockedWhileSending(t *testing.T) {
	c := client.NewComposer()
	require.NoError(t, c.SetDraft("in flight"))
	require.NoError(t, c.BeginSend())
	require.ErrorIs(t, c.BeginEdit(client.Edit{MessageID: 3}), client.ErrBusy)
}

func TestComposerEditRetainedOnFailure(t *testing.T) {
	c := client.NewComposer()
	require.NoError(t, c.BeginEdit(client.Edit{MessageID: 12, Original: "old body"}))
	require.NoError(t, c.SetDraft("new body"))
	require.NoError(t, c.BeginSend())
	c.Fail()
	require.Equal(t, client.PhaseComposing, c.Phase())
	require.NotNil(t, c.Editing())
	require.Equal(t, "new body", c.Draft())
}

func TestClearingDraftReturnsToIdle(t *testing.T) {
	c := client.NewComposer()
	require.NoError(t, c.SetDraft("typed something"))
	require.NoError(t, c.SetDraft(""))
	require.Equal(t, client.PhaseIdle, c.Phase())
}

func TestShouldFollow(t *testing.T) {
	require.True(t, client.ShouldFollow(0, false))
	require.True(t, client.ShouldFollow(49, false))
	require.False(t, client.ShouldFollow(51, false))
	// forced follow (own send, initial load) wins regardless of position
	require.True(t, client.ShouldFollow(4000, true))
}
