package client

import (
	"errors"
	"fmt"
)

// Phase is the compose-box lifecycle. Modeling it as a closed machine keeps
// combinations like "sending while idle" unrepresentable.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseComposing
	PhaseSending
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseComposing:
		return "composing"
	case PhaseSending:
		return "sending"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Reply carries the target shown above the input while replying.
type Reply struct {
	MessageID int64
	Author    string
	Content   string
}

// Edit carries the message being rewritten. Original is kept so a cancel can
// tell whether the draft still matches the server copy.
type Edit struct {
	MessageID int64
	Original  string
}

var ErrBusy = errors.New("a send is already in flight")

// Composer is client-local state only; the server never sees it.
type Composer struct {
	phase Phase
	draft string
	reply *Reply
	edit  *Edit
}

func NewComposer() *Composer { return &Composer{} }

func (c *Composer) Phase() Phase   { return c.phase }
func (c *Composer) Draft() string  { return c.draft }
func (c *Composer) Reply() *Reply  { return c.reply }
func (c *Composer) Editing() *Edit { return c.edit }

// SetDraft mirrors the input field. An empty draft with no reply context
// drops back to idle.
func (c *Composer) SetDraft(s string) error {
	if c.phase == PhaseSending {
		return ErrBusy
	}
	c.draft = s
	if s == "" && c.reply == nil && c.edit == nil {
		c.phase = PhaseIdle
	} else {
		c.phase = PhaseComposing
	}
	return nil
}

// BeginReply attaches a reply target; cleared on send or explicit cancel.
// Reply and edit are exclusive, so an in-progress edit is dropped.
func (c *Composer) BeginReply(r Reply) error {
	if c.phase == PhaseSending {
		return ErrBusy
	}
	c.reply = &r
	c.edit = nil
	c.phase = PhaseComposing
	return nil
}

func (c *Composer) CancelReply() {
	if c.phase == PhaseSending {
		return
	}
	c.reply = nil
	if c.draft == "" && c.edit == nil {
		c.phase = PhaseIdle
	}
}

// BeginEdit loads an existing message into the input. The current draft is
// replaced by the message body so the user rewrites what the server has.
func (c *Composer) BeginEdit(e Edit) error {
	if c.phase == PhaseSending {
		return ErrBusy
	}
	c.edit = &e
	c.reply = nil
	c.draft = e.Original
	c.phase = PhaseComposing
	return nil
}

// CancelEdit discards the rewrite and returns the input to an empty state.
func (c *Composer) CancelEdit() {
	if c.phase == PhaseSending {
		return
	}
	c.edit = nil
	c.draft = ""
	if c.reply == nil {
		c.phase = PhaseIdle
	}
}

// BeginSend transitions composing -> sending and disables the triggering
// control against duplicate submission from this session. It does not guard
// against other open sessions of the same identity.
func (c *Composer) BeginSend() error {
	switch c.phase {
	case PhaseSending:
		return ErrBusy
	case PhaseIdle:
		return errors.New("nothing to send")
	}
	c.phase = PhaseSending
	return nil
}

// Succeed clears the draft and any reply or edit context after the list is
// refreshed.
func (c *Composer) Succeed() {
	c.phase = PhaseIdle
	c.draft = ""
	c.reply = nil
	c.edit = nil
}

// Fail returns to composing with the draft retained so the user can retry.
func (c *Composer) Fail() {
	if c.phase == PhaseSending {
		c.phase = PhaseComposing
	}
}
