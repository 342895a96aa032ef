// Package state serves the pull-synchronization view: one fetch returns the
// recent message window and the online member list. Staleness is bounded by
// the client's poll interval; there is no push channel.
package state

import (
	"time"

	"chat-service/internal/message"
	"chat-service/internal/metrics"
	"chat-service/internal/room"
)

// MessageWindow is the number of recent messages a fetch returns.
const MessageWindow = 50

type View struct {
	Messages      []message.Message `json:"messages"`
	OnlineMembers []room.Member     `json:"online_members"`
}

type Service interface {
	Fetch(roomID int64) (*View, error)
}

type service struct {
	messages message.Service
	rooms    room.Service
}

func NewService(messages message.Service, rooms room.Service) Service {
	return &service{messages: messages, rooms: rooms}
}

func (s *service) Fetch(roomID int64) (*View, error) {
	if _, err := s.rooms.GetByID(roomID); err != nil {
		return nil, err
	}
	msgs, err := s.messages.ListWindow(roomID, MessageWindow)
	if err != nil {
		return nil, err
	}
	online, err := s.rooms.OnlineMembers(roomID, time.Now())
	if err != nil {
		return nil, err
	}
	metrics.StateFetches.Inc()
	return &View{Messages: msgs, OnlineMembers: online}, nil
}
