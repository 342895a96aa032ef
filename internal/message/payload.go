package message

type SendReq struct {
	RoomID    int64  `json:"room_id" validate:"required"`
	Content   string `json:"content"`
	Type      Type   `json:"message_type"`
	ReplyToID *int64 `json:"reply_to_id"`
}

type EditReq struct {
	Content string `json:"content" validate:"required"`
}
