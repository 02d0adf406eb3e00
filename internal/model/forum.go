package model

import "time"

// Room is a chat forum room. MessageCount is a listing decoration computed
// by LEFT JOIN + GROUP BY, not a stored column.
type Room struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	CreatorID    int64     `json:"creator_id"`
	CreatedAt    time.Time `json:"created_at"`
	MessageCount int       `json:"message_count"`
}

// Message is one chat message. The sender must be a member of the room at
// insert time; the check lives in the forum service.
type Message struct {
	ID        int64     `json:"id"`
	RoomID    int64     `json:"room_id"`
	SenderID  int64     `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
