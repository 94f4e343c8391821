package dto

import "time"

// NotificationResponse uma notificação em aplicação.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Kind      string    `json:"kind"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// UnreadCountResponse contador do sino.
type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}
