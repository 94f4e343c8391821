package entity

import "time"

// Notification notificação em aplicação (contador de não lidas no sino).
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Body      string
	Kind      string // order | message | system
	Read      bool
	CreatedAt time.Time
}
