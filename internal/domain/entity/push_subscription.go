package entity

import "time"

// PushSubscription uma subscrição web push por endpoint de browser e utilizador.
// P256dh e Auth são as chaves devolvidas pelo PushManager do browser.
type PushSubscription struct {
	ID        string
	UserID    string
	Endpoint  string
	P256dh    string
	Auth      string
	CreatedAt time.Time
}
