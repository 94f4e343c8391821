package entity

import "time"

// PasswordReset token de redefinição de password, de uso único, validade de 30 minutos.
type PasswordReset struct {
	ID         string
	UserID     string
	Token      string
	ExpiresAt  time.Time
	ConsumedAt *time.Time
	CreatedAt  time.Time
}

// Usable indica se o token ainda pode ser usado em now.
func (p PasswordReset) Usable(now time.Time) bool {
	return p.ConsumedAt == nil && !now.After(p.ExpiresAt)
}
