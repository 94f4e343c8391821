package entity

import "time"

// EmailOTP código de verificação de 6 dígitos enviado por email.
// Um código é de uso único: ConsumedAt marca a verificação bem sucedida.
type EmailOTP struct {
	ID         string
	UserID     string
	Code       string
	ExpiresAt  time.Time
	ConsumedAt *time.Time
	CreatedAt  time.Time
}

// Usable indica se o código ainda pode ser verificado em now.
func (o EmailOTP) Usable(now time.Time) bool {
	return o.ConsumedAt == nil && !now.After(o.ExpiresAt)
}
