package entity

import "time"

// SupportMessage mensagem do formulário público de contacto.
type SupportMessage struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Message   string
	CreatedAt time.Time
}
