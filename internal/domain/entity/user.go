package entity

import "time"

// Papéis de utilizador no marketplace.
const (
	RoleAgricultor = "agricultor"
	RoleComprador  = "comprador"
	RoleAgente     = "agente"
	RoleAdmin      = "admin"
)

// User perfil de utilizador. O papel determina o dashboard e as permissões:
// agricultores publicam produtos, compradores colocam encomendas, agentes
// acompanham recebimentos e têm sessões de trabalho cronometradas.
type User struct {
	ID            string
	Email         string
	PasswordHash  string
	FullName      string
	Phone         string
	Role          string
	Country       string // ISO 3166-1 alpha-2 (AO, CD, CG, ZM, NA, PT, FR)
	Province      string
	Municipality  string
	CompanyName   string // apenas compradores
	AgentCode     string // apenas agentes
	AvatarURL     string
	EmailVerified bool
	Status        string // active | suspended
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
