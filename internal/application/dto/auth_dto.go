package dto

import "time"

// RegisterRequest entrada de registo (password em texto, o hash acontece no use case).
// AgentCode é o código público de um agente que indicou o utilizador, opcional.
type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	FullName     string `json:"full_name" validate:"required,min=1,max=200"`
	Phone        string `json:"phone" validate:"omitempty,max=30"`
	Role         string `json:"role" validate:"required,oneof=agricultor comprador agente"`
	Country      string `json:"country" validate:"required,len=2"`
	Province     string `json:"province" validate:"omitempty,max=100"`
	Municipality string `json:"municipality" validate:"omitempty,max=100"`
	CompanyName  string `json:"company_name" validate:"omitempty,max=200"`
	AgentCode    string `json:"agent_code" validate:"omitempty,max=20"`
}

// LoginRequest entrada de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse saída com token JWT e o perfil.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse perfil de utilizador (sem password).
type UserResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	Phone         string    `json:"phone,omitempty"`
	Role          string    `json:"role"`
	Country       string    `json:"country"`
	Province      string    `json:"province,omitempty"`
	Municipality  string    `json:"municipality,omitempty"`
	CompanyName   string    `json:"company_name,omitempty"`
	AgentCode     string    `json:"agent_code,omitempty"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UpdateProfileRequest campos editáveis do perfil. Ponteiros distinguem
// "não enviado" de "limpar".
type UpdateProfileRequest struct {
	FullName     *string `json:"full_name" validate:"omitempty,min=1,max=200"`
	Phone        *string `json:"phone" validate:"omitempty,max=30"`
	Province     *string `json:"province" validate:"omitempty,max=100"`
	Municipality *string `json:"municipality" validate:"omitempty,max=100"`
	CompanyName  *string `json:"company_name" validate:"omitempty,max=200"`
	AvatarURL    *string `json:"avatar_url" validate:"omitempty,url"`
}

// VerifyOTPRequest código de 6 dígitos introduzido pelo utilizador.
type VerifyOTPRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// OTPResponse resultado do pedido ou verificação de OTP.
// Verified só é preenchido na verificação.
type OTPResponse struct {
	Sent     bool   `json:"sent,omitempty"`
	Verified bool   `json:"verified,omitempty"`
	Message  string `json:"message"`
}

// PasswordResetRequest pedido de redefinição por email.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordResetConfirm consumo do token com a nova password.
type PasswordResetConfirm struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}
