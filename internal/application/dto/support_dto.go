package dto

// SupportMessageRequest formulário público de contacto.
type SupportMessageRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

// SupportMessageResponse confirmação da receção.
type SupportMessageResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
