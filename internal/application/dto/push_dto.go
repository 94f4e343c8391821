package dto

// PushKeys chaves criptográficas da subscrição devolvidas pelo PushManager do browser.
type PushKeys struct {
	P256dh string `json:"p256dh" validate:"required"`
	Auth   string `json:"auth" validate:"required"`
}

// SubscribeRequest corpo JSON da PushSubscription do browser.
type SubscribeRequest struct {
	Endpoint string   `json:"endpoint" validate:"required,url"`
	Keys     PushKeys `json:"keys" validate:"required"`
}

// UnsubscribeRequest remoção de uma subscrição do utilizador autenticado.
type UnsubscribeRequest struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
}

// SendPushRequest envio administrativo de uma notificação a um utilizador.
// Icon, Sound e Data são opcionais e passam tal e qual ao service worker.
type SendPushRequest struct {
	UserID string         `json:"user_id" validate:"required,uuid"`
	Title  string         `json:"title" validate:"required,max=100"`
	Body   string         `json:"body" validate:"required,max=500"`
	Tag    string         `json:"tag" validate:"omitempty,max=50"`
	Icon   string         `json:"icon" validate:"omitempty,url"`
	Sound  string         `json:"sound" validate:"omitempty,max=200"`
	Data   map[string]any `json:"data" validate:"omitempty"`
}

// PushDeliveryResponse resultado agregado de um fan-out.
type PushDeliveryResponse struct {
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Removed int `json:"removed"` // endpoints mortos limpos (404/410)
}

// VAPIDKeyResponse chave pública exposta ao frontend para subscrever.
type VAPIDKeyResponse struct {
	PublicKey string `json:"public_key"`
}
