package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrUserNotFound       = errors.New("utilizador não encontrado")
	ErrEmailAlreadyExists = errors.New("o email já está registado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso negado")
	ErrConflict           = errors.New("conflito com o estado atual")
	ErrOrderBelowMinimum  = errors.New("valor da encomenda abaixo do mínimo")
	ErrDeliveryOutOfRange = errors.New("data de entrega fora da janela permitida")
	ErrCancelWindowClosed = errors.New("prazo de cancelamento terminado")
	ErrAgentCodeUnknown   = errors.New("código de agente desconhecido")
	ErrRateLimited        = errors.New("demasiados pedidos, tente mais tarde")
)
