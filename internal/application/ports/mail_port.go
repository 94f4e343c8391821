package ports

import "context"

// MailSender define o porto de saída para envio de email transacional.
// A política de falha suave do OTP vive no caso de uso, não aqui: o adaptador
// devolve o erro real e quem chama decide engoli-lo.
type MailSender interface {
	SendOTP(ctx context.Context, toEmail, toName, code string) error
	SendPasswordReset(ctx context.Context, toEmail, toName, token string) error
}
