package mail

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/orbislink/agrilink-api/internal/application/ports"
	"github.com/orbislink/agrilink-api/pkg/config"
)

// Verificação em tempo de compilação de que GomailSender implementa MailSender.
var _ ports.MailSender = (*GomailSender)(nil)

// GomailSender adaptador SMTP usando gomail. Porta 465 usa TLS implícito,
// 587/25 STARTTLS; o gomail decide pelo número da porta.
type GomailSender struct {
	cfg           config.SMTPConfig
	otpExpiryMins int
}

// NewGomailSender constrói o adaptador. A validade anunciada no email do OTP
// segue a configuração para nunca divergir da expiração real.
func NewGomailSender(cfg config.SMTPConfig, otpCfg config.OTPConfig) *GomailSender {
	return &GomailSender{cfg: cfg, otpExpiryMins: otpCfg.ExpiryMinutes}
}

// SendOTP envia o código de verificação de 6 dígitos.
func (s *GomailSender) SendOTP(ctx context.Context, toEmail, toName, code string) error {
	subject := "AgriLink — Código de verificação"
	return s.send(ctx, toEmail, toName, subject, s.otpBody(toName, code))
}

func (s *GomailSender) otpBody(toName, code string) string {
	return fmt.Sprintf(`<p>Olá %s,</p>
<p>O seu código de verificação AgriLink é:</p>
<p style="font-size:24px;font-weight:bold;letter-spacing:4px">%s</p>
<p>O código expira em %d minutos. Se não pediu este código, ignore este email.</p>`,
		toName, code, s.otpExpiryMins)
}

// SendPasswordReset envia o link de redefinição de password.
func (s *GomailSender) SendPasswordReset(ctx context.Context, toEmail, toName, token string) error {
	subject := "AgriLink — Redefinição de password"
	body := fmt.Sprintf(`<p>Olá %s,</p>
<p>Recebemos um pedido de redefinição de password. Use o código abaixo na aplicação:</p>
<p style="font-size:18px;font-weight:bold">%s</p>
<p>O código expira em 30 minutos.</p>`, toName, token)
	return s.send(ctx, toEmail, toName, subject, body)
}

func (s *GomailSender) send(ctx context.Context, toEmail, toName, subject, htmlBody string) error {
	if s.cfg.Host == "" || s.cfg.Username == "" {
		return fmt.Errorf("mail: SMTP_HOST/SMTP_USERNAME não configurados")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.From, s.cfg.FromName)
	m.SetAddressHeader("To", toEmail, toName)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("mail: enviar para %s: %w", toEmail, err)
	}
	return nil
}
