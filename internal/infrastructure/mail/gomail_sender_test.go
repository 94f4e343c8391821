package mail

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orbislink/agrilink-api/pkg/config"
)

// A validade anunciada no corpo do email do OTP segue OTPConfig.ExpiryMinutes,
// não um valor fixo.
func TestOTPBody_ValidadeSegueConfiguracao(t *testing.T) {
	for _, mins := range []int{5, 15, 20} {
		s := NewGomailSender(config.SMTPConfig{}, config.OTPConfig{ExpiryMinutes: mins})
		body := s.otpBody("Maria", "482913")

		assert.Contains(t, body, "Olá Maria")
		assert.Contains(t, body, "482913")
		assert.Contains(t, body, fmt.Sprintf("expira em %d minutos", mins))
	}
}

func TestSend_SemConfiguracaoSMTP(t *testing.T) {
	s := NewGomailSender(config.SMTPConfig{}, config.OTPConfig{ExpiryMinutes: 15})
	err := s.SendOTP(context.Background(), "a@exemplo.ao", "Ana", "123456")
	assert.Error(t, err)
}
