// Package otp gera e valida códigos de verificação de email de 6 dígitos.
package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"
)

// Validade standard de um código (15 minutos após a geração).
const DefaultTTL = 15 * time.Minute

// CodeLength número de dígitos do código.
const CodeLength = 6

var codeSpace = big.NewInt(1000000)

// GenerateCode devolve um código numérico de 6 dígitos com zeros à esquerda,
// gerado com crypto/rand.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("otp: gerar código: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Matches compara dois códigos em tempo constante.
func Matches(expected, submitted string) bool {
	if len(expected) != CodeLength || len(submitted) != CodeLength {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(submitted)) == 1
}

// Expired indica se um código gerado em createdAt já expirou em now.
func Expired(createdAt, now time.Time, ttl time.Duration) bool {
	return now.After(createdAt.Add(ttl))
}
