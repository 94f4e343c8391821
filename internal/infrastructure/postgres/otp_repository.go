package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/orbislink/agrilink-api/internal/domain/entity"
	"github.com/orbislink/agrilink-api/internal/domain/repository"
)

var _ repository.OTPRepository = (*OTPRepo)(nil)

// OTPRepo implementação do porto OTPRepository sobre PostgreSQL.
type OTPRepo struct {
	q Querier
}

// NewOTPRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewOTPRepository(q Querier) *OTPRepo {
	return &OTPRepo{q: q}
}

// CreateOTP persiste um código de verificação.
func (r *OTPRepo) CreateOTP(ctx context.Context, code *entity.EmailOTP) error {
	query := `
		INSERT INTO email_otps (id, user_id, code, expires_at, consumed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		code.ID, code.UserID, code.Code, code.ExpiresAt, code.ConsumedAt, code.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert email otp: %w", err)
	}
	return nil
}

// LatestByUser devolve o código mais recente do utilizador (nil se nenhum).
func (r *OTPRepo) LatestByUser(ctx context.Context, userID string) (*entity.EmailOTP, error) {
	query := `SELECT id, user_id, code, expires_at, consumed_at, created_at
		FROM email_otps WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`
	var o entity.EmailOTP
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&o.ID, &o.UserID, &o.Code, &o.ExpiresAt, &o.ConsumedAt, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest otp: %w", err)
	}
	return &o, nil
}

// ConsumeOTP marca o código como usado.
func (r *OTPRepo) ConsumeOTP(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `UPDATE email_otps SET consumed_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("consume otp: %w", err)
	}
	return nil
}

// CreateReset persiste um token de reset de password.
func (r *OTPRepo) CreateReset(ctx context.Context, reset *entity.PasswordReset) error {
	query := `
		INSERT INTO password_resets (id, user_id, token, expires_at, consumed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		reset.ID, reset.UserID, reset.Token, reset.ExpiresAt, reset.ConsumedAt, reset.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert password reset: %w", err)
	}
	return nil
}

// GetResetByToken devolve o token de reset (nil se não existir).
func (r *OTPRepo) GetResetByToken(ctx context.Context, token string) (*entity.PasswordReset, error) {
	query := `SELECT id, user_id, token, expires_at, consumed_at, created_at
		FROM password_resets WHERE token = $1`
	var p entity.PasswordReset
	err := r.q.QueryRow(ctx, query, token).Scan(
		&p.ID, &p.UserID, &p.Token, &p.ExpiresAt, &p.ConsumedAt, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get password reset: %w", err)
	}
	return &p, nil
}

// ConsumeReset marca o token como usado.
func (r *OTPRepo) ConsumeReset(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `UPDATE password_resets SET consumed_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("consume password reset: %w", err)
	}
	return nil
}
