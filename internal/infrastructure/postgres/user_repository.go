package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/orbislink/agrilink-api/internal/domain"
	"github.com/orbislink/agrilink-api/internal/domain/entity"
	"github.com/orbislink/agrilink-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, password_hash, full_name, phone, role, country, province, municipality,
	company_name, agent_code, avatar_url, email_verified, status, created_at, updated_at`

// UserRepo implementação do porto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository constrói o adaptador de persistência de utilizadores. Passar pool ou tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste um novo utilizador.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FullName, user.Phone, user.Role,
		user.Country, user.Province, user.Municipality, user.CompanyName, user.AgentCode,
		user.AvatarURL, user.EmailVerified, user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtém um utilizador por ID (nil se não existir).
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtém um utilizador por email (nil se não existir).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 LIMIT 1`, email)
}

// GetAgentByCode resolve um agente pelo código público.
func (r *UserRepo) GetAgentByCode(ctx context.Context, code string) (*entity.User, error) {
	return r.scanOne(ctx,
		`SELECT `+userColumns+` FROM users WHERE agent_code = $1 AND role = $2 LIMIT 1`,
		code, entity.RoleAgente)
}

func (r *UserRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone, &u.Role,
		&u.Country, &u.Province, &u.Municipality, &u.CompanyName, &u.AgentCode,
		&u.AvatarURL, &u.EmailVerified, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// Update atualiza os campos de perfil de um utilizador.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET full_name = $2, phone = $3, country = $4, province = $5,
			municipality = $6, company_name = $7, avatar_url = $8, status = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.FullName, user.Phone, user.Country, user.Province,
		user.Municipality, user.CompanyName, user.AvatarURL, user.Status, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// SetEmailVerified marca o email do utilizador como verificado.
func (r *UserRepo) SetEmailVerified(ctx context.Context, userID string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE users SET email_verified = TRUE, updated_at = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("set email verified: %w", err)
	}
	return nil
}

// SetPasswordHash substitui o hash da password (fluxo de reset).
func (r *UserRepo) SetPasswordHash(ctx context.Context, userID, hash string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`, userID, hash)
	if err != nil {
		return fmt.Errorf("set password hash: %w", err)
	}
	return nil
}
