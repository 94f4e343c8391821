package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/orbislink/agrilink-api/internal/application/dto"
	"github.com/orbislink/agrilink-api/internal/application/ports"
	"github.com/orbislink/agrilink-api/internal/domain"
	"github.com/orbislink/agrilink-api/internal/domain/entity"
	"github.com/orbislink/agrilink-api/internal/domain/otp"
	"github.com/orbislink/agrilink-api/internal/domain/repository"
	"github.com/orbislink/agrilink-api/pkg/config"
	"github.com/orbislink/agrilink-api/pkg/jwt"
	"github.com/orbislink/agrilink-api/pkg/logger"
)

const resetTTL = 30 * time.Minute

// AuthUseCase casos de uso de autenticação: registo, login, verificação de
// email por OTP e redefinição de password.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	otpRepo     repository.OTPRepository
	sessionRepo repository.WorkSessionRepository
	mail        ports.MailSender
	jwtCfg      config.JWTConfig
	otpCfg      config.OTPConfig
	log         *logger.Logger

	// Limitadores de reenvio de OTP por utilizador (1 envio por ResendSeconds).
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	otpRepo repository.OTPRepository,
	sessionRepo repository.WorkSessionRepository,
	mail ports.MailSender,
	jwtCfg config.JWTConfig,
	otpCfg config.OTPConfig,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		otpRepo:     otpRepo,
		sessionRepo: sessionRepo,
		mail:        mail,
		jwtCfg:      jwtCfg,
		otpCfg:      otpCfg,
		log:         log,
		limiters:    make(map[string]*rate.Limiter),
	}
}

// Register cria um utilizador: hash bcrypt da password e persistência.
// Devolve ErrEmailAlreadyExists se o email já existir. Um AgentCode fornecido
// por agricultor/comprador é um código de indicação e tem de resolver para um
// agente existente; um agente regista-se com o seu próprio código, que tem de
// estar livre.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	// Apenas papéis de auto-registo; admin é atribuído fora do registo.
	switch in.Role {
	case entity.RoleAgricultor, entity.RoleComprador, entity.RoleAgente:
	default:
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	agentCode := ""
	switch in.Role {
	case entity.RoleAgente:
		if in.AgentCode == "" {
			return nil, domain.ErrInvalidInput
		}
		holder, err := uc.userRepo.GetAgentByCode(ctx, in.AgentCode)
		if err != nil {
			return nil, err
		}
		if holder != nil {
			return nil, domain.ErrConflict // código já atribuído a outro agente
		}
		agentCode = in.AgentCode
	default:
		if in.AgentCode != "" {
			agent, err := uc.userRepo.GetAgentByCode(ctx, in.AgentCode)
			if err != nil {
				return nil, err
			}
			if agent == nil {
				return nil, domain.ErrAgentCodeUnknown
			}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Phone:        in.Phone,
		Role:         in.Role,
		Country:      in.Country,
		Province:     in.Province,
		Municipality: in.Municipality,
		CompanyName:  in.CompanyName,
		AgentCode:    agentCode,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica email/password, gera o JWT e devolve token + perfil.
// O login de um agente abre automaticamente uma sessão de trabalho se não
// houver uma ativa; falhas aqui não bloqueiam o login.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}

	if user.Role == entity.RoleAgente {
		uc.startWorkSession(ctx, user.ID)
	}

	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// Logout termina a sessão de trabalho ativa de um agente. Para os restantes
// papéis o logout é stateless (o cliente descarta o token).
func (uc *AuthUseCase) Logout(ctx context.Context, userID, role string) error {
	if role != entity.RoleAgente {
		return nil
	}
	return uc.sessionRepo.End(ctx, userID, time.Now())
}

// RequestOTP gera um código de 6 dígitos, persiste e envia por email.
// Contrato de falha suave: se o SMTP falhar o pedido ainda devolve sucesso
// (o utilizador pode pedir reenvio); só a falha de geração/persistência é erro.
// Reenvios são limitados a um por utilizador por ResendSeconds.
func (uc *AuthUseCase) RequestOTP(ctx context.Context, userID string) (*dto.OTPResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	// O limitador só é consumido por pedidos de utilizadores existentes.
	if !uc.limiterFor(userID).Allow() {
		return nil, domain.ErrRateLimited
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	record := &entity.EmailOTP{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: now.Add(time.Duration(uc.otpCfg.ExpiryMinutes) * time.Minute),
		CreatedAt: now,
	}
	if err := uc.otpRepo.CreateOTP(ctx, record); err != nil {
		return nil, err
	}

	if err := uc.mail.SendOTP(ctx, user.Email, user.FullName, code); err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("envio de OTP falhou; código continua válido")
		return &dto.OTPResponse{Sent: true, Message: "Código gerado; o envio do email pode demorar. Tente reenviar se não chegar."}, nil
	}
	return &dto.OTPResponse{Sent: true, Message: "Código de verificação enviado."}, nil
}

// VerifyOTP compara o código submetido com o mais recente do utilizador.
// Código expirado ou errado devolve Verified=false, nunca erro; só problemas
// de infraestrutura são erro.
func (uc *AuthUseCase) VerifyOTP(ctx context.Context, userID, code string) (*dto.OTPResponse, error) {
	latest, err := uc.otpRepo.LatestByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if latest == nil || !latest.Usable(now) || !otp.Matches(latest.Code, code) {
		return &dto.OTPResponse{Verified: false, Message: "Código inválido ou expirado."}, nil
	}
	if err := uc.otpRepo.ConsumeOTP(ctx, latest.ID); err != nil {
		return nil, err
	}
	if err := uc.userRepo.SetEmailVerified(ctx, userID); err != nil {
		return nil, err
	}
	return &dto.OTPResponse{Verified: true, Message: "Email verificado."}, nil
}

// RequestPasswordReset gera um token de uso único e envia por email.
// Para não revelar que emails existem, um email desconhecido devolve sucesso.
func (uc *AuthUseCase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	now := time.Now()
	reset := &entity.PasswordReset{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     uuid.New().String(),
		ExpiresAt: now.Add(resetTTL),
		CreatedAt: now,
	}
	if err := uc.otpRepo.CreateReset(ctx, reset); err != nil {
		return err
	}
	if err := uc.mail.SendPasswordReset(ctx, user.Email, user.FullName, reset.Token); err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("envio de email de reset falhou")
	}
	return nil
}

// ConfirmPasswordReset consome o token e grava a nova password.
func (uc *AuthUseCase) ConfirmPasswordReset(ctx context.Context, in dto.PasswordResetConfirm) error {
	reset, err := uc.otpRepo.GetResetByToken(ctx, in.Token)
	if err != nil {
		return err
	}
	if reset == nil || !reset.Usable(time.Now()) {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := uc.userRepo.SetPasswordHash(ctx, reset.UserID, string(hash)); err != nil {
		return err
	}
	return uc.otpRepo.ConsumeReset(ctx, reset.ID)
}

func (uc *AuthUseCase) startWorkSession(ctx context.Context, agentID string) {
	active, err := uc.sessionRepo.GetActiveByAgent(ctx, agentID)
	if err != nil {
		uc.log.Warn().Err(err).Str("agent_id", agentID).Msg("verificar sessão ativa falhou")
		return
	}
	if active != nil {
		return
	}
	session := &entity.WorkSession{
		ID:        uuid.New().String(),
		AgentID:   agentID,
		StartedAt: time.Now(),
		Active:    true,
	}
	if err := uc.sessionRepo.Start(ctx, session); err != nil {
		uc.log.Warn().Err(err).Str("agent_id", agentID).Msg("iniciar sessão de trabalho falhou")
	}
}

func (uc *AuthUseCase) limiterFor(userID string) *rate.Limiter {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	lim, ok := uc.limiters[userID]
	if !ok {
		interval := time.Duration(uc.otpCfg.ResendSeconds) * time.Second
		lim = rate.NewLimiter(rate.Every(interval), 1)
		uc.limiters[userID] = lim
	}
	return lim
}

// ToUserResponse converte a entidade no DTO de resposta (sem password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		FullName:      u.FullName,
		Phone:         u.Phone,
		Role:          u.Role,
		Country:       u.Country,
		Province:      u.Province,
		Municipality:  u.Municipality,
		CompanyName:   u.CompanyName,
		AgentCode:     u.AgentCode,
		AvatarURL:     u.AvatarURL,
		EmailVerified: u.EmailVerified,
		Status:        u.Status,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
