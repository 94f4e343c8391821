package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbislink/agrilink-api/internal/application/auth"
	"github.com/orbislink/agrilink-api/internal/application/dto"
	"github.com/orbislink/agrilink-api/internal/domain"
	"github.com/orbislink/agrilink-api/internal/domain/entity"
	"github.com/orbislink/agrilink-api/internal/domain/repository"
	"github.com/orbislink/agrilink-api/pkg/config"
	"github.com/orbislink/agrilink-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*entity.User),
		byEmail: make(map[string]*entity.User),
	}
}

func (r *fakeUserRepo) add(u *entity.User) {
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.add(u)
	return nil
}
func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.byID[id], nil
}
func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.byEmail[email], nil
}
func (r *fakeUserRepo) GetAgentByCode(_ context.Context, code string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Role == entity.RoleAgente && u.AgentCode == code {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.add(u)
	return nil
}
func (r *fakeUserRepo) SetEmailVerified(_ context.Context, id string) error {
	if u, ok := r.byID[id]; ok {
		u.EmailVerified = true
	}
	return nil
}
func (r *fakeUserRepo) SetPasswordHash(_ context.Context, id, hash string) error {
	if u, ok := r.byID[id]; ok {
		u.PasswordHash = hash
	}
	return nil
}

type fakeOTPRepo struct {
	otps   []*entity.EmailOTP
	resets map[string]*entity.PasswordReset
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{resets: make(map[string]*entity.PasswordReset)}
}

func (r *fakeOTPRepo) CreateOTP(_ context.Context, code *entity.EmailOTP) error {
	r.otps = append(r.otps, code)
	return nil
}
func (r *fakeOTPRepo) LatestByUser(_ context.Context, userID string) (*entity.EmailOTP, error) {
	for i := len(r.otps) - 1; i >= 0; i-- {
		if r.otps[i].UserID == userID {
			return r.otps[i], nil
		}
	}
	return nil, nil
}
func (r *fakeOTPRepo) ConsumeOTP(_ context.Context, id string) error {
	now := time.Now()
	for _, o := range r.otps {
		if o.ID == id {
			o.ConsumedAt = &now
		}
	}
	return nil
}
func (r *fakeOTPRepo) CreateReset(_ context.Context, reset *entity.PasswordReset) error {
	r.resets[reset.Token] = reset
	return nil
}
func (r *fakeOTPRepo) GetResetByToken(_ context.Context, token string) (*entity.PasswordReset, error) {
	return r.resets[token], nil
}
func (r *fakeOTPRepo) ConsumeReset(_ context.Context, id string) error {
	now := time.Now()
	for _, reset := range r.resets {
		if reset.ID == id {
			reset.ConsumedAt = &now
		}
	}
	return nil
}

type fakeSessionRepo struct {
	started []*entity.WorkSession
	active  *entity.WorkSession
	ended   int
}

func (r *fakeSessionRepo) Start(_ context.Context, s *entity.WorkSession) error {
	r.started = append(r.started, s)
	r.active = s
	return nil
}
func (r *fakeSessionRepo) GetActiveByAgent(_ context.Context, _ string) (*entity.WorkSession, error) {
	return r.active, nil
}
func (r *fakeSessionRepo) End(_ context.Context, _ string, _ time.Time) error {
	r.ended++
	r.active = nil
	return nil
}
func (r *fakeSessionRepo) Stats(_ context.Context, _ string) (*repository.WorkSessionStats, error) {
	return nil, nil
}

type fakeMail struct {
	otpCodes    []string
	resetTokens []string
	failWith    error
}

func (m *fakeMail) SendOTP(_ context.Context, _, _, code string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.otpCodes = append(m.otpCodes, code)
	return nil
}
func (m *fakeMail) SendPasswordReset(_ context.Context, _, _, token string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.resetTokens = append(m.resetTokens, token)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Cenário base
// ──────────────────────────────────────────────────────────────────────────────

type authFixture struct {
	uc       *auth.AuthUseCase
	users    *fakeUserRepo
	otps     *fakeOTPRepo
	sessions *fakeSessionRepo
	mail     *fakeMail
}

func newAuthFixture() *authFixture {
	users := newFakeUserRepo()
	otps := newFakeOTPRepo()
	sessions := &fakeSessionRepo{}
	mail := &fakeMail{}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	uc := auth.NewAuthUseCase(users, otps, sessions, mail,
		config.JWTConfig{Secret: "test-secret", Expiration: 60, Issuer: "agrilink-test"},
		config.OTPConfig{ExpiryMinutes: 15, ResendSeconds: 60},
		log,
	)
	return &authFixture{uc: uc, users: users, otps: otps, sessions: sessions, mail: mail}
}

func registerRequest(role string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:    "teste@exemplo.ao",
		Password: "password-segura",
		FullName: "Utilizador Teste",
		Role:     role,
		Country:  "AO",
		Province: "Luanda",
	}
}

func (f *authFixture) seedUser(t *testing.T, role, email, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		ID: "user-" + role, Email: email, PasswordHash: string(hash),
		FullName: "Seed", Role: role, Status: "active",
	}
	f.users.add(u)
	return u
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_Sucesso(t *testing.T) {
	f := newAuthFixture()

	out, err := f.uc.Register(context.Background(), registerRequest(entity.RoleComprador))
	require.NoError(t, err)
	assert.Equal(t, entity.RoleComprador, out.Role)
	assert.Equal(t, "active", out.Status)
	assert.False(t, out.EmailVerified, "email só fica verificado após OTP")
}

// Admin não é auto-serviço: o registo só aceita os papéis do marketplace.
// Um papel fora da lista nunca pode chegar a um JWT com privilégios.
func TestRegister_PapelForaDaLista(t *testing.T) {
	f := newAuthFixture()

	for _, role := range []string{entity.RoleAdmin, "superuser", "Agricultor", ""} {
		in := registerRequest(role)
		_, err := f.uc.Register(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "papel %q deve ser rejeitado", role)
	}
	assert.Empty(t, f.users.byID, "nenhum utilizador deve ser persistido")
}

func TestRegister_EmailDuplicado(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, entity.RoleComprador, "teste@exemplo.ao", "x")

	_, err := f.uc.Register(context.Background(), registerRequest(entity.RoleAgricultor))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_AgenteSemCodigo(t *testing.T) {
	f := newAuthFixture()

	in := registerRequest(entity.RoleAgente)
	in.AgentCode = ""

	_, err := f.uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_AgenteComCodigoLivre(t *testing.T) {
	f := newAuthFixture()

	in := registerRequest(entity.RoleAgente)
	in.AgentCode = "AG-001"

	out, err := f.uc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "AG-001", out.AgentCode)
}

func TestRegister_AgenteComCodigoOcupado(t *testing.T) {
	f := newAuthFixture()
	holder := f.seedUser(t, entity.RoleAgente, "agente@exemplo.ao", "x")
	holder.AgentCode = "AG-001"

	in := registerRequest(entity.RoleAgente)
	in.AgentCode = "AG-001"

	_, err := f.uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegister_IndicacaoComCodigoDesconhecido(t *testing.T) {
	f := newAuthFixture()

	in := registerRequest(entity.RoleAgricultor)
	in.AgentCode = "AG-999"

	_, err := f.uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrAgentCodeUnknown)
}

func TestRegister_IndicacaoComCodigoValido(t *testing.T) {
	f := newAuthFixture()
	holder := f.seedUser(t, entity.RoleAgente, "agente@exemplo.ao", "x")
	holder.AgentCode = "AG-001"

	in := registerRequest(entity.RoleAgricultor)
	in.AgentCode = "AG-001"

	out, err := f.uc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, out.AgentCode, "o código de indicação não se torna o código próprio do agricultor")
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Sucesso(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, entity.RoleComprador, "c@exemplo.ao", "segredo123")

	out, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "c@exemplo.ao", Password: "segredo123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleComprador, out.User.Role)
	assert.Empty(t, f.sessions.started, "só agentes abrem sessão de trabalho no login")
}

func TestLogin_PasswordErrada(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, entity.RoleComprador, "c@exemplo.ao", "segredo123")

	_, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "c@exemplo.ao", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmailDesconhecido(t *testing.T) {
	f := newAuthFixture()

	_, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "nao@existe.ao", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_AgenteAbreSessaoDeTrabalho(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, entity.RoleAgente, "a@exemplo.ao", "segredo123")

	_, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "a@exemplo.ao", Password: "segredo123"})
	require.NoError(t, err)
	assert.Len(t, f.sessions.started, 1)

	// Segundo login com sessão ativa não abre outra.
	_, err = f.uc.Login(context.Background(), dto.LoginRequest{Email: "a@exemplo.ao", Password: "segredo123"})
	require.NoError(t, err)
	assert.Len(t, f.sessions.started, 1, "sessão ativa existente é reutilizada")
}

func TestLogout_AgenteFechaSessao(t *testing.T) {
	f := newAuthFixture()
	u := f.seedUser(t, entity.RoleAgente, "a@exemplo.ao", "segredo123")

	require.NoError(t, f.uc.Logout(context.Background(), u.ID, entity.RoleAgente))
	assert.Equal(t, 1, f.sessions.ended)

	require.NoError(t, f.uc.Logout(context.Background(), "outro", entity.RoleComprador))
	assert.Equal(t, 1, f.sessions.ended, "logout de não-agente é stateless")
}

// ──────────────────────────────────────────────────────────────────────────────
// OTP
// ──────────────────────────────────────────────────────────────────────────────

func TestRequestOTP_GeraEnviaEGuarda(t *testing.T) {
	f := newAuthFixture()
	u := f.seedUser(t, entity.RoleComprador, "c@exemplo.ao", "x")

	out, err := f.uc.RequestOTP(context.Background(), u.ID)
	require.NoError(t, err)
	assert.True(t, out.Sent)
	require.Len(t, f.mail.otpCodes, 1)
	assert.Len(t, f.mail.otpCodes[0], 6, "código de 6 dígitos")
	require.Len(t, f.otps.otps, 1)
	assert.Equal(t, f.mail.otpCodes[0], f.otps.otps[0].Code)
}

// Contrato de falha suave: SMTP em baixo não transforma o pedido em erro;
// o código fica persistido e o utilizador pode pedir reenvio.
func TestRequestOTP_FalhaDeEmailNaoEhErro(t *testing.T) {
	f := newAuthFixture()
	u := f.seedUser(t, entity.RoleComprador, "c@exemplo.ao", "x")
	f.mail.failWith = errors.New("smtp: connection refused")

	out, err := f.uc.RequestOTP(context.Background(), u.ID)
	require.NoError(t, err)
	assert.True(t, out.Sent)
	assert.Len(t, f.otps.otps, 1, "o código fica válido mesmo sem email entregue")
}

func TestRequestOTP_ReenvioImediatoEhLimitado(t *testing.T) {
	f := newAuthFixture()
	u := f.seedUser(t, entity.RoleComprador, "c@exemplo.ao", "x")

	_, err := f.uc.RequestOTP(context.Background(), u.ID)
	require.NoError(t, err)

	_, err = f.uc.RequestOTP(context.Background(), u.ID)
	assert.ErrorIs(t, err, domain.ErrRateLimited, "um reenvio por minuto por utilizador")
}

// Pedir OTP para um utilizador inexistente não consome o limitador: o pedido
// legítimo seguinte do mesmo identificador ainda tem direito ao envio.
func TestRequestOTP_UtilizadorInexistenteNaoConsomeLimitador(t *testing.T) {
	f := newAuthFixture()

	_, err := f.uc.RequestOTP(context.Background(), "user-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	u := &entity.User{ID: "user-fantasma", Email: "c@exemplo.ao", FullName: "Tardio", Role: entity.RoleComprador, Status: "active"}
	f.users.add(u)

	out, err := f.uc.RequestOTP(context.Background(), u.ID)
	require.NoError(t, err, "o primeiro pedido válido não pode chegar já limitado")
	assert.True(t, out.Sent)
}

func TestVerifyOTP_CodigoCorreto(t *testing.T) {
	f := newAuthFixture()
	u := f.seedUser(t, entity.RoleComprador, "c@exemplo.ao", "x")
	_, err := f.uc.RequestOTP(context.Background(), u.ID)
	require.NoError(t, err)

	out, err := f.uc.VerifyOTP(context.Background(), u.ID, f.mail.otpCodes[0])
	require.NoError(t, err)
	assert.True(t, out.Verified)
	assert.True(t, f.users.byID[u.ID].EmailVerified)

	// Uso único: o mesmo código já não verifica.
	out, err = f.uc.VerifyOTP(context.Background(), u.ID, f.mail.otpCodes[0])
	require.NoError(t, err)
	assert.False(t, out.Verified)
}

func TestVerifyOTP_CodigoErrado(t *testing.T) {
	f := newAuthFixture()
	u := f.seedUser(t, entity.RoleComprador, "c@exemplo.ao", "x")
	_, err := f.uc.RequestOTP(context.Background(), u.ID)
	require.NoError(t, err)

	out, err := f.uc.VerifyOTP(context.Background(), u.ID, "000000")
	require.NoError(t, err, "código errado não é erro de infraestrutura")
	assert.False(t, out.Verified)
	assert.False(t, f.users.byID[u.ID].EmailVerified)
}

func TestVerifyOTP_CodigoExpirado(t *testing.T) {
	f := newAuthFixture()
	u := f.seedUser(t, entity.RoleComprador, "c@exemplo.ao", "x")

	f.otps.otps = append(f.otps.otps, &entity.EmailOTP{
		ID: "otp-1", UserID: u.ID, Code: "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-16 * time.Minute),
	})

	out, err := f.uc.VerifyOTP(context.Background(), u.ID, "123456")
	require.NoError(t, err)
	assert.False(t, out.Verified)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reset de password
// ──────────────────────────────────────────────────────────────────────────────

func TestPasswordReset_CicloCompleto(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, entity.RoleComprador, "c@exemplo.ao", "antiga123")

	require.NoError(t, f.uc.RequestPasswordReset(context.Background(), "c@exemplo.ao"))
	require.Len(t, f.mail.resetTokens, 1)

	err := f.uc.ConfirmPasswordReset(context.Background(), dto.PasswordResetConfirm{
		Token: f.mail.resetTokens[0], NewPassword: "nova-password",
	})
	require.NoError(t, err)

	// A nova password passa a valer no login.
	_, err = f.uc.Login(context.Background(), dto.LoginRequest{Email: "c@exemplo.ao", Password: "nova-password"})
	assert.NoError(t, err)
	_, err = f.uc.Login(context.Background(), dto.LoginRequest{Email: "c@exemplo.ao", Password: "antiga123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Token de uso único.
	err = f.uc.ConfirmPasswordReset(context.Background(), dto.PasswordResetConfirm{
		Token: f.mail.resetTokens[0], NewPassword: "outra-password",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Para não revelar que emails existem, um email desconhecido devolve sucesso silencioso.
func TestPasswordReset_EmailDesconhecidoNaoRevela(t *testing.T) {
	f := newAuthFixture()

	require.NoError(t, f.uc.RequestPasswordReset(context.Background(), "nao@existe.ao"))
	assert.Empty(t, f.mail.resetTokens)
}

func TestPasswordReset_TokenDesconhecido(t *testing.T) {
	f := newAuthFixture()

	err := f.uc.ConfirmPasswordReset(context.Background(), dto.PasswordResetConfirm{
		Token: "token-invalido", NewPassword: "nova-password",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
