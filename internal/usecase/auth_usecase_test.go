package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"bibigin/internal/config"
	"bibigin/internal/domain/model"
	"bibigin/internal/usecase"
	"bibigin/internal/validator"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memRefreshTokens struct {
	mu     sync.Mutex
	tokens map[string]*model.RefreshToken
}

func newMemRefreshTokens() *memRefreshTokens {
	return &memRefreshTokens{tokens: map[string]*model.RefreshToken{}}
}

func (m *memRefreshTokens) Create(ctx context.Context, token *model.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *token
	m.tokens[token.ID] = &cp
	return nil
}

func (m *memRefreshTokens) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tokens {
		if t.TokenHash == tokenHash {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memRefreshTokens) MarkUsed(ctx context.Context, tokenID string, usedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[tokenID]
	if !ok || t.UsedAt != nil {
		return nil
	}
	t.UsedAt = &usedAt
	return nil
}

func (m *memRefreshTokens) DeleteByID(ctx context.Context, tokenID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, tokenID)
	return nil
}

func (m *memRefreshTokens) DeleteAllByUserID(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, t := range m.tokens {
		if t.UserID == userID {
			delete(m.tokens, id)
		}
	}
	return nil
}

func (m *memRefreshTokens) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tokens)
}

func newAuthFixture() (*usecase.AuthUsecase, *memState, *memRefreshTokens) {
	st := newMemState()
	rt := newMemRefreshTokens()
	cfg := config.Config{JWTSecret: "test-secret"}
	uc := usecase.NewAuthUsecase(cfg, &memUsers{st: st}, rt, validator.NewAuthValidator(), &seqIDGen{}, newStepClock())
	return uc, st, rt
}

func registerReq() usecase.AuthRegisterRequest {
	return usecase.AuthRegisterRequest{
		Email:     "mario@example.com",
		Password:  "password123",
		FirstName: "Mario",
		LastName:  "Rossi",
	}
}

func TestAuthRegister_Success(t *testing.T) {
	uc, st, _ := newAuthFixture()

	out, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	assert.Equal(t, "mario@example.com", out.User.Email)
	assert.Equal(t, "USER", out.User.Role)
	assert.True(t, out.User.IsActive)

	stored := st.users[out.User.ID]
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
}

func TestAuthRegister_DuplicateEmail(t *testing.T) {
	uc, _, _ := newAuthFixture()

	_, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), registerReq())
	assert.ErrorIs(t, err, usecase.ErrConflict)
}

func TestAuthRegister_ShortPassword(t *testing.T) {
	uc, _, _ := newAuthFixture()

	req := registerReq()
	req.Password = "short"

	_, err := uc.Register(context.Background(), req)
	assert.ErrorIs(t, err, validator.ErrInvalidInput)
}

func TestAuthRegister_NameTooShort(t *testing.T) {
	uc, _, _ := newAuthFixture()

	req := registerReq()
	req.FirstName = "M"

	_, err := uc.Register(context.Background(), req)
	assert.ErrorIs(t, err, validator.ErrInvalidInput)
}

func TestAuthLogin_Success(t *testing.T) {
	uc, _, rt := newAuthFixture()
	_, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	result, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "mario@example.com",
		Password: "password123",
	}, "test-agent")
	require.NoError(t, err)

	//JWTが自分のシークレットで検証できる
	token, err := jwt.Parse(result.Body.Token.AccessToken, func(tk *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, result.Body.User.ID, claims["sub"])
	assert.Equal(t, "USER", claims["role"])

	// refreshは平文ではなくhashで保存されている
	require.Equal(t, 1, rt.count())
	stored, err := rt.FindByTokenHash(context.Background(), result.RefreshTokenPlain)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	uc, _, _ := newAuthFixture()
	_, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "mario@example.com",
		Password: "wrong-password",
	}, "test-agent")
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}

func TestAuthLogin_InactiveUser(t *testing.T) {
	uc, st, _ := newAuthFixture()
	out, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	u := st.users[out.User.ID]
	u.IsActive = false
	st.users[out.User.ID] = u

	_, err = uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "mario@example.com",
		Password: "password123",
	}, "test-agent")
	assert.ErrorIs(t, err, usecase.ErrForbidden)
}

func TestAuthRefresh_RotatesToken(t *testing.T) {
	uc, _, _ := newAuthFixture()
	_, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	login, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "mario@example.com",
		Password: "password123",
	}, "test-agent")
	require.NoError(t, err)

	refreshed, err := uc.Refresh(context.Background(), login.RefreshTokenPlain, "test-agent")
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Body.AccessToken)
	assert.NotEqual(t, login.RefreshTokenPlain, refreshed.RefreshTokenPlain)

	// 新しいtokenでもう一度refreshできる
	_, err = uc.Refresh(context.Background(), refreshed.RefreshTokenPlain, "test-agent")
	assert.NoError(t, err)
}

func TestAuthRefresh_ReplayRevokesAll(t *testing.T) {
	uc, _, rt := newAuthFixture()
	_, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	login, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "mario@example.com",
		Password: "password123",
	}, "test-agent")
	require.NoError(t, err)

	_, err = uc.Refresh(context.Background(), login.RefreshTokenPlain, "test-agent")
	require.NoError(t, err)

	// 使用済みのtokenをもう一度使う → replay
	_, err = uc.Refresh(context.Background(), login.RefreshTokenPlain, "test-agent")
	assert.ErrorIs(t, err, usecase.ErrSecurityIncident)

	// 全tokenが失効している
	assert.Equal(t, 0, rt.count())
}

func TestAuthRefresh_UserAgentMismatch(t *testing.T) {
	uc, _, rt := newAuthFixture()
	_, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	login, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "mario@example.com",
		Password: "password123",
	}, "test-agent")
	require.NoError(t, err)

	_, err = uc.Refresh(context.Background(), login.RefreshTokenPlain, "other-agent")
	assert.ErrorIs(t, err, usecase.ErrSecurityIncident)
	assert.Equal(t, 0, rt.count())
}

func TestAuthLogout_RevokesRefresh(t *testing.T) {
	uc, _, rt := newAuthFixture()
	_, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	login, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "mario@example.com",
		Password: "password123",
	}, "test-agent")
	require.NoError(t, err)

	_, err = uc.Logout(context.Background(), login.RefreshTokenPlain)
	require.NoError(t, err)
	assert.Equal(t, 0, rt.count())

	// 失効後のrefreshは通らない
	_, err = uc.Refresh(context.Background(), login.RefreshTokenPlain, "test-agent")
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}
