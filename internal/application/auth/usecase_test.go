package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cartem-panel/internal/application/dto"
	"github.com/jhoicas/cartem-panel/internal/domain"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
	"github.com/jhoicas/cartem-panel/pkg/jwt"
)

// ── Fakes ────────────────────────────────────────────────────────────────────

type fakeGateway struct {
	loginErr    error
	verifyErr   error
	verifyOut   *entity.Session
	forgotErr   error
	changeErr   error
	verifyCalls int
	changeCalls int
	lastCode    string
}

func (g *fakeGateway) Login(_ context.Context, _, _ string) error { return g.loginErr }

func (g *fakeGateway) VerifyCode(_ context.Context, _, code string) (*entity.Session, error) {
	g.verifyCalls++
	g.lastCode = code
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	s := *g.verifyOut
	return &s, nil
}

func (g *fakeGateway) ForgotPassword(_ context.Context, _ string) error { return g.forgotErr }

func (g *fakeGateway) ChangePasswordAdmin(_ context.Context, _, _, _ string) error {
	g.changeCalls++
	return g.changeErr
}

type fakeCooldown struct {
	mu sync.Mutex
	m  map[string]time.Time
}

func newFakeCooldown() *fakeCooldown { return &fakeCooldown{m: map[string]time.Time{}} }

func (f *fakeCooldown) Start(_ context.Context, key string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m[key] = at
	return nil
}

func (f *fakeCooldown) StartedAt(_ context.Context, key string) (time.Time, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	at, ok := f.m[key]
	return at, ok, nil
}

func newUC(gw *fakeGateway, cd *fakeCooldown, secret string, now time.Time) *AuthUseCase {
	uc := NewAuthUseCase(gw, cd, Config{ResendCooldown: 30 * time.Second, JWTSecret: secret}, nil)
	uc.now = func() time.Time { return now }
	return uc
}

var t0 = time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_Credenciales401_ErrorSinNavegar(t *testing.T) {
	gw := &fakeGateway{loginErr: fmt.Errorf("login: %w", &domain.RemoteError{Status: 401})}
	uc := newUC(gw, newFakeCooldown(), "", t0)

	res := uc.Login(context.Background(), "admin", "wrong")

	assert.Equal(t, MsgInvalidCredentials, res.Error)
	assert.Empty(t, res.Next)
}

func TestLogin_ErrorDeRed_MensajeGenerico(t *testing.T) {
	gw := &fakeGateway{loginErr: fmt.Errorf("login: %w", domain.ErrNetwork)}
	uc := newUC(gw, newFakeCooldown(), "", t0)

	res := uc.Login(context.Background(), "admin", "secret")
	assert.Equal(t, MsgGeneric, res.Error)
}

func TestLogin_Exito_RedirigeConUsuarioEIniciaTemporizador(t *testing.T) {
	cd := newFakeCooldown()
	uc := newUC(&fakeGateway{}, cd, "", t0)

	res := uc.Login(context.Background(), "ana@cartem.mx", "secret")

	assert.Empty(t, res.Error)
	assert.Equal(t, "/login/two-factor?username=ana%40cartem.mx", res.Next)
	at, ok, _ := cd.StartedAt(context.Background(), "ana@cartem.mx")
	assert.True(t, ok)
	assert.Equal(t, t0, at)
}

func TestLogin_CamposVacios_NoLlamaAlAPI(t *testing.T) {
	gw := &fakeGateway{loginErr: errors.New("no debería llamarse")}
	uc := newUC(gw, newFakeCooldown(), "", t0)

	assert.Equal(t, MsgCredentialsRequired, uc.Login(context.Background(), " ", "x").Error)
}

// ── VerifyCode ───────────────────────────────────────────────────────────────

func TestVerifyCode_FormatoInvalido_NoLlamaAlAPI(t *testing.T) {
	gw := &fakeGateway{}
	uc := newUC(gw, newFakeCooldown(), "", t0)

	for _, code := range []string{"", "12345", "1234567", "12a456"} {
		res := uc.VerifyCode(context.Background(), "ana", code)
		assert.Equal(t, MsgCodeFormat, res.Error, code)
	}
	assert.Equal(t, 0, gw.verifyCalls)
}

func TestVerifyCode_CodigoIncorrecto(t *testing.T) {
	gw := &fakeGateway{verifyErr: &domain.RemoteError{Status: 400, Message: "bad"}}
	uc := newUC(gw, newFakeCooldown(), "", t0)

	res := uc.VerifyCode(context.Background(), "ana", "123456")
	assert.Nil(t, res.Session)
	assert.Equal(t, MsgInvalidCode, res.Error)
}

func TestVerifyCode_Exito_SinSecretUsaRolDelCuerpo(t *testing.T) {
	gw := &fakeGateway{verifyOut: &entity.Session{Token: "opaque", Email: "ana@cartem.mx", Role: entity.RoleEmployee}}
	uc := newUC(gw, newFakeCooldown(), "", t0)

	res := uc.VerifyCode(context.Background(), "ana", "123456")
	require.NotNil(t, res.Session)
	assert.Equal(t, entity.RoleEmployee, res.Session.Role)
	assert.Equal(t, "123456", gw.lastCode)
}

func TestVerifyCode_ConSecret_RolDelClaimPrevalece(t *testing.T) {
	const secret = "s3cr3t"
	tok, err := jwt.Generate(secret, "ana@cartem.mx", "ROLE_EMPLOYEE", "api", 60)
	require.NoError(t, err)
	gw := &fakeGateway{verifyOut: &entity.Session{Token: tok, Email: "ana@cartem.mx", Role: entity.RoleAdmin}}
	uc := newUC(gw, newFakeCooldown(), secret, t0)

	res := uc.VerifyCode(context.Background(), "ana", "123456")
	require.NotNil(t, res.Session)
	assert.Equal(t, entity.RoleEmployee, res.Session.Role)
}

// ── ResolveSession ───────────────────────────────────────────────────────────

func TestResolveSession_SinSecret_RolDeCookie(t *testing.T) {
	uc := newUC(&fakeGateway{}, newFakeCooldown(), "", t0)

	s := uc.ResolveSession("tok", "ana@cartem.mx", "ROLE_ADMIN")
	assert.Equal(t, entity.Session{Token: "tok", Email: "ana@cartem.mx", Role: entity.RoleAdmin}, s)
	assert.False(t, uc.ResolveSession("", "ana@cartem.mx", "ROLE_ADMIN").IsAuthenticated())
}

func TestResolveSession_ConSecret_IgnoraCookieDeRol(t *testing.T) {
	const secret = "s3cr3t"
	tok, err := jwt.Generate(secret, "ana@cartem.mx", "ROLE_EMPLOYEE", "api", 60)
	require.NoError(t, err)
	uc := newUC(&fakeGateway{}, newFakeCooldown(), secret, t0)

	s := uc.ResolveSession(tok, "ana@cartem.mx", "ROLE_ADMIN")
	assert.Equal(t, entity.RoleEmployee, s.Role, "la cookie role no puede escalar privilegios")

	forged := uc.ResolveSession("no-es-un-jwt", "x", "ROLE_ADMIN")
	assert.False(t, forged.IsAuthenticated())
}

// ── Forgot / ChangePassword ──────────────────────────────────────────────────

func TestForgotPassword(t *testing.T) {
	uc := newUC(&fakeGateway{}, newFakeCooldown(), "", t0)
	assert.Empty(t, uc.ForgotPassword(context.Background(), "ana@cartem.mx"))
	assert.Equal(t, MsgEmailRequired, uc.ForgotPassword(context.Background(), ""))

	uc = newUC(&fakeGateway{forgotErr: &domain.RemoteError{Status: 404, Message: "Usuario no existe"}}, newFakeCooldown(), "", t0)
	assert.Equal(t, "Usuario no existe", uc.ForgotPassword(context.Background(), "x@y.z"))
}

func TestChangePasswordAdmin_Validaciones(t *testing.T) {
	gw := &fakeGateway{}
	uc := newUC(gw, newFakeCooldown(), "", t0)

	err := uc.ChangePasswordAdmin(context.Background(), "tok", dto.ResetPasswordForm{Email: "a@b.c", NewPassword: "abcdefgh", ConfirmPassword: "abcdefgX"})
	var fe dto.FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, MsgPasswordMismatch, fe["newPassword"])

	err = uc.ChangePasswordAdmin(context.Background(), "tok", dto.ResetPasswordForm{Email: "a@b.c", NewPassword: "abc", ConfirmPassword: "abc"})
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, MsgPasswordTooShort, fe["newPassword"])
	assert.Equal(t, 0, gw.changeCalls)

	err = uc.ChangePasswordAdmin(context.Background(), "tok", dto.ResetPasswordForm{Email: "a@b.c", NewPassword: "abcdefgh", ConfirmPassword: "abcdefgh"})
	assert.NoError(t, err)
	assert.Equal(t, 1, gw.changeCalls)
}

// ── Reenvío ──────────────────────────────────────────────────────────────────

func TestResend_RespetaTemporizador(t *testing.T) {
	cd := newFakeCooldown()
	uc := newUC(&fakeGateway{}, cd, "", t0)
	_ = uc.Login(context.Background(), "ana", "secret")

	uc.now = func() time.Time { return t0.Add(10 * time.Second) }
	assert.Equal(t, 20*time.Second, uc.Resend(context.Background(), "ana"))

	uc.now = func() time.Time { return t0.Add(31 * time.Second) }
	assert.Equal(t, time.Duration(0), uc.Resend(context.Background(), "ana"))
	at, _, _ := cd.StartedAt(context.Background(), "ana")
	assert.Equal(t, t0.Add(31*time.Second), at, "el reenvío reinicia el temporizador")
}
