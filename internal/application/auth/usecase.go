package auth

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/cartem-panel/internal/application/dto"
	"github.com/jhoicas/cartem-panel/internal/application/ports"
	"github.com/jhoicas/cartem-panel/internal/domain"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
	"github.com/jhoicas/cartem-panel/internal/domain/repository"
	"github.com/jhoicas/cartem-panel/pkg/jwt"
	"github.com/jhoicas/cartem-panel/pkg/logger"
)

// Mensajes mostrados al usuario. Los errores del API nunca llegan crudos a la vista.
const (
	MsgCredentialsRequired = "Ingrese usuario y contraseña"
	MsgInvalidCredentials  = "Usuario o contraseña incorrectos"
	MsgCodeFormat          = "El código debe tener 6 dígitos"
	MsgInvalidCode         = "Código incorrecto o expirado"
	MsgMissingUsername     = "Inicie sesión nuevamente para recibir un código"
	MsgEmailRequired       = "Ingrese su correo electrónico"
	MsgForgotFailed        = "No fue posible enviar el correo de recuperación"
	MsgGeneric             = "Error de autenticación"
	MsgPasswordMismatch    = "Las contraseñas no coinciden"
	MsgPasswordTooShort    = "La contraseña debe ser mayor a 8 digitos"
)

// MinPasswordLength longitud mínima aceptada al restablecer una contraseña.
const MinPasswordLength = 8

// TwoFactorPath página del segundo paso.
const TwoFactorPath = "/login/two-factor"

// Config parámetros del caso de uso.
type Config struct {
	ResendCooldown time.Duration // espera antes de "Reenviar código"
	JWTSecret      string        // vacío = el rol se toma de la cookie
}

// AuthUseCase sesión del panel contra el API remoto: credenciales, código, recuperación y cambio de contraseña.
type AuthUseCase struct {
	gateway  repository.AuthGateway
	cooldown ports.CooldownStore
	cfg      Config
	log      *logger.Logger
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(gateway repository.AuthGateway, cooldown ports.CooldownStore, cfg Config, log *logger.Logger) *AuthUseCase {
	if cfg.ResendCooldown <= 0 {
		cfg.ResendCooldown = 30 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{gateway: gateway, cooldown: cooldown, cfg: cfg, log: log, now: time.Now}
}

// ResendCooldown duración configurada del temporizador de reenvío.
func (uc *AuthUseCase) ResendCooldown() time.Duration {
	return uc.cfg.ResendCooldown
}

// Login envía las credenciales. Con 200 no hay sesión todavía: Next apunta al paso del código.
// Nunca devuelve error; cualquier falla queda en LoginResult.Error.
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) dto.LoginResult {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dto.LoginResult{Error: MsgCredentialsRequired}
	}
	if err := uc.gateway.Login(ctx, username, password); err != nil {
		if errors.Is(err, domain.ErrRemote) {
			return dto.LoginResult{Error: MsgInvalidCredentials}
		}
		uc.log.Warn().Err(err).Str("username", username).Msg("login: falla al contactar el API")
		return dto.LoginResult{Error: MsgGeneric}
	}
	uc.startCooldown(ctx, username)
	return dto.LoginResult{Next: TwoFactorPath + "?username=" + url.QueryEscape(username)}
}

// VerifyCode canjea el código por la sesión. El código se valida antes de llamar al API.
func (uc *AuthUseCase) VerifyCode(ctx context.Context, username, code string) dto.VerifyResult {
	username = strings.TrimSpace(username)
	if username == "" {
		return dto.VerifyResult{Error: MsgMissingUsername}
	}
	if !IsValidCode(code) {
		return dto.VerifyResult{Error: MsgCodeFormat}
	}
	sess, err := uc.gateway.VerifyCode(ctx, username, code)
	if err != nil {
		if errors.Is(err, domain.ErrRemote) {
			return dto.VerifyResult{Error: MsgInvalidCode}
		}
		uc.log.Warn().Err(err).Str("username", username).Msg("verify-code: falla al contactar el API")
		return dto.VerifyResult{Error: MsgGeneric}
	}
	if sess == nil || sess.Token == "" {
		return dto.VerifyResult{Error: MsgGeneric}
	}
	if uc.cfg.JWTSecret != "" {
		email, role, err := jwt.Parse(uc.cfg.JWTSecret, sess.Token)
		if err != nil {
			uc.log.Warn().Err(err).Msg("verify-code: token del API no verificable")
			return dto.VerifyResult{Error: MsgGeneric}
		}
		if email != "" {
			sess.Email = email
		}
		sess.Role = entity.ParseRole(role)
	}
	return dto.VerifyResult{Session: sess}
}

// ForgotPassword solicita el correo de recuperación. Devuelve "" si el API aceptó la solicitud.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return MsgEmailRequired
	}
	if err := uc.gateway.ForgotPassword(ctx, email); err != nil {
		if errors.Is(err, domain.ErrRemote) {
			return domain.RemoteMessage(err, MsgForgotFailed)
		}
		uc.log.Warn().Err(err).Msg("forgot-password: falla al contactar el API")
		return MsgGeneric
	}
	return ""
}

// ValidateResetPassword reglas del formulario de cambio de contraseña.
func ValidateResetPassword(in dto.ResetPasswordForm) dto.FieldErrors {
	errs := dto.FieldErrors{}
	if strings.TrimSpace(in.Email) == "" {
		errs["email"] = "La persona no tiene correo registrado"
	}
	if in.NewPassword != in.ConfirmPassword {
		errs["newPassword"] = MsgPasswordMismatch
	} else if len(in.NewPassword) < MinPasswordLength {
		errs["newPassword"] = MsgPasswordTooShort
	}
	return errs
}

// ChangePasswordAdmin valida y envía la nueva contraseña. Errores de validación: dto.FieldErrors.
func (uc *AuthUseCase) ChangePasswordAdmin(ctx context.Context, token string, in dto.ResetPasswordForm) error {
	if errs := ValidateResetPassword(in); errs.Any() {
		return errs
	}
	return uc.gateway.ChangePasswordAdmin(ctx, token, strings.TrimSpace(in.Email), in.NewPassword)
}

// ResolveSession reconstruye la sesión desde las cookies. Con JWTSecret el rol y el email salen
// del claim verificado y un token no verificable equivale a no tener sesión.
func (uc *AuthUseCase) ResolveSession(token, email, role string) entity.Session {
	if token == "" {
		return entity.Session{}
	}
	if uc.cfg.JWTSecret == "" {
		return entity.Session{Token: token, Email: email, Role: entity.ParseRole(role)}
	}
	claimEmail, claimRole, err := jwt.Parse(uc.cfg.JWTSecret, token)
	if err != nil {
		uc.log.Debug().Err(err).Msg("sesión: token rechazado")
		return entity.Session{}
	}
	if claimEmail == "" {
		claimEmail = email
	}
	return entity.Session{Token: token, Email: claimEmail, Role: entity.ParseRole(claimRole)}
}

// ResumeFlow reconstruye el flujo de dos pasos para username en CodePending, con el temporizador guardado.
func (uc *AuthUseCase) ResumeFlow(ctx context.Context, username string) *Flow {
	issuedAt, ok, err := uc.cooldown.StartedAt(ctx, username)
	if err != nil {
		uc.log.Warn().Err(err).Msg("two-factor: no se pudo leer el temporizador")
	}
	if !ok || err != nil {
		// sin registro: el código se emitió hace tiempo o el almacén se reinició
		issuedAt = time.Time{}
	}
	return ResumeFlow(username, issuedAt, uc.cfg.ResendCooldown)
}

// Resend reinicia el temporizador si ya venció. No existe endpoint de reenvío en el API,
// por lo que sólo se reinicia la espera. Devuelve el tiempo restante (0 si se reinició).
func (uc *AuthUseCase) Resend(ctx context.Context, username string) time.Duration {
	flow := uc.ResumeFlow(ctx, username)
	now := uc.now()
	if !flow.Resend(now) {
		return flow.ResendAvailableIn(now)
	}
	uc.startCooldown(ctx, username)
	return 0
}

// Now reloj del caso de uso (reemplazable en tests).
func (uc *AuthUseCase) Now() time.Time { return uc.now() }

func (uc *AuthUseCase) startCooldown(ctx context.Context, username string) {
	if err := uc.cooldown.Start(ctx, username, uc.now()); err != nil {
		uc.log.Warn().Err(err).Str("username", username).Msg("two-factor: no se pudo guardar el temporizador")
	}
}

// IsValidCode exactamente 6 dígitos ASCII.
func IsValidCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
