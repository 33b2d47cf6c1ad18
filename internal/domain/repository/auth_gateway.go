package repository

import (
	"context"

	"github.com/jhoicas/cartem-panel/internal/domain/entity"
)

// AuthGateway define el puerto hacia los endpoints /auth del API remoto.
type AuthGateway interface {
	// Login valida usuario y contraseña; no crea sesión (el API envía el código de 6 dígitos).
	Login(ctx context.Context, username, password string) error
	// VerifyCode canjea el código por el token, email y rol de la sesión.
	VerifyCode(ctx context.Context, username, code string) (*entity.Session, error)
	ForgotPassword(ctx context.Context, email string) error
	ChangePasswordAdmin(ctx context.Context, token, email, newPassword string) error
}
