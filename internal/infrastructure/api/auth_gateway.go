package api

import (
	"context"
	"net/http"

	"github.com/jhoicas/cartem-panel/internal/domain/entity"
	"github.com/jhoicas/cartem-panel/internal/domain/repository"
)

type authGateway struct {
	c *Client
}

// NewAuthGateway implementa repository.AuthGateway sobre /auth.
func NewAuthGateway(c *Client) repository.AuthGateway {
	return &authGateway{c: c}
}

func (g *authGateway) Login(ctx context.Context, username, password string) error {
	return g.c.do(ctx, call{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   loginRequest{Username: username, Password: password},
	}, nil)
}

func (g *authGateway) VerifyCode(ctx context.Context, username, code string) (*entity.Session, error) {
	var resp verifyCodeResponse
	if err := g.c.do(ctx, call{
		method: http.MethodPost,
		path:   "/auth/verify-code",
		body:   verifyCodeRequest{Username: username, Code: code},
	}, &resp); err != nil {
		return nil, err
	}
	return &entity.Session{
		Token: resp.Data.Token,
		Email: resp.Data.Email,
		Role:  resp.Data.Roles.First(),
	}, nil
}

func (g *authGateway) ForgotPassword(ctx context.Context, email string) error {
	return g.c.do(ctx, call{
		method: http.MethodPost,
		path:   "/auth/forgot-password",
		body:   forgotPasswordRequest{Email: email},
	}, nil)
}

func (g *authGateway) ChangePasswordAdmin(ctx context.Context, token, email, newPassword string) error {
	return g.c.do(ctx, call{
		method: http.MethodPost,
		path:   "/auth/change-password-admin",
		token:  token,
		body:   changePasswordRequest{Email: email, NewPassword: newPassword},
	}, nil)
}
