package dto

import "github.com/jhoicas/cartem-panel/internal/domain/entity"

// SessionResponse salida de GET /api/session.
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
	Role          string `json:"role,omitempty"`
}

// LoginResult resultado del paso de credenciales. Error vacío implica avanzar a Next.
type LoginResult struct {
	Next  string
	Error string
}

// VerifyResult resultado del paso del código de 6 dígitos. Session nil implica Error no vacío.
type VerifyResult struct {
	Session *entity.Session
	Error   string
}

// HealthResponse salida de GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	App    string `json:"app"`
}
