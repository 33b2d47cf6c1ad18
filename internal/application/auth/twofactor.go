package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/cartem-panel/internal/application/dto"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
)

// CodeLength celdas del código de verificación.
const CodeLength = 6

// State estado del inicio de sesión en dos pasos.
type State int

const (
	StateCredentialsEntry State = iota
	StateCodePending
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateCredentialsEntry:
		return "credentials_entry"
	case StateCodePending:
		return "code_pending"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// ErrInvalidTransition la acción no corresponde al estado actual del flujo.
var ErrInvalidTransition = errors.New("transición inválida en el inicio de sesión")

// Code las 6 celdas del código; cada una vacía o un dígito.
type Code [CodeLength]string

// SetCell asigna la celda i. Valores no numéricos se ignoran (la celda no cambia).
func (c *Code) SetCell(i int, v string) bool {
	if i < 0 || i >= CodeLength {
		return false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		c[i] = ""
		return true
	}
	if len(v) != 1 || v[0] < '0' || v[0] > '9' {
		return false
	}
	c[i] = v
	return true
}

// Complete todas las celdas tienen dígito.
func (c Code) Complete() bool {
	for _, d := range c {
		if d == "" {
			return false
		}
	}
	return true
}

// String concatenación de las celdas.
func (c Code) String() string {
	return strings.Join(c[:], "")
}

// Reset vacía las 6 celdas.
func (c *Code) Reset() {
	*c = Code{}
}

// Flow máquina de estados CredentialsEntry -> CodePending -> Authenticated.
// Los fallos no cambian de estado ni tocan el temporizador de reenvío.
type Flow struct {
	state    State
	username string
	code     Code
	issuedAt time.Time
	cooldown time.Duration
	err      string
	session  *entity.Session
}

// NewFlow flujo nuevo en CredentialsEntry.
func NewFlow(cooldown time.Duration) *Flow {
	return &Flow{state: StateCredentialsEntry, cooldown: cooldown}
}

// ResumeFlow flujo en CodePending para un usuario cuyas credenciales ya fueron aceptadas.
func ResumeFlow(username string, issuedAt time.Time, cooldown time.Duration) *Flow {
	return &Flow{state: StateCodePending, username: username, issuedAt: issuedAt, cooldown: cooldown}
}

func (f *Flow) State() State             { return f.state }
func (f *Flow) Username() string         { return f.username }
func (f *Flow) Error() string            { return f.err }
func (f *Flow) Session() *entity.Session { return f.session }
func (f *Flow) Code() *Code              { return &f.code }
func (f *Flow) IssuedAt() time.Time      { return f.issuedAt }

// Submit aplica el resultado del paso de credenciales.
func (f *Flow) Submit(username string, res dto.LoginResult, now time.Time) error {
	if f.state != StateCredentialsEntry {
		return ErrInvalidTransition
	}
	if res.Error != "" {
		f.err = res.Error
		return nil
	}
	f.state = StateCodePending
	f.username = username
	f.issuedAt = now
	f.err = ""
	return nil
}

// Verify aplica el resultado del canje del código. Un fallo vacía las celdas y conserva el usuario.
func (f *Flow) Verify(res dto.VerifyResult) error {
	if f.state != StateCodePending {
		return ErrInvalidTransition
	}
	if res.Session == nil {
		f.err = res.Error
		f.code.Reset()
		return nil
	}
	f.state = StateAuthenticated
	f.session = res.Session
	f.err = ""
	return nil
}

// ResendAvailableIn tiempo restante para habilitar "Reenviar código", redondeado a segundos hacia arriba.
func (f *Flow) ResendAvailableIn(now time.Time) time.Duration {
	if f.issuedAt.IsZero() {
		return 0
	}
	left := f.issuedAt.Add(f.cooldown).Sub(now)
	if left <= 0 {
		return 0
	}
	return (left + time.Second - 1) / time.Second * time.Second
}

// Resend reinicia el temporizador si ya venció. Sólo en CodePending.
func (f *Flow) Resend(now time.Time) bool {
	if f.state != StateCodePending || f.ResendAvailableIn(now) > 0 {
		return false
	}
	f.issuedAt = now
	return true
}

// Logout única salida de Authenticated: vuelve a CredentialsEntry sin datos.
func (f *Flow) Logout() {
	*f = Flow{state: StateCredentialsEntry, cooldown: f.cooldown}
}
