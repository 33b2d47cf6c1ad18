package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cartem-panel/internal/application/dto"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
)

func fillCode(t *testing.T, f *Flow, digits string) {
	t.Helper()
	for i, r := range digits {
		require.True(t, f.Code().SetCell(i, string(r)))
	}
}

func TestFlow_NoAutenticaSinPasarPorCodePending(t *testing.T) {
	f := NewFlow(30 * time.Second)

	err := f.Verify(dto.VerifyResult{Session: &entity.Session{Token: "tok"}})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StateCredentialsEntry, f.State())
	assert.Nil(t, f.Session())
}

func TestFlow_CredencialesInvalidasQuedaEnCredentialsEntry(t *testing.T) {
	f := NewFlow(30 * time.Second)

	require.NoError(t, f.Submit("admin", dto.LoginResult{Error: MsgInvalidCredentials}, t0))

	assert.Equal(t, StateCredentialsEntry, f.State())
	assert.Equal(t, MsgInvalidCredentials, f.Error())
	assert.Empty(t, f.Username())
}

func TestFlow_CaminoCompleto(t *testing.T) {
	f := NewFlow(30 * time.Second)
	require.NoError(t, f.Submit("ana", dto.LoginResult{Next: "/login/two-factor?username=ana"}, t0))
	assert.Equal(t, StateCodePending, f.State())

	fillCode(t, f, "123456")
	require.True(t, f.Code().Complete())
	require.NoError(t, f.Verify(dto.VerifyResult{Session: &entity.Session{Token: "tok", Role: entity.RoleAdmin}}))

	assert.Equal(t, StateAuthenticated, f.State())
	assert.Equal(t, "tok", f.Session().Token)

	// sólo logout sale de Authenticated
	assert.ErrorIs(t, f.Submit("otro", dto.LoginResult{}, t0), ErrInvalidTransition)
	f.Logout()
	assert.Equal(t, StateCredentialsEntry, f.State())
	assert.Nil(t, f.Session())
}

func TestFlow_CodigoIncorrectoLimpiaCeldasYConservaUsuario(t *testing.T) {
	f := ResumeFlow("ana@cartem.mx", t0, 30*time.Second)
	fillCode(t, f, "999999")

	require.NoError(t, f.Verify(dto.VerifyResult{Error: MsgInvalidCode}))

	assert.Equal(t, StateCodePending, f.State())
	assert.Equal(t, "ana@cartem.mx", f.Username())
	assert.Equal(t, Code{}, *f.Code())
	assert.Equal(t, MsgInvalidCode, f.Error())
	assert.Equal(t, t0, f.IssuedAt(), "el fallo no toca el temporizador")
}

func TestCode_SetCellRechazaNoNumericos(t *testing.T) {
	var c Code
	assert.False(t, c.SetCell(0, "a"))
	assert.False(t, c.SetCell(1, "12"))
	assert.False(t, c.SetCell(6, "1"))
	assert.True(t, c.SetCell(2, "7"))
	assert.Equal(t, "7", c.String())
	assert.False(t, c.Complete())
}

func TestFlow_ResendAvailableIn(t *testing.T) {
	f := ResumeFlow("ana", t0, 30*time.Second)

	assert.Equal(t, 30*time.Second, f.ResendAvailableIn(t0))
	assert.Equal(t, 21*time.Second, f.ResendAvailableIn(t0.Add(9500*time.Millisecond)))
	assert.Equal(t, time.Duration(0), f.ResendAvailableIn(t0.Add(30*time.Second)))

	assert.False(t, f.Resend(t0.Add(5*time.Second)))
	assert.True(t, f.Resend(t0.Add(40*time.Second)))
	assert.Equal(t, t0.Add(40*time.Second), f.IssuedAt())
}

func TestIsValidCode(t *testing.T) {
	assert.True(t, IsValidCode("000123"))
	assert.False(t, IsValidCode("00012"))
	assert.False(t, IsValidCode("00012x"))
	assert.False(t, IsValidCode("０００１２３"))
}
