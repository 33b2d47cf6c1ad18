package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrActionNotAllowed = errors.New("acción no permitida para el estado actual")
	ErrRemote           = errors.New("el servidor rechazó la operación")
	ErrNetwork          = errors.New("no fue posible contactar al servidor")
	ErrDraftNotFound    = errors.New("borrador no encontrado o expirado")
)

// RemoteError error de negocio reportado por el API remoto (status distinto de 200).
// Message es el texto del cuerpo de respuesta cuando existe.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return ErrRemote.Error()
}

// Unwrap permite errors.Is(err, ErrRemote) y, según el status, ErrUnauthorized/ErrNotFound/ErrConflict.
func (e *RemoteError) Unwrap() []error {
	switch e.Status {
	case 401, 403:
		return []error{ErrRemote, ErrUnauthorized}
	case 404:
		return []error{ErrRemote, ErrNotFound}
	case 409:
		return []error{ErrRemote, ErrConflict}
	}
	return []error{ErrRemote}
}

// RemoteMessage devuelve el mensaje del servidor si err proviene del API, o fallback.
func RemoteMessage(err error, fallback string) string {
	var re *RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return fallback
}
