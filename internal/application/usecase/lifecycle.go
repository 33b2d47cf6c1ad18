package usecase

import "errors"

// FormState estado de un formulario modal.
type FormState int

const (
	FormEditing FormState = iota
	FormSubmitting
	FormSucceeded
	FormFailed
	FormClosed
)

func (s FormState) String() string {
	return [...]string{"editing", "submitting", "succeeded", "failed", "closed"}[s]
}

// ErrFormState la transición no es válida desde el estado actual.
var ErrFormState = errors.New("transición de formulario inválida")

// FormLifecycle Editing -> Submitting -> Succeeded | Failed -> Closed.
// Succeeded sólo puede cerrarse; Failed vuelve a Editing al descartar el error o reintentar.
type FormLifecycle struct {
	state FormState
	err   string
}

// NewFormLifecycle formulario recién abierto.
func NewFormLifecycle() *FormLifecycle {
	return &FormLifecycle{state: FormEditing}
}

func (f *FormLifecycle) State() FormState { return f.state }
func (f *FormLifecycle) Error() string    { return f.err }

// Submit pasa a Submitting desde Editing o Failed (reintento).
func (f *FormLifecycle) Submit() error {
	if f.state != FormEditing && f.state != FormFailed {
		return ErrFormState
	}
	f.state = FormSubmitting
	f.err = ""
	return nil
}

// Succeed el API respondió 200.
func (f *FormLifecycle) Succeed() error {
	if f.state != FormSubmitting {
		return ErrFormState
	}
	f.state = FormSucceeded
	return nil
}

// Fail error de validación, de negocio o de red; el formulario queda abierto con el mensaje.
func (f *FormLifecycle) Fail(msg string) error {
	if f.state != FormSubmitting && f.state != FormEditing {
		return ErrFormState
	}
	f.state = FormFailed
	f.err = msg
	return nil
}

// Finish cierra el envío con el resultado de la llamada: nil pasa a Succeeded y
// cualquier otro error a Failed con msg(err) como mensaje general.
func (f *FormLifecycle) Finish(err error, msg func(error) string) error {
	if f.state != FormSubmitting {
		return ErrFormState
	}
	if err == nil {
		return f.Succeed()
	}
	return f.Fail(msg(err))
}

// Dismiss descarta el error y vuelve a edición.
func (f *FormLifecycle) Dismiss() error {
	if f.state != FormFailed {
		return ErrFormState
	}
	f.state = FormEditing
	f.err = ""
	return nil
}

// Close cierra el formulario (éxito o cancelación); los campos se descartan.
func (f *FormLifecycle) Close() {
	f.state = FormClosed
	f.err = ""
}

// ShouldRefetch el listado dueño debe recargarse: sólo tras un envío exitoso.
func (f *FormLifecycle) ShouldRefetch() bool {
	return f.state == FormSucceeded
}
