package dto

import "sort"

// PersonForm campos del formulario "Agregar nueva persona".
// Los campos de rol se validan según Role (admin: área y nivel; empleado: posición, sueldo, departamento y nivel).
type PersonForm struct {
	Name            string `form:"name"`
	Surname         string `form:"surname"`
	Lastname        string `form:"lastname"`
	Email           string `form:"email"`
	Phone           string `form:"phone"`
	RFC             string `form:"rfc"`
	Role            string `form:"role"`
	Password        string `form:"password"`
	ResponsibleArea string `form:"responsibleArea"`
	AccessLevel     string `form:"accessLevel"`
	Position        string `form:"position"`
	Salary          string `form:"salary"`
	Department      string `form:"department"`
}

// ResetPasswordForm cambio de contraseña de una persona por un administrador.
type ResetPasswordForm struct {
	Email           string `form:"email"`
	NewPassword     string `form:"newPassword"`
	ConfirmPassword string `form:"confirmPassword"`
}

// FieldErrors errores de validación por campo (clave = nombre del input).
type FieldErrors map[string]string

// Any indica si hay al menos un error.
func (e FieldErrors) Any() bool { return len(e) > 0 }

// Error permite devolver FieldErrors como error desde los casos de uso.
func (e FieldErrors) Error() string {
	for _, k := range sortedKeys(e) {
		return k + ": " + e[k]
	}
	return "sin errores"
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
