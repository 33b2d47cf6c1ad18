package entity

import "strings"

// Role rol de usuario tal como lo emite el API (claim "roles").
type Role string

const (
	RoleAdmin    Role = "ROLE_ADMIN"
	RoleEmployee Role = "ROLE_EMPLOYEE"
	RoleCustomer Role = "ROLE_CUSTOMER"
)

// ParseRole normaliza el valor de cookie o claim; acepta también la forma corta (admin, employee, customer).
// Devuelve "" si no corresponde a ningún rol conocido.
func ParseRole(s string) Role {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s != "" && !strings.HasPrefix(s, "ROLE_") {
		s = "ROLE_" + s
	}
	switch Role(s) {
	case RoleAdmin, RoleEmployee, RoleCustomer:
		return Role(s)
	}
	return ""
}

// Filter valor del parámetro role en /person/page/.
func (r Role) Filter() string {
	return strings.ToLower(strings.TrimPrefix(string(r), "ROLE_"))
}

// CreatePath segmento de /person/{admin|employee}/create; los clientes no se dan de alta desde el panel.
func (r Role) CreatePath() (string, bool) {
	switch r {
	case RoleAdmin:
		return "admin", true
	case RoleEmployee:
		return "employee", true
	}
	return "", false
}

// Session estado de autenticación del visitante, reconstruido en cada petición desde las cookies.
type Session struct {
	Token string
	Email string
	Role  Role
}

// IsAuthenticated hay token (no se valida expiración).
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}
