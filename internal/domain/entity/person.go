package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Niveles de acceso de administradores y empleados.
const (
	AccessLevelAll     = "ALL"
	AccessLevelLimited = "LIMITED"
)

// Person administrador, empleado o cliente. Registro de transporte: el panel sólo mantiene la página actual.
type Person struct {
	ID        string    `json:"_id,omitempty"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	RFC       string    `json:"rfc"`
	Status    bool      `json:"status"`
	Role      Role      `json:"role"`
	CreatedAt string    `json:"createdAt,omitempty"`
	UpdatedAt string    `json:"updatedAt,omitempty"`
	UserInfo  *UserInfo `json:"userinfo,omitempty"`

	// empleado
	Position   string           `json:"position,omitempty"`
	Salary     *decimal.Decimal `json:"salary,omitempty"`
	Department string           `json:"department,omitempty"`
	// administrador y empleado
	AccessLevel string `json:"accessLevel,omitempty"`
	// administrador
	ResponsibleArea string `json:"responsibleArea,omitempty"`
}

// UserInfo credenciales asociadas a la persona. Password sólo viaja en el alta.
type UserInfo struct {
	UID          string    `json:"uid,omitempty"`
	Username     string    `json:"username"`
	Password     string    `json:"password,omitempty"`
	Roles        Role      `json:"roles"`
	NonLocked    bool      `json:"nonLocked"`
	CodeTwoSteps int       `json:"code_two_steps"`
	VerifyCode   int       `json:"verify_code"`
	Person       *struct{} `json:"person"`
}

// FullName nombre, apellido materno y paterno como lo muestra la tabla.
func (p Person) FullName() string {
	return strings.Join(strings.Fields(p.Name+" "+p.Surname+" "+p.Lastname), " ")
}

// Created fecha de alta; cero si el API no la envió o no se reconoce el formato.
func (p Person) Created() time.Time { return parseAPITime(p.CreatedAt) }

// Updated fecha de última actualización.
func (p Person) Updated() time.Time { return parseAPITime(p.UpdatedAt) }

var apiTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseAPITime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range apiTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
