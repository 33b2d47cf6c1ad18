package dto

// AdminSummaryDTO tarjetas de /dashboard/admin. Cada total sale de totalElements de su listado;
// un conteo que falló queda en -1 y su error en Errors.
// ActiveProducts cuenta los activos dentro de la muestra inicial del catálogo.
type AdminSummaryDTO struct {
	TotalProducts  int               `json:"total_products"`
	ActiveProducts int               `json:"active_products"`
	TotalAdmins    int               `json:"total_admins"`
	TotalEmployees int               `json:"total_employees"`
	TotalCustomers int               `json:"total_customers"`
	Errors         map[string]string `json:"errors,omitempty"`
}

// NavItem entrada del menú lateral.
type NavItem struct {
	Label string
	Href  string
}
