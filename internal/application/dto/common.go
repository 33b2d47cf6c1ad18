package dto

import "strings"

// DefaultPageSize filas por página de los listados del panel.
const DefaultPageSize = 10

// ListQuery parámetros de un listado tal como los maneja la UI (Page base 1).
type ListQuery struct {
	Page   int    `query:"page"`
	Size   int    `query:"size"`
	Search string `query:"search"`
	Role   string `query:"role"`
}

// Normalize aplica valores por defecto: página 1 y DefaultPageSize.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size <= 0 {
		q.Size = DefaultPageSize
	}
	q.Search = strings.TrimSpace(q.Search)
	q.Role = strings.ToLower(strings.TrimSpace(q.Role))
	return q
}

// RemotePage número de página que espera el API (base 0).
func (q ListQuery) RemotePage() int {
	if q.Page < 1 {
		return 0
	}
	return q.Page - 1
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListResponse página de resultados expuesta por la superficie JSON del panel.
type ListResponse[T any] struct {
	Items         []T `json:"items"`
	Page          int `json:"page"`
	Size          int `json:"size"`
	TotalPages    int `json:"total_pages"`
	TotalElements int `json:"total_elements"`
}
