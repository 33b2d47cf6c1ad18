package entity

// PageQuery parámetros de una página remota. Page es base 0 (convención del API).
type PageQuery struct {
	Page   int
	Size   int
	Search string // name en /product, search en /person/page/
	Role   string // sólo personas: admin, employee, customer
}

// Page una página de resultados tal como la devuelve el API.
type Page[T any] struct {
	Content          []T
	Number           int
	Size             int
	TotalPages       int
	TotalElements    int
	NumberOfElements int
}
