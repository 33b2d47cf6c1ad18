package entity

// Category categoría raíz del catálogo.
type Category struct {
	ID          string `json:"_id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Status      bool   `json:"status,omitempty"`
}

// Subcategory subcategoría; todo producto referencia exactamente una.
type Subcategory struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
	Status      bool      `json:"status,omitempty"`
	Category    *Category `json:"category,omitempty"`
}
