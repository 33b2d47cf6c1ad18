package dto

import "github.com/shopspring/decimal"

// ProductDetailsForm paso 1 del asistente de productos. Los números llegan como texto
// para poder reportar "no numérico" en lugar de un cero silencioso.
type ProductDetailsForm struct {
	Name               string `form:"name"`
	Description        string `form:"description"`
	PurchasePrice      string `form:"purchasePrice"`
	RetailPrice        string `form:"retailPrice"`
	WholesalePrice     string `form:"wholesalePrice"`
	BulkWholesalePrice string `form:"bulkWholesalePrice"`
	Stock              string `form:"stock"`
	TechnicalData      string `form:"technicalData"`
	SubcategoryID      string `form:"subcategory"`
	SKU                string `form:"sku"`
}

// ProductStats tarjetas rápidas de la página de productos.
type ProductStats struct {
	Total          int             `json:"total"`
	Active         int             `json:"active"`
	Inactive       int             `json:"inactive"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
}

// ProductRow fila de producto para la superficie JSON.
type ProductRow struct {
	UID                string          `json:"uid"`
	Name               string          `json:"name"`
	SKU                string          `json:"sku"`
	PurchasePrice      decimal.Decimal `json:"purchase_price"`
	RetailPrice        decimal.Decimal `json:"retail_price"`
	WholesalePrice     decimal.Decimal `json:"wholesale_price"`
	BulkWholesalePrice decimal.Decimal `json:"bulk_wholesale_price"`
	Stock              int             `json:"stock"`
	Subcategory        string          `json:"subcategory"`
	Category           string          `json:"category"`
	Status             bool            `json:"status"`
	Actions            []string        `json:"actions"`
}

// PersonRow fila de persona para la superficie JSON.
type PersonRow struct {
	ID        string   `json:"id"`
	FullName  string   `json:"full_name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	RFC       string   `json:"rfc"`
	Role      string   `json:"role"`
	Status    bool     `json:"status"`
	CreatedAt string   `json:"created_at,omitempty"`
	Actions   []string `json:"actions"`
}
