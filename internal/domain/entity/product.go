package entity

import (
	"github.com/shopspring/decimal"
)

// MaxProductImages tope de imágenes adicionales por producto.
const MaxProductImages = 10

// Product producto del catálogo con sus cuatro niveles de precio.
type Product struct {
	UID                string          `json:"uid,omitempty"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	PurchasePrice      decimal.Decimal `json:"purchasePrice"`
	RetailPrice        decimal.Decimal `json:"retailPrice"`
	WholesalePrice     decimal.Decimal `json:"wholesalePrice"`
	BulkWholesalePrice decimal.Decimal `json:"bulkWholesalePrice"`
	Stock              int             `json:"stock"`
	TechnicalData      string          `json:"technicalData"`
	SKU                string          `json:"sku"`
	Subcategory        Subcategory     `json:"subcategory"`
	Preview            Image           `json:"preview"`
	Images             []Image         `json:"images"`
	Status             bool            `json:"status"`
	Rating             float64         `json:"rating"`
}

// InventoryValue stock × precio de compra.
func (p Product) InventoryValue() decimal.Decimal {
	return p.PurchasePrice.Mul(decimal.NewFromInt(int64(p.Stock)))
}

// CategoryName nombre de la categoría a través de la subcategoría.
func (p Product) CategoryName() string {
	if p.Subcategory.Category == nil {
		return ""
	}
	return p.Subcategory.Category.Name
}
