package dto

import (
	"time"

	"github.com/jhoicas/cartem-panel/internal/domain/entity"
)

// Pasos del asistente de productos.
const (
	DraftStepDetails = 1
	DraftStepImages  = 2
)

// ProductDraft estado del asistente mientras el formulario está abierto.
// Product.UID vacío = alta; con UID = edición. Las imágenes preparadas llevan FileBase64;
// las existentes sólo URL hasta que se reemplacen.
type ProductDraft struct {
	ID        string             `json:"id"`
	Step      int                `json:"step"`
	Product   entity.Product     `json:"product"`
	Details   ProductDetailsForm `json:"details"`
	CreatedAt time.Time          `json:"created_at"`
}

// IsEdit el borrador parte de un producto existente.
func (d *ProductDraft) IsEdit() bool {
	return d.Product.UID != ""
}

// ImageUpload archivo recibido en el paso de imágenes.
type ImageUpload struct {
	Filename string
	MimeType string
	Data     []byte
}
