package ports

import (
	"context"
	"io"
	"time"

	"github.com/jhoicas/cartem-panel/internal/application/dto"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
)

// DraftStore guarda el borrador del asistente de productos mientras el formulario está abierto.
// Implementaciones: memoria (por defecto) y Redis.
type DraftStore interface {
	Save(ctx context.Context, draft *dto.ProductDraft) error
	// Get devuelve domain.ErrDraftNotFound si no existe o expiró.
	Get(ctx context.Context, id string) (*dto.ProductDraft, error)
	Delete(ctx context.Context, id string) error
}

// CooldownStore registra cuándo se emitió el último código de verificación por usuario.
type CooldownStore interface {
	Start(ctx context.Context, key string, at time.Time) error
	// StartedAt devuelve ok=false si no hay registro para key.
	StartedAt(ctx context.Context, key string) (at time.Time, ok bool, err error)
}

// CatalogExporter escribe una página del catálogo en un formato descargable (CSV, Excel, PDF).
type CatalogExporter interface {
	Format() string
	ContentType() string
	Extension() string
	Export(w io.Writer, products []entity.Product) error
}

// ImageProcessor convierte un archivo subido en una imagen lista para enviar (base64 + MIME + título + uid).
type ImageProcessor interface {
	Process(filename, mimeType string, data []byte) (*entity.Image, error)
}
