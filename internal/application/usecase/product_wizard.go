package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/cartem-panel/internal/application/dto"
	"github.com/jhoicas/cartem-panel/internal/application/ports"
	"github.com/jhoicas/cartem-panel/internal/domain"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
	"github.com/jhoicas/cartem-panel/internal/domain/repository"
)

// ProductWizard asistente de dos pasos (datos -> imágenes) para alta y edición de productos.
// El borrador vive en un DraftStore desde que se abre el formulario hasta que se envía o cancela.
type ProductWizard struct {
	drafts    ports.DraftStore
	images    ports.ImageProcessor
	repo      repository.ProductRepository
	maxImages int
	now       func() time.Time
}

// NewProductWizard construye el asistente. maxImages <= 0 usa entity.MaxProductImages.
func NewProductWizard(drafts ports.DraftStore, images ports.ImageProcessor, repo repository.ProductRepository, maxImages int) *ProductWizard {
	if maxImages <= 0 || maxImages > entity.MaxProductImages {
		maxImages = entity.MaxProductImages
	}
	return &ProductWizard{drafts: drafts, images: images, repo: repo, maxImages: maxImages, now: time.Now}
}

// MaxImages tope de imágenes adicionales aplicado.
func (w *ProductWizard) MaxImages() int { return w.maxImages }

// Start abre un borrador. seed nil = alta; con seed se edita conservando uid e imágenes existentes.
func (w *ProductWizard) Start(ctx context.Context, seed *entity.Product) (*dto.ProductDraft, error) {
	d := &dto.ProductDraft{
		ID:        uuid.New().String(),
		Step:      dto.DraftStepDetails,
		CreatedAt: w.now(),
		Product:   entity.Product{Status: true},
	}
	if seed != nil {
		d.Product = *seed
		d.Product.Images = append([]entity.Image(nil), seed.Images...)
		d.Details = DetailsFromProduct(*seed)
	}
	if err := w.drafts.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("asistente: guardar borrador: %w", err)
	}
	return d, nil
}

// Get devuelve el borrador o domain.ErrDraftNotFound.
func (w *ProductWizard) Get(ctx context.Context, id string) (*dto.ProductDraft, error) {
	return w.drafts.Get(ctx, id)
}

// SaveDetails valida el paso 1; si es válido avanza al paso de imágenes.
// Con errores el borrador conserva lo capturado y se devuelven dto.FieldErrors.
func (w *ProductWizard) SaveDetails(ctx context.Context, id string, in dto.ProductDetailsForm) (*dto.ProductDraft, error) {
	d, err := w.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Details = in
	errs := ValidateProductDetails(in, &d.Product)
	if !errs.Any() {
		d.Step = dto.DraftStepImages
	}
	if err := w.drafts.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("asistente: guardar borrador: %w", err)
	}
	if errs.Any() {
		return d, errs
	}
	return d, nil
}

// Back vuelve al paso de datos sin perder las imágenes.
func (w *ProductWizard) Back(ctx context.Context, id string) (*dto.ProductDraft, error) {
	return w.update(ctx, id, func(d *dto.ProductDraft) error {
		d.Step = dto.DraftStepDetails
		return nil
	})
}

// SetPreview reemplaza la imagen principal.
func (w *ProductWizard) SetPreview(ctx context.Context, id string, up dto.ImageUpload) (*dto.ProductDraft, error) {
	return w.update(ctx, id, func(d *dto.ProductDraft) error {
		img, err := w.images.Process(up.Filename, up.MimeType, up.Data)
		if err != nil {
			return err
		}
		d.Product.Preview = *img
		return nil
	})
}

// AddImages agrega imágenes adicionales. Las que exceden el tope se ignoran sin error.
func (w *ProductWizard) AddImages(ctx context.Context, id string, uploads []dto.ImageUpload) (*dto.ProductDraft, error) {
	return w.update(ctx, id, func(d *dto.ProductDraft) error {
		for _, up := range uploads {
			if len(d.Product.Images) >= w.maxImages {
				break
			}
			img, err := w.images.Process(up.Filename, up.MimeType, up.Data)
			if err != nil {
				return err
			}
			d.Product.Images = append(d.Product.Images, *img)
		}
		return nil
	})
}

// RemoveImage quita la imagen adicional en index (destino "papelera"). Índices fuera de rango no hacen nada.
func (w *ProductWizard) RemoveImage(ctx context.Context, id string, index int) (*dto.ProductDraft, error) {
	return w.update(ctx, id, func(d *dto.ProductDraft) error {
		if index < 0 || index >= len(d.Product.Images) {
			return nil
		}
		d.Product.Images = append(d.Product.Images[:index], d.Product.Images[index+1:]...)
		return nil
	})
}

// Submit revalida y envía el producto con una sola llamada a /product/save.
// Con datos inválidos no se llama al API. Tras un 200 el borrador se elimina.
func (w *ProductWizard) Submit(ctx context.Context, token, id string) (*dto.ProductDraft, error) {
	d, err := w.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if errs := ValidateProductDetails(d.Details, &d.Product); errs.Any() {
		d.Step = dto.DraftStepDetails
		_ = w.drafts.Save(ctx, d)
		return d, errs
	}
	payload := SavePayload(d.Product)
	if err := w.repo.Save(ctx, token, &payload); err != nil {
		return d, fmt.Errorf("asistente: guardar producto: %w", err)
	}
	if err := w.drafts.Delete(ctx, id); err != nil {
		return d, fmt.Errorf("asistente: borrar borrador: %w", err)
	}
	return d, nil
}

// Cancel descarta el borrador.
func (w *ProductWizard) Cancel(ctx context.Context, id string) error {
	return w.drafts.Delete(ctx, id)
}

// SavePayload producto tal como se envía: subcategoría sólo por _id e imágenes con su contenido
// (las existentes sin reemplazar viajan sólo con uid/url).
func SavePayload(p entity.Product) entity.Product {
	out := p
	out.Subcategory = entity.Subcategory{ID: p.Subcategory.ID}
	out.Images = make([]entity.Image, len(p.Images))
	copy(out.Images, p.Images)
	return out
}

func (w *ProductWizard) update(ctx context.Context, id string, fn func(d *dto.ProductDraft) error) (*dto.ProductDraft, error) {
	d, err := w.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(d); err != nil {
		return d, fmt.Errorf("asistente: %w", err)
	}
	if err := w.drafts.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("asistente: guardar borrador: %w", err)
	}
	return d, nil
}

// IsDraftMissing el borrador expiró o nunca existió.
func IsDraftMissing(err error) bool {
	return err != nil && errors.Is(err, domain.ErrDraftNotFound)
}
