// Package imaging prepara las imágenes del asistente de productos:
// valida el tipo, reduce las que exceden el ancho máximo y las codifica en base64.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"

	"github.com/jhoicas/cartem-panel/internal/domain"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
)

// MaxUploadBytes tope por archivo.
const MaxUploadBytes = 8 << 20

// Processor implementa ports.ImageProcessor.
type Processor struct {
	maxWidth uint
}

// NewProcessor maxWidth 0 = no redimensionar.
func NewProcessor(maxWidth int) *Processor {
	if maxWidth < 0 {
		maxWidth = 0
	}
	return &Processor{maxWidth: uint(maxWidth)}
}

// Process acepta JPEG, PNG, GIF y WebP. JPEG y PNG más anchos que maxWidth se reducen
// conservando la proporción; los demás se envían tal cual.
func (p *Processor) Process(filename, mimeType string, data []byte) (*entity.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("imagen %q vacía: %w", filename, domain.ErrInvalidInput)
	}
	if len(data) > MaxUploadBytes {
		return nil, fmt.Errorf("imagen %q excede %d MB: %w", filename, MaxUploadBytes>>20, domain.ErrInvalidInput)
	}

	mimeType = sniff(mimeType, data)
	switch mimeType {
	case "image/jpeg", "image/png":
		out, err := p.shrink(mimeType, data)
		if err != nil {
			return nil, fmt.Errorf("imagen %q ilegible: %w", filename, domain.ErrInvalidInput)
		}
		data = out
	case "image/gif", "image/webp":
	default:
		return nil, fmt.Errorf("formato %q no soportado: %w", mimeType, domain.ErrInvalidInput)
	}

	return &entity.Image{
		UID:        uuid.New().String(),
		Title:      strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)),
		MimeType:   mimeType,
		FileBase64: base64.StdEncoding.EncodeToString(data),
	}, nil
}

// sniff el tipo declarado por el navegador sólo se usa si el contenido no lo contradice.
func sniff(declared string, data []byte) string {
	detected := http.DetectContentType(data)
	if strings.HasPrefix(detected, "image/") {
		return detected
	}
	return strings.ToLower(strings.TrimSpace(declared))
}

func (p *Processor) shrink(mimeType string, data []byte) ([]byte, error) {
	var (
		img image.Image
		err error
	)
	if mimeType == "image/png" {
		img, err = png.Decode(bytes.NewReader(data))
	} else {
		img, err = jpeg.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, err
	}
	if p.maxWidth == 0 || uint(img.Bounds().Dx()) <= p.maxWidth {
		return data, nil
	}

	resized := resize.Resize(p.maxWidth, 0, img, resize.Lanczos3)
	var buf bytes.Buffer
	if mimeType == "image/png" {
		err = png.Encode(&buf, resized)
	} else {
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
