package http

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/jhoicas/cartem-panel/internal/domain/entity"
	"github.com/jhoicas/cartem-panel/pkg/money"
)

//go:embed templates
var templatesFS embed.FS

// Views motor de plantillas para Fiber (fiber.Views): cada página se compila junto con
// el layout y los parciales, y se guarda por nombre ("login", "products", ...).
type Views struct {
	mu    sync.RWMutex
	cache map[string]*template.Template
	funcs template.FuncMap
	fsys  fs.FS
}

// NewViews motor sobre las plantillas embebidas.
func NewViews() *Views {
	sub, _ := fs.Sub(templatesFS, "templates")
	return &Views{cache: map[string]*template.Template{}, funcs: baseFuncs(), fsys: sub}
}

// Load compila todas las páginas de pages/.
func (v *Views) Load() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	pages, err := fs.Glob(v.fsys, "pages/*.html")
	if err != nil {
		return err
	}
	for _, file := range pages {
		name := strings.TrimSuffix(path.Base(file), ".html")
		tmpl, err := template.New(name).Funcs(v.funcs).ParseFS(v.fsys, "layout.html", "partials.html", file)
		if err != nil {
			return fmt.Errorf("views: compilar %s: %w", file, err)
		}
		v.cache[name] = tmpl
	}
	return nil
}

// Render ejecuta el layout indicado (por defecto "layout") de la página name.
func (v *Views) Render(w io.Writer, name string, data interface{}, layout ...string) error {
	v.mu.RLock()
	tmpl := v.cache[name]
	v.mu.RUnlock()
	if tmpl == nil {
		return fmt.Errorf("views: plantilla %q no encontrada", name)
	}
	entry := "layout"
	if len(layout) > 0 && layout[0] != "" {
		entry = layout[0]
	}
	return tmpl.ExecuteTemplate(w, entry, data)
}

func baseFuncs() template.FuncMap {
	return template.FuncMap{
		"money": money.Format,
		"imgSrc": func(img entity.Image) template.URL {
			// data: URLs armadas por el propio panel a partir de imágenes ya validadas
			return template.URL(img.Src())
		},
		"seq": func(n int) []int {
			out := make([]int, n)
			for i := range out {
				out[i] = i
			}
			return out
		},
	}
}
