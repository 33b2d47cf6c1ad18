package http

import (
	"bytes"
	"fmt"
	"html/template"
	"reflect"
	"strings"
)

// Column columna de una tabla. Render nil = valor del campo cuyo tag json o nombre coincide con Key.
type Column[T any] struct {
	Key    string
	Label  string
	Render func(T) template.HTML
}

// Table tabla paginada genérica. El bloque de paginación sólo aparece con más de una página.
type Table[T any] struct {
	Columns    []Column[T]
	Rows       []T
	Page       int // base 1
	TotalPages int
	Loading    bool
	Empty      string
	PageURL    func(page int) string
}

type pageLink struct {
	Number  int
	URL     string
	Current bool
}

type tableView struct {
	Headers []string
	Rows    [][]template.HTML
	Colspan int
	Loading bool
	Empty   string
	Pages   []pageLink
	Prev    string
	Next    string
}

var tableTmpl = template.Must(template.New("table").Parse(`<table class="table">
<thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- if .Loading}}
<tr class="loading"><td colspan="{{.Colspan}}">Cargando...</td></tr>
{{- else}}{{range .Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- else}}
<tr class="empty"><td colspan="{{.Colspan}}">{{.Empty}}</td></tr>
{{- end}}{{end}}
</tbody>
</table>
{{- if .Pages}}
<nav class="pagination">
{{- if .Prev}}<a href="{{.Prev}}" rel="prev">&laquo;</a>{{end}}
{{- range .Pages}}{{if .Current}}<span class="current">{{.Number}}</span>{{else}}<a href="{{.URL}}">{{.Number}}</a>{{end}}{{end}}
{{- if .Next}}<a href="{{.Next}}" rel="next">&raquo;</a>{{end}}
</nav>
{{- end}}`))

// HTML renderiza la tabla completa.
func (t Table[T]) HTML() template.HTML {
	v := tableView{
		Headers: make([]string, len(t.Columns)),
		Colspan: len(t.Columns),
		Loading: t.Loading,
		Empty:   t.Empty,
	}
	if v.Empty == "" {
		v.Empty = "Sin registros"
	}
	for i, col := range t.Columns {
		v.Headers[i] = col.Label
	}
	for _, row := range t.Rows {
		cells := make([]template.HTML, len(t.Columns))
		for i, col := range t.Columns {
			if col.Render != nil {
				cells[i] = col.Render(row)
				continue
			}
			cells[i] = template.HTML(template.HTMLEscapeString(FieldText(row, col.Key)))
		}
		v.Rows = append(v.Rows, cells)
	}
	if t.TotalPages > 1 && t.PageURL != nil {
		v.Pages, v.Prev, v.Next = t.pager()
	}

	var buf bytes.Buffer
	if err := tableTmpl.Execute(&buf, v); err != nil {
		return template.HTML(template.HTMLEscapeString(err.Error()))
	}
	return template.HTML(buf.String())
}

// pager ventana de hasta 5 páginas alrededor de la actual.
func (t Table[T]) pager() ([]pageLink, string, string) {
	cur := t.Page
	if cur < 1 {
		cur = 1
	}
	if cur > t.TotalPages {
		cur = t.TotalPages
	}
	from, to := cur-2, cur+2
	if from < 1 {
		to += 1 - from
		from = 1
	}
	if to > t.TotalPages {
		from -= to - t.TotalPages
		to = t.TotalPages
	}
	if from < 1 {
		from = 1
	}
	links := make([]pageLink, 0, to-from+1)
	for p := from; p <= to; p++ {
		links = append(links, pageLink{Number: p, URL: t.PageURL(p), Current: p == cur})
	}
	var prev, next string
	if cur > 1 {
		prev = t.PageURL(cur - 1)
	}
	if cur < t.TotalPages {
		next = t.PageURL(cur + 1)
	}
	return links, prev, next
}

// FieldText texto del campo de v cuyo tag json o nombre coincide con key (sin distinguir mayúsculas).
// Punteros nil y campos inexistentes dan "".
func FieldText(v any, key string) string {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return ""
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		if !strings.EqualFold(name, key) && !strings.EqualFold(f.Name, key) {
			continue
		}
		fv := rv.Field(i)
		for fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				return ""
			}
			fv = fv.Elem()
		}
		return fmt.Sprint(fv.Interface())
	}
	return ""
}
