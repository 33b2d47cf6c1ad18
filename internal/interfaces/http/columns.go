package http

import (
	"bytes"
	"html/template"
	"net/url"
	"strconv"

	"github.com/jhoicas/cartem-panel/internal/application/dto"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
	"github.com/jhoicas/cartem-panel/pkg/money"
)

// rowAction botón de una fila: enlace (GET) o formulario POST con csrf y filtros del listado.
type rowAction struct {
	Label  string
	Href   string
	Action string
	Fields map[string]string
	Danger bool
}

var actionsTmpl = template.Must(template.New("actions").Parse(`<div class="row-actions">
{{- range .Actions}}
{{- if .Href}}<a class="button small" href="{{.Href}}">{{.Label}}</a>
{{- else}}<form method="post" action="{{.Action}}" class="inline">
<input type="hidden" name="_csrf" value="{{$.CSRF}}">
{{- range $k, $v := .Fields}}<input type="hidden" name="{{$k}}" value="{{$v}}">{{end}}
<button type="submit" class="small{{if .Danger}} danger{{end}}">{{.Label}}</button></form>
{{- end}}
{{- end}}
</div>`))

var chipTmpl = template.Must(template.New("chip").Parse(`<span class="chip {{if .}}chip-active{{else}}chip-inactive{{end}}">{{if .}}Activo{{else}}Inactivo{{end}}</span>`))

var thumbTmpl = template.Must(template.New("thumb").Funcs(template.FuncMap{
	"src": func(img entity.Image) template.URL { return template.URL(img.Src()) },
}).Parse(`{{if not .IsEmpty}}<img class="thumb" src="{{src .}}" alt="{{.Title}}" width="48">{{end}}`))

func execHTML(t *template.Template, data any) template.HTML {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return template.HTML(template.HTMLEscapeString(err.Error()))
	}
	return template.HTML(buf.String())
}

func statusChip(active bool) template.HTML {
	return execHTML(chipTmpl, active)
}

func listFields(q dto.ListQuery, extra map[string]string) map[string]string {
	f := map[string]string{"page": strconv.Itoa(q.Page)}
	if q.Search != "" {
		f["search"] = q.Search
	}
	if q.Role != "" {
		f["role"] = q.Role
	}
	for k, v := range extra {
		f[k] = v
	}
	return f
}

// personActions según AllowedActions: activo -> restablecer contraseña y desactivar; inactivo -> eliminar y reactivar.
func personActions(p entity.Person, csrf string, q dto.ListQuery) template.HTML {
	var acts []rowAction
	state := strconv.FormatBool(p.Status)
	for _, a := range entity.AllowedActions(p.Status) {
		switch a {
		case entity.ActionEdit:
			v := url.Values{"email": {p.Email}, "role": {q.Role}}
			acts = append(acts, rowAction{Label: "Restablecer contraseña", Href: PathAdminPersons + "/reset?" + v.Encode()})
		case entity.ActionDeactivate:
			acts = append(acts, rowAction{Label: "Desactivar", Action: PathAdminPersons + "/status",
				Fields: listFields(q, map[string]string{"email": p.Email, "active": state})})
		case entity.ActionActivate:
			acts = append(acts, rowAction{Label: "Activar", Action: PathAdminPersons + "/status",
				Fields: listFields(q, map[string]string{"email": p.Email, "active": state})})
		case entity.ActionDelete:
			acts = append(acts, rowAction{Label: "Eliminar", Danger: true, Action: PathAdminPersons + "/delete",
				Fields: listFields(q, map[string]string{"email": p.Email, "active": state})})
		}
	}
	return execHTML(actionsTmpl, struct {
		Actions []rowAction
		CSRF    string
	}{acts, csrf})
}

// productActions editar abre el asistente; el resto son POST sobre el listado.
func productActions(p entity.Product, csrf string, q dto.ListQuery) template.HTML {
	var acts []rowAction
	state := strconv.FormatBool(p.Status)
	for _, a := range entity.AllowedActions(p.Status) {
		switch a {
		case entity.ActionEdit:
			edit := dto.ListQuery{Page: q.Page, Search: q.Search}
			acts = append(acts, rowAction{Label: "Editar", Href: listURL(PathAdminProducts+"/"+url.PathEscape(p.UID)+"/edit", edit)})
		case entity.ActionDeactivate:
			acts = append(acts, rowAction{Label: "Desactivar", Action: PathAdminProducts + "/status",
				Fields: listFields(q, map[string]string{"uid": p.UID, "active": state})})
		case entity.ActionActivate:
			acts = append(acts, rowAction{Label: "Activar", Action: PathAdminProducts + "/status",
				Fields: listFields(q, map[string]string{"uid": p.UID, "active": state})})
		case entity.ActionDelete:
			acts = append(acts, rowAction{Label: "Eliminar", Danger: true, Action: PathAdminProducts + "/delete",
				Fields: listFields(q, map[string]string{"uid": p.UID, "active": state})})
		}
	}
	return execHTML(actionsTmpl, struct {
		Actions []rowAction
		CSRF    string
	}{acts, csrf})
}

func personColumns(csrf string, q dto.ListQuery) []Column[entity.Person] {
	return []Column[entity.Person]{
		{Key: "name", Label: "Nombre", Render: func(p entity.Person) template.HTML {
			return template.HTML(template.HTMLEscapeString(p.FullName()))
		}},
		{Key: "email", Label: "Correo"},
		{Key: "phone", Label: "Teléfono"},
		{Key: "rfc", Label: "RFC"},
		{Key: "createdAt", Label: "Registro", Render: func(p entity.Person) template.HTML {
			if t := p.Created(); !t.IsZero() {
				return template.HTML(t.Format("02/01/2006"))
			}
			return ""
		}},
		{Key: "status", Label: "Estatus", Render: func(p entity.Person) template.HTML { return statusChip(p.Status) }},
		{Key: "actions", Label: "Acciones", Render: func(p entity.Person) template.HTML { return personActions(p, csrf, q) }},
	}
}

// productColumns withActions=false para las vistas de sólo lectura.
func productColumns(withActions bool, csrf string, q dto.ListQuery) []Column[entity.Product] {
	moneyCell := func(get func(entity.Product) string) func(entity.Product) template.HTML {
		return func(p entity.Product) template.HTML { return template.HTML(template.HTMLEscapeString(get(p))) }
	}
	cols := []Column[entity.Product]{
		{Key: "preview", Label: "", Render: func(p entity.Product) template.HTML { return execHTML(thumbTmpl, p.Preview) }},
		{Key: "name", Label: "Nombre"},
		{Key: "sku", Label: "SKU"},
		{Key: "subcategory", Label: "Subcategoría", Render: func(p entity.Product) template.HTML {
			return template.HTML(template.HTMLEscapeString(p.Subcategory.Name))
		}},
		{Key: "category", Label: "Categoría", Render: func(p entity.Product) template.HTML {
			return template.HTML(template.HTMLEscapeString(p.CategoryName()))
		}},
		{Key: "purchasePrice", Label: "Precio compra", Render: moneyCell(func(p entity.Product) string { return money.Format(p.PurchasePrice) })},
		{Key: "retailPrice", Label: "Precio público", Render: moneyCell(func(p entity.Product) string { return money.Format(p.RetailPrice) })},
		{Key: "stock", Label: "Stock"},
		{Key: "status", Label: "Estatus", Render: func(p entity.Product) template.HTML { return statusChip(p.Status) }},
	}
	if withActions {
		cols = append(cols, Column[entity.Product]{Key: "actions", Label: "Acciones", Render: func(p entity.Product) template.HTML {
			return productActions(p, csrf, q)
		}})
	}
	return cols
}
