package usecase

import (
	"net/mail"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cartem-panel/internal/application/dto"
	"github.com/jhoicas/cartem-panel/internal/domain/entity"
)

const (
	msgRequired      = "Campo requerido"
	msgNotNumber     = "Debe ser un número"
	msgNegativePrice = "El precio debe ser positivo"
	msgStockInteger  = "El stock debe ser un número entero"
	msgStockNegative = "El stock no puede ser negativo"
	msgInvalidEmail  = "Correo electrónico inválido"
	msgInvalidRole   = "Seleccione un rol"
	msgInvalidAccess = "Nivel de acceso inválido"
	msgInvalidSalary = "El sueldo debe ser un número mayor o igual a 0"
)

var productRequired = []struct {
	field string
	msg   string
	get   func(dto.ProductDetailsForm) string
}{
	{"name", "El nombre es requerido", func(f dto.ProductDetailsForm) string { return f.Name }},
	{"description", "La descripción es requerida", func(f dto.ProductDetailsForm) string { return f.Description }},
	{"technicalData", "Los datos técnicos son requeridos", func(f dto.ProductDetailsForm) string { return f.TechnicalData }},
	{"subcategory", "La subcategoría es requerida", func(f dto.ProductDetailsForm) string { return f.SubcategoryID }},
	{"sku", "El SKU es requerido", func(f dto.ProductDetailsForm) string { return f.SKU }},
}

var productPrices = []struct {
	field    string
	required string
	get      func(dto.ProductDetailsForm) string
	set      func(*entity.Product, decimal.Decimal)
}{
	{"purchasePrice", "El precio de compra es requerido",
		func(f dto.ProductDetailsForm) string { return f.PurchasePrice },
		func(p *entity.Product, d decimal.Decimal) { p.PurchasePrice = d }},
	{"retailPrice", "El precio de venta es requerido",
		func(f dto.ProductDetailsForm) string { return f.RetailPrice },
		func(p *entity.Product, d decimal.Decimal) { p.RetailPrice = d }},
	{"wholesalePrice", "El precio al por mayor es requerido",
		func(f dto.ProductDetailsForm) string { return f.WholesalePrice },
		func(p *entity.Product, d decimal.Decimal) { p.WholesalePrice = d }},
	{"bulkWholesalePrice", "El precio al por mayor en volumen es requerido",
		func(f dto.ProductDetailsForm) string { return f.BulkWholesalePrice },
		func(p *entity.Product, d decimal.Decimal) { p.BulkWholesalePrice = d }},
}

// ValidateProductDetails valida el paso 1 y, si no hay errores, copia los valores sobre p.
// p conserva UID, imágenes, estatus y rating.
func ValidateProductDetails(in dto.ProductDetailsForm, p *entity.Product) dto.FieldErrors {
	errs := dto.FieldErrors{}
	for _, r := range productRequired {
		if strings.TrimSpace(r.get(in)) == "" {
			errs[r.field] = r.msg
		}
	}

	prices := make([]decimal.Decimal, len(productPrices))
	for i, pr := range productPrices {
		raw := strings.TrimSpace(pr.get(in))
		if raw == "" {
			errs[pr.field] = pr.required
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			errs[pr.field] = msgNotNumber
			continue
		}
		if d.IsNegative() {
			errs[pr.field] = msgNegativePrice
			continue
		}
		prices[i] = d
	}

	stock := 0
	rawStock := strings.TrimSpace(in.Stock)
	switch {
	case rawStock == "":
		errs["stock"] = "El stock es requerido"
	default:
		d, err := decimal.NewFromString(rawStock)
		switch {
		case err != nil:
			errs["stock"] = msgNotNumber
		case !d.IsInteger():
			errs["stock"] = msgStockInteger
		case d.IsNegative():
			errs["stock"] = msgStockNegative
		default:
			stock = int(d.IntPart())
		}
	}

	if errs.Any() || p == nil {
		return errs
	}
	p.Name = strings.TrimSpace(in.Name)
	p.Description = strings.TrimSpace(in.Description)
	p.TechnicalData = strings.TrimSpace(in.TechnicalData)
	p.SKU = strings.TrimSpace(in.SKU)
	p.Stock = stock
	for i, pr := range productPrices {
		pr.set(p, prices[i])
	}
	if id := strings.TrimSpace(in.SubcategoryID); p.Subcategory.ID != id {
		p.Subcategory = entity.Subcategory{ID: id}
	}
	return errs
}

// DetailsFromProduct formulario del paso 1 precargado desde un producto existente.
func DetailsFromProduct(p entity.Product) dto.ProductDetailsForm {
	return dto.ProductDetailsForm{
		Name:               p.Name,
		Description:        p.Description,
		PurchasePrice:      p.PurchasePrice.String(),
		RetailPrice:        p.RetailPrice.String(),
		WholesalePrice:     p.WholesalePrice.String(),
		BulkWholesalePrice: p.BulkWholesalePrice.String(),
		Stock:              strconv.Itoa(p.Stock),
		TechnicalData:      p.TechnicalData,
		SubcategoryID:      p.Subcategory.ID,
		SKU:                p.SKU,
	}
}

// ValidatePerson valida el alta de administrador o empleado y arma el registro a enviar:
// status activo y userinfo con las credenciales; la contraseña no viaja en el nivel superior.
func ValidatePerson(in dto.PersonForm) (*entity.Person, dto.FieldErrors) {
	errs := dto.FieldErrors{}
	required := map[string]string{
		"name":     in.Name,
		"surname":  in.Surname,
		"lastname": in.Lastname,
		"email":    in.Email,
		"phone":    in.Phone,
		"rfc":      in.RFC,
		"password": in.Password,
	}
	for field, v := range required {
		if strings.TrimSpace(v) == "" {
			errs[field] = msgRequired
		}
	}
	email := strings.TrimSpace(in.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			errs["email"] = msgInvalidEmail
		}
	}

	role := entity.ParseRole(in.Role)
	if _, ok := role.CreatePath(); !ok {
		errs["role"] = msgInvalidRole
	}

	accessLevel := strings.ToUpper(strings.TrimSpace(in.AccessLevel))
	if accessLevel != entity.AccessLevelAll && accessLevel != entity.AccessLevelLimited {
		errs["accessLevel"] = msgInvalidAccess
	}

	var salary *decimal.Decimal
	switch role {
	case entity.RoleAdmin:
		if strings.TrimSpace(in.ResponsibleArea) == "" {
			errs["responsibleArea"] = msgRequired
		}
	case entity.RoleEmployee:
		if strings.TrimSpace(in.Position) == "" {
			errs["position"] = msgRequired
		}
		if strings.TrimSpace(in.Department) == "" {
			errs["department"] = msgRequired
		}
		d, err := decimal.NewFromString(strings.TrimSpace(in.Salary))
		if err != nil || d.IsNegative() {
			errs["salary"] = msgInvalidSalary
		} else {
			salary = &d
		}
	}
	if errs.Any() {
		return nil, errs
	}

	p := &entity.Person{
		Name:        strings.TrimSpace(in.Name),
		Surname:     strings.TrimSpace(in.Surname),
		Lastname:    strings.TrimSpace(in.Lastname),
		Email:       email,
		Phone:       strings.TrimSpace(in.Phone),
		RFC:         strings.ToUpper(strings.TrimSpace(in.RFC)),
		Status:      true,
		Role:        role,
		AccessLevel: accessLevel,
		UserInfo: &entity.UserInfo{
			Username:  email,
			Password:  in.Password,
			Roles:     role,
			NonLocked: true,
		},
	}
	if role == entity.RoleAdmin {
		p.ResponsibleArea = strings.TrimSpace(in.ResponsibleArea)
	} else {
		p.Position = strings.TrimSpace(in.Position)
		p.Department = strings.TrimSpace(in.Department)
		p.Salary = salary
	}
	return p, errs
}
