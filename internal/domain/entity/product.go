package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/product-console/internal/domain"
)

// Nombres de campo del formulario; coinciden con las claves JSON del servicio remoto.
const (
	FieldID    = "id"
	FieldName  = "name"
	FieldOS    = "os"
	FieldPrice = "price"
)

// Fields orden en que el formulario presenta los campos.
var Fields = []string{FieldID, FieldName, FieldOS, FieldPrice}

// Product representa un producto tal como lo maneja el formulario.
// Todos los campos son texto: el id se valida como entero solo al enviarlo y el precio nunca se interpreta.
type Product struct {
	ID    string
	Name  string
	OS    string
	Price string
}

// EmptyProduct devuelve el borrador vacío {id:"", name:"", os:"", price:""}.
func EmptyProduct() Product {
	return Product{}
}

// IsEmpty indica si todos los campos están vacíos.
func (p Product) IsEmpty() bool {
	return p == Product{}
}

// Get devuelve el valor de un campo por nombre.
func (p Product) Get(field string) (string, bool) {
	switch field {
	case FieldID:
		return p.ID, true
	case FieldName:
		return p.Name, true
	case FieldOS:
		return p.OS, true
	case FieldPrice:
		return p.Price, true
	}
	return "", false
}

// With devuelve una copia con un único campo modificado. ok es false si el campo no existe.
func (p Product) With(field, value string) (Product, bool) {
	switch field {
	case FieldID:
		p.ID = value
	case FieldName:
		p.Name = value
	case FieldOS:
		p.OS = value
	case FieldPrice:
		p.Price = value
	default:
		return p, false
	}
	return p, true
}

// MissingFields lista los campos obligatorios vacíos (solo espacios cuenta como vacío).
func (p Product) MissingFields() []string {
	var missing []string
	for _, f := range Fields {
		v, _ := p.Get(f)
		if strings.TrimSpace(v) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// ParseID valida un id textual como entero.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id %q no es numérico", domain.ErrInvalidInput, s)
	}
	return id, nil
}

// NumericID id del producto como entero.
func (p Product) NumericID() (int64, error) {
	return ParseID(p.ID)
}
