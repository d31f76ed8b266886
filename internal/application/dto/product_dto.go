package dto

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/jhoicas/product-console/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ProductRequest cuerpo de POST /insert y PUT /update. El id viaja como número.
type ProductRequest struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	OS    string `json:"os"`
	Price string `json:"price"`
}

// NewProductRequest convierte el borrador en cuerpo de petición. El id debe ser entero.
func NewProductRequest(p entity.Product) (ProductRequest, error) {
	id, err := p.NumericID()
	if err != nil {
		return ProductRequest{}, err
	}
	return ProductRequest{ID: id, Name: p.Name, OS: p.OS, Price: p.Price}, nil
}

// ProductRecord producto tal como llega por la red. Tolerante: id y price se aceptan como número o texto.
type ProductRecord struct {
	ID    FlexString `json:"id"`
	Name  string     `json:"name"`
	OS    string     `json:"os"`
	Price FlexString `json:"price"`
}

// ToEntity convierte el registro al producto del formulario.
func (r ProductRecord) ToEntity() entity.Product {
	return entity.Product{ID: string(r.ID), Name: r.Name, OS: r.OS, Price: string(r.Price)}
}

// ProductResponse salida de un producto del servicio de productos.
type ProductResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	OS    string `json:"os"`
	Price string `json:"price"`
}

// MessageResponse respuesta de las mutaciones (la consola la ignora).
type MessageResponse struct {
	Message string `json:"message"`
}

// FlexString texto que en JSON puede venir como cadena o como número.
type FlexString string

// UnmarshalJSON implementa json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	if !isNumber(b) {
		return fmt.Errorf("se esperaba texto o número, llegó %s", b)
	}
	*f = FlexString(b)
	return nil
}

// isNumber acepta solo literales numéricos JSON (sin NaN, Inf, hex ni '+' inicial).
func isNumber(b []byte) bool {
	if len(b) == 0 || !(b[0] == '-' || (b[0] >= '0' && b[0] <= '9')) {
		return false
	}
	for _, c := range b {
		if !(c >= '0' && c <= '9') && c != '-' && c != '+' && c != '.' && c != 'e' && c != 'E' {
			return false
		}
	}
	_, err := strconv.ParseFloat(string(b), 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}
