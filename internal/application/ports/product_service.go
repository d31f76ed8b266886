package ports

import (
	"context"

	"github.com/jhoicas/product-console/internal/domain/entity"
)

// ProductService define el puerto de salida hacia el servicio remoto de productos.
// La consola solo conoce este contrato; el adaptador HTTP vive en infrastructure/productapi.
// Cualquier error (transporte o respuesta no 2xx) es un fallo; el cuerpo de las mutaciones se ignora.
type ProductService interface {
	// List devuelve la colección completa (GET /display).
	List(ctx context.Context) ([]entity.Product, error)
	// Insert crea un producto con el id indicado por el usuario (POST /insert).
	Insert(ctx context.Context, p entity.Product) error
	// Update reemplaza el producto completo, id incluido (PUT /update).
	Update(ctx context.Context, p entity.Product) error
	// Delete elimina por id (DELETE /delete/{id}).
	Delete(ctx context.Context, id string) error
}
