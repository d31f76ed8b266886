package repository

import (
	"context"

	"github.com/jhoicas/product-console/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia del servicio de productos de desarrollo (DIP).
// Create devuelve domain.ErrDuplicate si el id ya existe; Update y Delete devuelven domain.ErrNotFound si no existe.
type ProductRepository interface {
	List(ctx context.Context) ([]entity.Product, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	Create(ctx context.Context, product entity.Product) error
	Update(ctx context.Context, product entity.Product) error
	Delete(ctx context.Context, id int64) error
}

// TxRunner ejecuta fn de forma atómica: si fn falla, ningún cambio hecho a través de repo queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo ProductRepository) error) error
}
