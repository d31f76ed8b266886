package memory

import (
	"context"
	"sync"

	"github.com/google/btree"

	"github.com/jhoicas/product-console/internal/domain"
	"github.com/jhoicas/product-console/internal/domain/entity"
	"github.com/jhoicas/product-console/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

type row struct {
	id      int64
	product entity.Product
}

func lessRow(a, b row) bool { return a.id < b.id }

// ProductRepo almacén en memoria ordenado por id (B-tree). Se pierde al reiniciar.
type ProductRepo struct {
	mu   sync.RWMutex
	tree *btree.BTreeG[row]
}

// NewProductRepository construye el almacén vacío.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{tree: btree.NewG(16, lessRow)}
}

// List devuelve todos los productos en orden ascendente de id.
func (r *ProductRepo) List(ctx context.Context) ([]entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Product, 0, r.tree.Len())
	r.tree.Ascend(func(it row) bool {
		out = append(out, it.product)
		return true
	})
	return out, nil
}

// GetByID obtiene un producto; nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.tree.Get(row{id: id})
	if !ok {
		return nil, nil
	}
	p := it.product
	return &p, nil
}

// Create inserta; domain.ErrDuplicate si el id ya existe.
func (r *ProductRepo) Create(ctx context.Context, product entity.Product) error {
	id, err := product.NumericID()
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tree.Has(row{id: id}) {
		return domain.ErrDuplicate
	}
	r.tree.ReplaceOrInsert(row{id: id, product: product})
	return nil
}

// Update reemplaza; domain.ErrNotFound si el id no existe.
func (r *ProductRepo) Update(ctx context.Context, product entity.Product) error {
	id, err := product.NumericID()
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.tree.Has(row{id: id}) {
		return domain.ErrNotFound
	}
	r.tree.ReplaceOrInsert(row{id: id, product: product})
	return nil
}

// Delete elimina; domain.ErrNotFound si el id no existe.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tree.Delete(row{id: id}); !ok {
		return domain.ErrNotFound
	}
	return nil
}
