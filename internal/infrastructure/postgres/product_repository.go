package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/product-console/internal/domain"
	"github.com/jhoicas/product-console/internal/domain/entity"
	"github.com/jhoicas/product-console/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// Schema tabla de productos; se crea al arrancar el servicio si no existe.
const Schema = `
CREATE TABLE IF NOT EXISTS products (
	id    BIGINT PRIMARY KEY,
	name  TEXT NOT NULL,
	os    TEXT NOT NULL,
	price TEXT NOT NULL
)`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// EnsureSchema crea la tabla products si no existe.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("crear tabla products: %w", err)
	}
	return nil
}

// List devuelve todos los productos ordenados por id.
func (r *ProductRepo) List(ctx context.Context) ([]entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, os, price FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := make([]entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

// GetByID obtiene un producto por ID; nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT id, name, os, price FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Create persiste un nuevo producto con el id elegido por el usuario.
func (r *ProductRepo) Create(ctx context.Context, product entity.Product) error {
	id, err := product.NumericID()
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `INSERT INTO products (id, name, os, price) VALUES ($1, $2, $3, $4)`,
		id, product.Name, product.OS, product.Price)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Update reemplaza nombre, sistema y precio del producto.
func (r *ProductRepo) Update(ctx context.Context, product entity.Product) error {
	id, err := product.NumericID()
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, `UPDATE products SET name = $2, os = $3, price = $4 WHERE id = $1`,
		id, product.Name, product.OS, product.Price)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (entity.Product, error) {
	var (
		id int64
		p  entity.Product
	)
	if err := row.Scan(&id, &p.Name, &p.OS, &p.Price); err != nil {
		return entity.Product{}, err
	}
	p.ID = strconv.FormatInt(id, 10)
	return p, nil
}
