package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/product-console/internal/application/dto"
	"github.com/jhoicas/product-console/internal/domain"
	"github.com/jhoicas/product-console/internal/domain/entity"
	"github.com/jhoicas/product-console/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD del servicio de productos de desarrollo.
type ProductUseCase struct {
	repo repository.ProductRepository
	tx   repository.TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, tx repository.TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, tx: tx}
}

// List devuelve todos los productos ordenados por id.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toProductResponse(p))
	}
	return items, nil
}

// Insert crea un producto con el id indicado. domain.ErrDuplicate si ya existe.
func (uc *ProductUseCase) Insert(ctx context.Context, in dto.ProductRecord) error {
	product, err := validProduct(in)
	if err != nil {
		return err
	}
	return uc.repo.Create(ctx, product)
}

// Update reemplaza el producto completo. domain.ErrNotFound si no existe.
func (uc *ProductUseCase) Update(ctx context.Context, in dto.ProductRecord) error {
	product, err := validProduct(in)
	if err != nil {
		return err
	}
	return uc.repo.Update(ctx, product)
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	n, err := entity.ParseID(id)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, n)
}

// Seed carga productos iniciales en una sola transacción. Los ids ya existentes se omiten.
// Devuelve cuántos se insertaron.
func (uc *ProductUseCase) Seed(ctx context.Context, items []dto.ProductRecord) (int, error) {
	products := make([]entity.Product, 0, len(items))
	for i, in := range items {
		p, err := validProduct(in)
		if err != nil {
			return 0, fmt.Errorf("producto #%d: %w", i, err)
		}
		products = append(products, p)
	}

	inserted := 0
	err := uc.tx.Run(ctx, func(repo repository.ProductRepository) error {
		for _, p := range products {
			err := repo.Create(ctx, p)
			if errors.Is(err, domain.ErrDuplicate) {
				continue
			}
			if err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func validProduct(in dto.ProductRecord) (entity.Product, error) {
	p := in.ToEntity()
	if missing := p.MissingFields(); len(missing) > 0 {
		return entity.Product{}, fmt.Errorf("%w: faltan %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	id, err := p.NumericID()
	if err != nil {
		return entity.Product{}, err
	}
	// normaliza " 7" → "7"
	p.ID = strconv.FormatInt(id, 10)
	return p, nil
}

func toProductResponse(p entity.Product) dto.ProductResponse {
	id, _ := p.NumericID()
	return dto.ProductResponse{ID: id, Name: p.Name, OS: p.OS, Price: p.Price}
}
