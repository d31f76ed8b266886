package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/product-console/internal/domain"
	"github.com/jhoicas/product-console/internal/domain/entity"
	"github.com/jhoicas/product-console/internal/domain/repository"
	"github.com/jhoicas/product-console/internal/infrastructure/memory"
)

func TestProductRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()

	require.NoError(t, repo.Create(ctx, entity.Product{ID: "10", Name: "Tux", OS: "Linux", Price: "5"}))
	require.NoError(t, repo.Create(ctx, entity.Product{ID: "2", Name: "Mac", OS: "macOS", Price: "20"}))
	assert.ErrorIs(t, repo.Create(ctx, entity.Product{ID: "2", Name: "Otro", OS: "x", Price: "1"}), domain.ErrDuplicate)
	assert.ErrorIs(t, repo.Create(ctx, entity.Product{ID: "dos"}), domain.ErrInvalidInput)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2", list[0].ID, "orden numérico, no lexicográfico")
	assert.Equal(t, "10", list[1].ID)

	require.NoError(t, repo.Update(ctx, entity.Product{ID: "2", Name: "MacBook", OS: "macOS", Price: "25"}))
	got, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "MacBook", got.Name)
	assert.ErrorIs(t, repo.Update(ctx, entity.Product{ID: "99", Name: "a", OS: "b", Price: "c"}), domain.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, 2))
	assert.ErrorIs(t, repo.Delete(ctx, 2), domain.ErrNotFound)
	got, err = repo.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTxRunner_RollbackSiFalla(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	require.NoError(t, repo.Create(ctx, entity.Product{ID: "1", Name: "Win", OS: "Windows", Price: "10"}))

	boom := errors.New("boom")
	err := memory.NewTxRunner(repo).Run(ctx, func(tx repository.ProductRepository) error {
		require.NoError(t, tx.Create(ctx, entity.Product{ID: "2", Name: "Mac", OS: "macOS", Price: "20"}))
		require.NoError(t, tx.Delete(ctx, 1))
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.Product{{ID: "1", Name: "Win", OS: "Windows", Price: "10"}}, list)
}

func TestTxRunner_Commit(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()

	err := memory.NewTxRunner(repo).Run(ctx, func(tx repository.ProductRepository) error {
		return tx.Create(ctx, entity.Product{ID: "3", Name: "Tux", OS: "Linux", Price: "0"})
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, got)
}
