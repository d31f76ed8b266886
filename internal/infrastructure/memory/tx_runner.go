package memory

import (
	"context"

	"github.com/jhoicas/product-console/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta fn sobre un clon copy-on-write del árbol y lo publica solo si fn termina sin error.
// Mientras dura la transacción el almacén queda bloqueado para lecturas y escrituras.
type TxRunner struct {
	repo *ProductRepo
}

// NewTxRunner construye el runner sobre el almacén dado.
func NewTxRunner(repo *ProductRepo) *TxRunner {
	return &TxRunner{repo: repo}
}

// Run implementa repository.TxRunner.
func (t *TxRunner) Run(ctx context.Context, fn func(repo repository.ProductRepository) error) error {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()

	staged := &ProductRepo{tree: t.repo.tree.Clone()}
	if err := fn(staged); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	t.repo.tree = staged.tree
	return nil
}
