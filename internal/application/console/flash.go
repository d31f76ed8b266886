package console

import (
	"sync"

	"github.com/jhoicas/product-console/internal/application/ports"
)

var _ ports.Notifier = (*Flash)(nil)

// Flash cola de avisos de una sesión. Se vacía al renderizar la siguiente página.
type Flash struct {
	mu      sync.Mutex
	notices []ports.Notice
}

// NewFlash construye una cola vacía.
func NewFlash() *Flash {
	return &Flash{}
}

// Notify encola un aviso.
func (f *Flash) Notify(n ports.Notice) {
	f.mu.Lock()
	f.notices = append(f.notices, n)
	f.mu.Unlock()
}

// Drain devuelve los avisos pendientes en orden de llegada y deja la cola vacía.
func (f *Flash) Drain() []ports.Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.notices
	f.notices = nil
	return out
}
