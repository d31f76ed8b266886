package console

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/product-console/internal/application/ports"
)

// Session una consola por navegador, con su cola de avisos.
type Session struct {
	ID      string
	Console *Console
	Flash   *Flash

	lastSeen time.Time
}

// Registry mantiene las sesiones abiertas. Las inactivas más de ttl se descartan al acceder.
type Registry struct {
	svc ports.ProductService
	ttl time.Duration
	log zerolog.Logger
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry construye el registro. svc es compartido por todas las consolas.
func NewRegistry(svc ports.ProductService, ttl time.Duration, log zerolog.Logger) *Registry {
	return &Registry{
		svc:      svc,
		ttl:      ttl,
		log:      log,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Open crea una sesión nueva y carga la colección inicial (un fallo de carga solo se registra).
func (r *Registry) Open(ctx context.Context) *Session {
	id := uuid.New().String()
	flash := NewFlash()
	s := &Session{
		ID:      id,
		Flash:   flash,
		Console: New(r.svc, flash, WithLogger(r.log.With().Str("session", id).Logger())),
	}

	r.mu.Lock()
	r.pruneLocked()
	s.lastSeen = r.now()
	r.sessions[id] = s
	r.mu.Unlock()

	_ = s.Console.FetchCollection(ctx)
	r.log.Debug().Str("session", id).Msg("sesión abierta")
	return s
}

// Get devuelve la sesión si existe y no expiró; renueva su actividad.
func (r *Registry) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked()
	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	s.lastSeen = r.now()
	return s, true
}

// Len número de sesiones vivas.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) pruneLocked() {
	now := r.now()
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.ttl {
			delete(r.sessions, id)
			r.log.Debug().Str("session", id).Msg("sesión expirada")
		}
	}
}

// Prune descarta las sesiones inactivas y devuelve cuántas siguen vivas.
func (r *Registry) Prune() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked()
	return len(r.sessions)
}

// Janitor barre las sesiones inactivas cada interval hasta que ctx termine.
// Sin él, una sesión abandonada solo se libera cuando llega otra petición.
func (r *Registry) Janitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Prune()
		}
	}
}
