package console

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/jhoicas/product-console/internal/application/ports"
	"github.com/jhoicas/product-console/internal/domain"
	"github.com/jhoicas/product-console/internal/domain/entity"
)

// Textos de los avisos al usuario.
const (
	MsgInsertOK        = "Inserción exitosa"
	MsgUpdateOK        = "Actualización exitosa"
	MsgDeleteOK        = "Eliminación exitosa"
	MsgOperationFailed = "La operación falló"
	MsgDeleteFailed    = "La eliminación falló"
	MsgRequiredFields  = "Todos los campos son obligatorios"

	DeletePrompt = "¿Seguro que desea eliminar este producto?"
)

// Console estado de la interfaz de productos de una sesión: borrador del formulario,
// copia de la colección remota y modo (inserción/edición).
//
// El borrador y la colección son copias independientes; solo se reconcilian
// volviendo a pedir la colección después de cada mutación exitosa.
type Console struct {
	svc      ports.ProductService
	notifier ports.Notifier
	log      zerolog.Logger

	mu         sync.Mutex
	draft      entity.Product
	collection []entity.Product
	mode       Mode

	// una mutación a la vez; la segunda recibe domain.ErrBusy sin llamada de red
	inflight atomic.Bool
}

// Option configura la consola.
type Option func(*Console)

// WithLogger define el logger de diagnóstico (los fallos de lectura solo se registran aquí).
func WithLogger(l zerolog.Logger) Option {
	return func(c *Console) { c.log = l }
}

// New construye una consola vacía en modo inserción. No hace llamadas de red.
func New(svc ports.ProductService, notifier ports.Notifier, opts ...Option) *Console {
	c := &Console{
		svc:        svc,
		notifier:   notifier,
		log:        zerolog.Nop(),
		collection: []entity.Product{},
		mode:       Creating(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// View copia de solo lectura del estado para renderizar.
type View struct {
	Draft      entity.Product
	Collection []entity.Product
	Mode       Mode
}

// Snapshot devuelve una copia del estado actual.
func (c *Console) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return View{
		Draft:      c.draft,
		Collection: slices.Clone(c.collection),
		Mode:       c.mode,
	}
}

// Find busca un producto de la colección por id.
func (c *Console) Find(id string) (entity.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.collection {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Product{}, false
}

// UpdateField modifica exactamente un campo del borrador. No toca la colección.
func (c *Console) UpdateField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if name == entity.FieldID && c.mode.IsEditing() {
		return domain.ErrIDLocked
	}
	next, ok := c.draft.With(name, value)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownField, name)
	}
	c.draft = next
	return nil
}

// Submit envía el borrador: actualización en modo edición, inserción en otro caso.
//
// Éxito: aviso, luego borrador vacío y modo inserción, luego recarga de la colección
// (si la recarga falla solo se registra). Fallo: aviso genérico; borrador, modo y colección intactos.
func (c *Console) Submit(ctx context.Context) error {
	if !c.inflight.CompareAndSwap(false, true) {
		return domain.ErrBusy
	}
	defer c.inflight.Store(false)

	c.mu.Lock()
	draft, mode := c.draft, c.mode
	c.mu.Unlock()

	if missing := draft.MissingFields(); len(missing) > 0 {
		c.notify(ports.NoticeWarning, MsgRequiredFields)
		return fmt.Errorf("%w: faltan %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}

	var (
		err   error
		okMsg string
	)
	if id, editing := mode.OriginalID(); editing {
		draft.ID = id
		err = c.svc.Update(ctx, draft)
		okMsg = MsgUpdateOK
	} else {
		err = c.svc.Insert(ctx, draft)
		okMsg = MsgInsertOK
	}
	if err != nil {
		c.log.Error().Err(err).Str("mode", mode.String()).Str("id", draft.ID).Msg("envío del producto fallido")
		c.notify(ports.NoticeFailure, MsgOperationFailed)
		return err
	}

	c.notify(ports.NoticeSuccess, okMsg)

	c.mu.Lock()
	c.draft = entity.EmptyProduct()
	c.mode = Creating()
	c.mu.Unlock()

	_ = c.FetchCollection(ctx)
	return nil
}

// FetchCollection reemplaza la colección completa con la lista remota.
// Un fallo deja la colección como estaba y solo se registra; nunca genera aviso.
func (c *Console) FetchCollection(ctx context.Context) error {
	list, err := c.svc.List(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("error obteniendo productos")
		return err
	}
	if list == nil {
		list = []entity.Product{}
	}
	c.mu.Lock()
	c.collection = slices.Clone(list)
	c.mu.Unlock()
	return nil
}

// StartEdit copia el producto (por valor) al borrador y pasa a modo edición.
func (c *Console) StartEdit(p entity.Product) {
	c.mu.Lock()
	c.draft = p
	c.mode = Editing(p.ID)
	c.mu.Unlock()
}

// CancelEdit vuelve a modo inserción con el borrador vacío. No hace llamadas de red.
func (c *Console) CancelEdit() {
	c.mu.Lock()
	c.draft = entity.EmptyProduct()
	c.mode = Creating()
	c.mu.Unlock()
}

// DeleteProduct elimina por id previa confirmación del usuario.
// Si no confirma devuelve domain.ErrCancelled sin llamada de red ni cambios de estado.
func (c *Console) DeleteProduct(ctx context.Context, id string, confirmer ports.Confirmer) error {
	if confirmer == nil || !confirmer.Confirm(ctx, DeletePrompt) {
		return domain.ErrCancelled
	}
	if !c.inflight.CompareAndSwap(false, true) {
		return domain.ErrBusy
	}
	defer c.inflight.Store(false)

	if err := c.svc.Delete(ctx, id); err != nil {
		c.log.Error().Err(err).Str("id", id).Msg("error eliminando producto")
		c.notify(ports.NoticeFailure, MsgDeleteFailed)
		return err
	}
	c.notify(ports.NoticeSuccess, MsgDeleteOK)
	_ = c.FetchCollection(ctx)
	return nil
}

func (c *Console) notify(kind ports.NoticeKind, msg string) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(ports.Notice{Kind: kind, Message: msg})
}
