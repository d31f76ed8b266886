package console_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/product-console/internal/application/console"
	"github.com/jhoicas/product-console/internal/application/ports"
	"github.com/jhoicas/product-console/internal/domain"
	"github.com/jhoicas/product-console/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba
// ──────────────────────────────────────────────────────────────────────────────

var errBoom = errors.New("boom")

// fakeService registra cada llamada en un log compartido con el notificador,
// así los tests pueden verificar el orden aviso → reinicio → recarga.
type fakeService struct {
	mu    sync.Mutex
	log   *[]string
	list  []entity.Product
	calls struct{ list, insert, update, delete int }

	inserted []entity.Product
	updated  []entity.Product
	deleted  []string

	listErr, insertErr, updateErr, deleteErr error

	// onList se ejecuta dentro de List (para observar el estado de la consola en ese instante)
	onList func()
	// insertGate bloquea Insert hasta que se cierre
	insertGate chan struct{}
	insertIn   chan struct{}
}

func (f *fakeService) record(s string) {
	f.mu.Lock()
	*f.log = append(*f.log, s)
	f.mu.Unlock()
}

func (f *fakeService) List(ctx context.Context) ([]entity.Product, error) {
	f.record("list")
	f.calls.list++
	if f.onList != nil {
		f.onList()
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]entity.Product(nil), f.list...), nil
}

func (f *fakeService) Insert(ctx context.Context, p entity.Product) error {
	f.record("insert")
	f.calls.insert++
	if f.insertIn != nil {
		close(f.insertIn)
	}
	if f.insertGate != nil {
		<-f.insertGate
	}
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, p)
	return nil
}

func (f *fakeService) Update(ctx context.Context, p entity.Product) error {
	f.record("update")
	f.calls.update++
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, p)
	return nil
}

func (f *fakeService) Delete(ctx context.Context, id string) error {
	f.record("delete")
	f.calls.delete++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type harness struct {
	svc     *fakeService
	console *console.Console
	log     []string
	notices []ports.Notice
}

func newHarness() *harness {
	h := &harness{}
	h.svc = &fakeService{log: &h.log}
	h.console = console.New(h.svc, ports.NotifierFunc(func(n ports.Notice) {
		h.notices = append(h.notices, n)
		h.svc.record("notify:" + n.Message)
	}))
	return h
}

func (h *harness) fill(t *testing.T, p entity.Product) {
	t.Helper()
	for _, f := range entity.Fields {
		v, _ := p.Get(f)
		require.NoError(t, h.console.UpdateField(f, v))
	}
}

func confirm(answer bool) ports.Confirmer {
	return ports.ConfirmFunc(func(context.Context, string) bool { return answer })
}

var (
	winProduct = entity.Product{ID: "1", Name: "Win", OS: "Windows", Price: "10"}
	macProduct = entity.Product{ID: "2", Name: "Mac", OS: "macOS", Price: "20"}
)

// ──────────────────────────────────────────────────────────────────────────────
// Submit en modo inserción
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_InsertaYRecarga(t *testing.T) {
	h := newHarness()
	h.svc.list = []entity.Product{winProduct}
	h.fill(t, winProduct)

	var draftAtRefresh entity.Product
	h.svc.onList = func() { draftAtRefresh = h.console.Snapshot().Draft }

	require.NoError(t, h.console.Submit(context.Background()))

	assert.Equal(t, []string{"insert", "notify:" + console.MsgInsertOK, "list"}, h.log,
		"una inserción, luego el aviso y luego exactamente una recarga")
	require.Len(t, h.svc.inserted, 1)
	assert.Equal(t, winProduct, h.svc.inserted[0])

	assert.True(t, draftAtRefresh.IsEmpty(), "el borrador se reinicia antes de la recarga")

	v := h.console.Snapshot()
	assert.Equal(t, entity.EmptyProduct(), v.Draft)
	assert.False(t, v.Mode.IsEditing())
	assert.Equal(t, []entity.Product{winProduct}, v.Collection)
}

func TestSubmit_AvisoAntesDelReinicio(t *testing.T) {
	h := newHarness()

	var draftAtNotice entity.Product
	c := console.New(h.svc, ports.NotifierFunc(func(n ports.Notice) {
		draftAtNotice = h.console.Snapshot().Draft
	}))
	h.console = c
	h.fill(t, winProduct)

	require.NoError(t, c.Submit(context.Background()))
	assert.Equal(t, winProduct, draftAtNotice, "el aviso de éxito ocurre antes de vaciar el borrador")
}

func TestSubmit_FalloInsercion_NoCambiaEstado(t *testing.T) {
	h := newHarness()
	h.svc.list = []entity.Product{macProduct}
	require.NoError(t, h.console.FetchCollection(context.Background()))
	h.log = nil
	h.fill(t, winProduct)
	h.svc.insertErr = errBoom

	err := h.console.Submit(context.Background())
	require.ErrorIs(t, err, errBoom)

	assert.Equal(t, []string{"insert", "notify:" + console.MsgOperationFailed}, h.log, "sin recarga tras un fallo")
	v := h.console.Snapshot()
	assert.Equal(t, winProduct, v.Draft)
	assert.False(t, v.Mode.IsEditing())
	assert.Equal(t, []entity.Product{macProduct}, v.Collection)
	require.Len(t, h.notices, 1)
	assert.Equal(t, ports.NoticeFailure, h.notices[0].Kind)
}

func TestSubmit_FalloRecarga_SeConsideraExitoso(t *testing.T) {
	h := newHarness()
	h.fill(t, winProduct)
	h.svc.listErr = errBoom

	require.NoError(t, h.console.Submit(context.Background()))
	assert.Equal(t, 1, h.svc.calls.list)
	require.Len(t, h.notices, 1, "el fallo de recarga no genera aviso")
	assert.Equal(t, console.MsgInsertOK, h.notices[0].Message)
	assert.True(t, h.console.Snapshot().Draft.IsEmpty())
}

func TestSubmit_CamposObligatorios(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.console.UpdateField(entity.FieldID, "7"))
	require.NoError(t, h.console.UpdateField(entity.FieldName, "   "))

	err := h.console.Submit(context.Background())
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, h.svc.inserted)
	assert.Zero(t, h.svc.calls.insert+h.svc.calls.list)
	require.Len(t, h.notices, 1)
	assert.Equal(t, console.MsgRequiredFields, h.notices[0].Message)
	assert.Equal(t, "7", h.console.Snapshot().Draft.ID)
}

func TestSubmit_EnvioConcurrente_RetornaBusy(t *testing.T) {
	h := newHarness()
	h.fill(t, winProduct)
	h.svc.insertGate = make(chan struct{})
	h.svc.insertIn = make(chan struct{})

	done := make(chan error, 1)
	go func() { done <- h.console.Submit(context.Background()) }()
	<-h.svc.insertIn

	err := h.console.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrBusy)

	close(h.svc.insertGate)
	require.NoError(t, <-done)
	assert.Equal(t, 1, h.svc.calls.insert, "el segundo envío no llega a la red")
}

// ──────────────────────────────────────────────────────────────────────────────
// Submit en modo edición
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_Edicion_ActualizaYSaleDeEdicion(t *testing.T) {
	h := newHarness()
	h.console.StartEdit(macProduct)
	require.NoError(t, h.console.UpdateField(entity.FieldPrice, "25"))

	require.NoError(t, h.console.Submit(context.Background()))

	assert.Zero(t, h.svc.calls.insert, "en edición nunca se inserta")
	require.Len(t, h.svc.updated, 1)
	assert.Equal(t, entity.Product{ID: "2", Name: "Mac", OS: "macOS", Price: "25"}, h.svc.updated[0])
	assert.Equal(t, []string{"update", "notify:" + console.MsgUpdateOK, "list"}, h.log)

	v := h.console.Snapshot()
	assert.False(t, v.Mode.IsEditing())
	assert.Equal(t, entity.EmptyProduct(), v.Draft)
}

func TestSubmit_FalloActualizacion_SigueEnEdicion(t *testing.T) {
	h := newHarness()
	h.console.StartEdit(macProduct)
	h.svc.updateErr = errBoom

	require.Error(t, h.console.Submit(context.Background()))

	v := h.console.Snapshot()
	assert.True(t, v.Mode.IsEditing())
	assert.Equal(t, macProduct, v.Draft)
	assert.Zero(t, h.svc.calls.list)
}

func TestStartEdit_CopiaYBloqueaID(t *testing.T) {
	h := newHarness()
	h.svc.list = []entity.Product{macProduct}
	require.NoError(t, h.console.FetchCollection(context.Background()))

	row, ok := h.console.Find("2")
	require.True(t, ok)
	h.console.StartEdit(row)

	v := h.console.Snapshot()
	assert.Equal(t, macProduct, v.Draft)
	id, editing := v.Mode.OriginalID()
	assert.True(t, editing)
	assert.Equal(t, "2", id)

	assert.ErrorIs(t, h.console.UpdateField(entity.FieldID, "99"), domain.ErrIDLocked)

	require.NoError(t, h.console.UpdateField(entity.FieldName, "MacBook"))
	assert.Equal(t, "Mac", h.console.Snapshot().Collection[0].Name, "editar el borrador no modifica la fila original")
}

func TestStartEditCancelEdit_SinRed(t *testing.T) {
	h := newHarness()
	h.console.StartEdit(macProduct)
	h.console.CancelEdit()

	v := h.console.Snapshot()
	assert.Equal(t, entity.EmptyProduct(), v.Draft)
	assert.False(t, v.Mode.IsEditing())
	assert.Empty(t, h.log)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateField / FetchCollection
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateField_UnSoloCampo(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.console.UpdateField(entity.FieldOS, "Linux"))
	assert.Equal(t, entity.Product{OS: "Linux"}, h.console.Snapshot().Draft)

	assert.ErrorIs(t, h.console.UpdateField("color", "rojo"), domain.ErrUnknownField)
	assert.Empty(t, h.console.Snapshot().Collection)
}

func TestFetchCollection_FalloNoTocaColeccionNiAvisa(t *testing.T) {
	h := newHarness()
	h.svc.list = []entity.Product{winProduct, macProduct}
	require.NoError(t, h.console.FetchCollection(context.Background()))

	h.svc.listErr = errBoom
	require.ErrorIs(t, h.console.FetchCollection(context.Background()), errBoom)

	assert.Equal(t, []entity.Product{winProduct, macProduct}, h.console.Snapshot().Collection)
	assert.Empty(t, h.notices)
}

func TestFetchCollection_ReemplazaCompleta(t *testing.T) {
	h := newHarness()
	h.svc.list = []entity.Product{winProduct, macProduct}
	require.NoError(t, h.console.FetchCollection(context.Background()))

	h.svc.list = []entity.Product{macProduct}
	require.NoError(t, h.console.FetchCollection(context.Background()))
	assert.Equal(t, []entity.Product{macProduct}, h.console.Snapshot().Collection)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteProduct
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteProduct_SinConfirmacion_NoHaceNada(t *testing.T) {
	h := newHarness()
	err := h.console.DeleteProduct(context.Background(), "2", confirm(false))

	assert.ErrorIs(t, err, domain.ErrCancelled)
	assert.Empty(t, h.log, "sin confirmación no hay llamada de red")
	assert.Empty(t, h.notices)
}

func TestDeleteProduct_Confirmado(t *testing.T) {
	h := newHarness()
	var prompt string
	err := h.console.DeleteProduct(context.Background(), "2", ports.ConfirmFunc(func(_ context.Context, p string) bool {
		prompt = p
		return true
	}))

	require.NoError(t, err)
	assert.Equal(t, console.DeletePrompt, prompt)
	assert.Equal(t, []string{"2"}, h.svc.deleted)
	assert.Equal(t, []string{"delete", "notify:" + console.MsgDeleteOK, "list"}, h.log)
}

func TestDeleteProduct_Fallo(t *testing.T) {
	h := newHarness()
	h.svc.list = []entity.Product{macProduct}
	require.NoError(t, h.console.FetchCollection(context.Background()))
	h.log = nil
	h.svc.deleteErr = errBoom

	require.ErrorIs(t, h.console.DeleteProduct(context.Background(), "2", confirm(true)), errBoom)

	assert.Equal(t, []string{"delete", "notify:" + console.MsgDeleteFailed}, h.log)
	assert.Equal(t, []entity.Product{macProduct}, h.console.Snapshot().Collection)
}
