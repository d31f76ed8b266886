package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/product-console/internal/application/console"
	"github.com/jhoicas/product-console/internal/application/dto"
	"github.com/jhoicas/product-console/internal/application/ports"
	"github.com/jhoicas/product-console/internal/domain"
	"github.com/jhoicas/product-console/internal/domain/entity"
)

// MsgRowGone aviso cuando la fila pedida ya no está en la colección de la sesión.
const MsgRowGone = "El producto ya no está en la lista"

// ConsoleHandler páginas HTML de la consola. Todo el estado vive en la sesión; cada POST responde 303 a "/".
type ConsoleHandler struct {
	log zerolog.Logger
}

// NewConsoleHandler construye el handler.
func NewConsoleHandler(log zerolog.Logger) *ConsoleHandler {
	return &ConsoleHandler{log: log}
}

type formField struct {
	Name     string
	Label    string
	Type     string
	Value    string
	Disabled bool
}

type indexPage struct {
	Title    string
	Editing  bool
	Fields   []formField
	Products []entity.Product
	Notices  []ports.Notice
}

type confirmPage struct {
	Title   string
	Prompt  string
	ID      string
	Product *entity.Product
	Notices []ports.Notice
}

var fieldLabels = map[string]string{
	entity.FieldID:    "ID",
	entity.FieldName:  "Nombre",
	entity.FieldOS:    "Sistema operativo",
	entity.FieldPrice: "Precio",
}

// Index formulario (borrador) + tabla (colección) + avisos pendientes.
func (h *ConsoleHandler) Index(c *fiber.Ctx) error {
	s := GetSession(c)
	v := s.Console.Snapshot()

	fields := make([]formField, 0, len(entity.Fields))
	for _, name := range entity.Fields {
		value, _ := v.Draft.Get(name)
		f := formField{Name: name, Label: fieldLabels[name], Type: "text", Value: value}
		if name == entity.FieldID {
			f.Type = "number"
			f.Disabled = v.Mode.IsEditing()
		}
		fields = append(fields, f)
	}

	title := "Agregar producto"
	if v.Mode.IsEditing() {
		title = "Editar producto"
	}
	return c.Render("index", indexPage{
		Title:    title,
		Editing:  v.Mode.IsEditing(),
		Fields:   fields,
		Products: v.Collection,
		Notices:  s.Flash.Drain(),
	}, "layouts/main")
}

// Submit aplica los campos del formulario al borrador y lo envía.
// En edición el campo id llega deshabilitado y se ignora.
func (h *ConsoleHandler) Submit(c *fiber.Ctx) error {
	s := GetSession(c)
	editing := s.Console.Snapshot().Mode.IsEditing()
	for _, name := range entity.Fields {
		if name == entity.FieldID && editing {
			continue
		}
		if err := s.Console.UpdateField(name, c.FormValue(name)); err != nil {
			h.log.Warn().Err(err).Str("field", name).Msg("campo del formulario rechazado")
		}
	}
	if err := s.Console.Submit(c.UserContext()); err != nil {
		h.logOutcome(err, "submit")
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// UpdateField cambia un solo campo del borrador (equivalente a una pulsación en el input).
func (h *ConsoleHandler) UpdateField(c *fiber.Ctx) error {
	s := GetSession(c)
	err := s.Console.UpdateField(c.Params("name"), c.FormValue("value"))
	switch {
	case err == nil:
		return c.SendStatus(fiber.StatusNoContent)
	case errors.Is(err, domain.ErrUnknownField):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_FIELD", Message: err.Error()})
	case errors.Is(err, domain.ErrIDLocked):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ID_LOCKED", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// Cancel sale del modo edición.
func (h *ConsoleHandler) Cancel(c *fiber.Ctx) error {
	GetSession(c).Console.CancelEdit()
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Edit copia la fila :id de la colección al borrador.
func (h *ConsoleHandler) Edit(c *fiber.Ctx) error {
	s := GetSession(c)
	p, ok := s.Console.Find(c.Params("id"))
	if !ok {
		s.Flash.Notify(ports.Notice{Kind: ports.NoticeWarning, Message: MsgRowGone})
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	s.Console.StartEdit(p)
	return c.Redirect("/", fiber.StatusSeeOther)
}

// ConfirmDelete página de confirmación (equivalente a window.confirm).
func (h *ConsoleHandler) ConfirmDelete(c *fiber.Ctx) error {
	s := GetSession(c)
	id := c.Params("id")
	page := confirmPage{Title: "Eliminar producto", Prompt: console.DeletePrompt, ID: id, Notices: s.Flash.Drain()}
	if p, ok := s.Console.Find(id); ok {
		page.Product = &p
	}
	return c.Render("confirm_delete", page, "layouts/main")
}

// Delete elimina :id solo si el formulario trae confirm=yes.
func (h *ConsoleHandler) Delete(c *fiber.Ctx) error {
	s := GetSession(c)
	confirmed := c.FormValue("confirm") == "yes"
	err := s.Console.DeleteProduct(c.UserContext(), c.Params("id"), ports.ConfirmFunc(func(context.Context, string) bool {
		return confirmed
	}))
	if err != nil {
		h.logOutcome(err, "delete")
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// los fallos remotos ya quedaron registrados por la consola; aquí solo el resultado de la acción
func (h *ConsoleHandler) logOutcome(err error, action string) {
	switch {
	case errors.Is(err, domain.ErrCancelled):
		h.log.Debug().Str("action", action).Msg("cancelado por el usuario")
	case errors.Is(err, domain.ErrBusy), errors.Is(err, domain.ErrInvalidInput):
		h.log.Info().Err(err).Str("action", action).Msg("acción rechazada")
	default:
		h.log.Debug().Err(err).Str("action", action).Msg("acción fallida")
	}
}
