package console

// Mode estado del formulario: Creating (el próximo envío inserta) o Editing(originalID)
// (el próximo envío actualiza el producto originalID y el id queda bloqueado).
type Mode struct {
	editing    bool
	originalID string
}

// Creating modo inserción.
func Creating() Mode {
	return Mode{}
}

// Editing modo edición del producto con el id dado.
func Editing(originalID string) Mode {
	return Mode{editing: true, originalID: originalID}
}

// IsEditing indica si el próximo envío es una actualización.
func (m Mode) IsEditing() bool {
	return m.editing
}

// OriginalID id del producto en edición; ok es false en modo inserción.
func (m Mode) OriginalID() (id string, ok bool) {
	return m.originalID, m.editing
}

func (m Mode) String() string {
	if m.editing {
		return "editing(" + m.originalID + ")"
	}
	return "creating"
}
