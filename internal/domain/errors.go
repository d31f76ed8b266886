package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnknownField = errors.New("campo desconocido")
	ErrIDLocked     = errors.New("el id no se puede modificar en modo edición")
	ErrCancelled    = errors.New("operación cancelada por el usuario")
	ErrBusy         = errors.New("ya hay una operación en curso")
	ErrRemote       = errors.New("el servicio de productos respondió con error")
)
