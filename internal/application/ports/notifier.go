package ports

import "context"

// NoticeKind clasifica un aviso al usuario.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeFailure NoticeKind = "failure"
	NoticeWarning NoticeKind = "warning"
)

// Notice aviso bloqueante para el usuario (equivalente a un alert).
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Notifier recibe los avisos que produce la consola.
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapta una función a Notifier.
type NotifierFunc func(n Notice)

// Notify implementa Notifier.
func (f NotifierFunc) Notify(n Notice) { f(n) }

// Confirmer pide confirmación interactiva al usuario. false aborta la operación.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapta una función a Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm implementa Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }
