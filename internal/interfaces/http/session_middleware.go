package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/product-console/internal/application/console"
)

// SessionCookie cookie con el id de la sesión de consola.
const SessionCookie = "console_sid"

// Locals key para la sesión en Fiber.
const LocalSession = "console_session"

// SessionMiddleware resuelve la sesión del navegador y la deja en c.Locals.
// Sin cookie, o con una cookie expirada, abre una sesión nueva (que carga la colección inicial).
// Solo se monta en GET /; el resto de rutas usa RequireSession.
func SessionMiddleware(reg *console.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, ok := reg.Get(c.Cookies(SessionCookie))
		if !ok {
			s = reg.Open(c.UserContext())
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookie,
				Value:    s.ID,
				Path:     "/",
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(LocalSession, s)
		return c.Next()
	}
}

// RequireSession deja en c.Locals la sesión existente; sin ella redirige (303) a "/"
// sin abrir sesión ni llamar al servicio remoto.
func RequireSession(reg *console.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, ok := reg.Get(c.Cookies(SessionCookie))
		if !ok {
			return c.Redirect("/", fiber.StatusSeeOther)
		}
		c.Locals(LocalSession, s)
		return c.Next()
	}
}

// GetSession devuelve la sesión del contexto (después de SessionMiddleware).
func GetSession(c *fiber.Ctx) *console.Session {
	s, _ := c.Locals(LocalSession).(*console.Session)
	return s
}
