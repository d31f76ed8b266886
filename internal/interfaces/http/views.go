package http

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed views
var viewsFS embed.FS

// NewViews motor de plantillas de la consola (HTML embebido en el binario).
func NewViews() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic("views embebidas: " + err.Error())
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("noticeClass", func(kind string) string {
		switch kind {
		case "success":
			return "notice notice-success"
		case "failure":
			return "notice notice-failure"
		default:
			return "notice notice-warning"
		}
	})
	return engine
}
