// Package views embeds the HTML templates of the search page.
package views

import (
	"embed"
	"net/http"

	"github.com/gofiber/template/html/v3"
)

//go:embed *.html layouts/*.html
var FS embed.FS

// NewEngine returns a template engine over the embedded views.
func NewEngine() *html.Engine {
	return html.NewFileSystem(http.FS(FS), ".html")
}
