// Package web embeds the static chat UI served at the root path.
package web

import (
	"embed"
	"net/http"
)

//go:embed index.html static
var content embed.FS

// Handler serves the embedded UI: index.html at / and assets under /static/.
func Handler() http.Handler {
	return http.FileServer(http.FS(content))
}
