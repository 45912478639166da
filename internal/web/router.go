// Package web serves the browser client: the server-rendered page shell and
// the embedded static assets. All data access from the page goes through
// the JSON API.
package web

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/breeders/internal/store"
	webembed "github.com/erazemk/breeders/web"
)

// PageTitle is shown in the browser tab and the page header.
const PageTitle = "Pug Breeders Directory"

// Server holds the dependencies of the page handlers.
type Server struct {
	Store        *store.Store
	Templates    *Templates
	AssetVersion string
}

// NewRouter creates the web page router.
func NewRouter(st *store.Store) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	static := webembed.StaticFS()
	version, err := assetVersion(static)
	if err != nil {
		return nil, err
	}

	s := &Server{
		Store:        st,
		Templates:    templates,
		AssetVersion: version,
	}

	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	mux.HandleFunc("GET /{$}", s.Index)

	return mux, nil
}

// Index handles GET /. The breeder list is only rendered for the noscript
// fallback; the script reloads it from the API.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	breeders, err := s.Store.List(r.Context())
	if err != nil {
		slog.Error("failed to list breeders for index page", "error", err)
	}

	s.Templates.Render(w, "index.html", PageData{
		Title:        PageTitle,
		AssetVersion: s.AssetVersion,
		Breeders:     breeders,
	})
}
