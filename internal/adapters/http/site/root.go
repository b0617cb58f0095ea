// Package site serves the built single-page frontend from disk.
package site

import (
	"context"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// NotBuiltMessage is returned with a 404 while the static directory has
// no index.html.
const NotBuiltMessage = "Frontend not built. Please run npm run build."

const indexFile = "index.html"

// Register attaches the frontend to the catch-all route of mux. The
// pattern carries no method so more specific routes such as "/api/"
// still take precedence.
func Register(_ context.Context, mux *http.ServeMux, dir string) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/", NewRootHandler(dir))
}

// RootHandler serves files from dir and falls back to index.html for any
// path that is not a file, so client-side routes survive a reload.
type RootHandler struct {
	dir   string
	files http.Handler
}

// NewRootHandler creates a handler for the build output in dir.
func NewRootHandler(dir string) *RootHandler {
	return &RootHandler{
		dir:   dir,
		files: http.FileServer(http.Dir(dir)),
	}
}

// Built reports whether dir holds an index.html.
func (h *RootHandler) Built() bool {
	if h.dir == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(h.dir, indexFile))
	return err == nil && !info.IsDir()
}

// ServeHTTP implements http.Handler.
func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if !h.Built() {
		http.Error(w, NotBuiltMessage, http.StatusNotFound)
		return
	}

	name := path.Clean("/" + r.URL.Path)
	if name != "/" && h.isFile(name) {
		h.files.ServeHTTP(w, r)
		return
	}

	http.ServeFile(w, r, filepath.Join(h.dir, indexFile))
}

func (h *RootHandler) isFile(name string) bool {
	rel := filepath.FromSlash(strings.TrimPrefix(name, "/"))
	info, err := os.Stat(filepath.Join(h.dir, rel))
	return err == nil && !info.IsDir()
}
