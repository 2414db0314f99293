package handlers

import (
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// LandingPage is the file served at "/"
const LandingPage = "songs.html"

// StaticHandler serves the landing page and files under the static root
type StaticHandler struct {
	staticDir string
	template  *template.Template
}

// NewStaticHandler creates a new static handler. The landing page template
// is parsed once, here; the router must install it when Template is set.
// A template that fails to parse is logged and the static copy is used.
func NewStaticHandler(staticDir, templatesDir string) *StaticHandler {
	h := &StaticHandler{staticDir: staticDir}

	path := filepath.Join(templatesDir, LandingPage)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return h
	}

	tmpl, err := template.ParseFiles(path)
	if err != nil {
		log.Printf("Could not load template %s, serving static %s instead: %v", path, LandingPage, err)
		return h
	}
	h.template = tmpl
	return h
}

// Template returns the parsed landing page template, or nil
func (h *StaticHandler) Template() *template.Template {
	return h.template
}

// Index renders the landing page template, falling back to the static copy
func (h *StaticHandler) Index(c *gin.Context) {
	if h.template != nil {
		c.HTML(http.StatusOK, LandingPage, gin.H{})
		return
	}

	if !h.serveFile(c, LandingPage) {
		notFound(c)
	}
}

// ServeStatic serves any unrouted GET path from the static root
func (h *StaticHandler) ServeStatic(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		notFound(c)
		return
	}

	if !h.serveFile(c, c.Request.URL.Path) {
		notFound(c)
	}
}

// ServePrefixed serves /static/*filepath from the static root
func (h *StaticHandler) ServePrefixed(c *gin.Context) {
	if !h.serveFile(c, c.Param("filepath")) {
		notFound(c)
	}
}

// serveFile writes the named file from the static root. It reports false
// when the file is missing or is a directory.
func (h *StaticHandler) serveFile(c *gin.Context, name string) bool {
	// http.Dir cleans the name and keeps it inside the root
	file, err := http.Dir(h.staticDir).Open(name)
	if err != nil {
		return false
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		return false
	}

	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), file)
	return true
}

// notFound writes gin's default 404 response
func notFound(c *gin.Context) {
	c.String(http.StatusNotFound, "404 page not found")
}
