// Package website serves static files from a public directory.
package website

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Brownie44l1/webserver/internal/request"
	"github.com/Brownie44l1/webserver/internal/response"
	"github.com/Brownie44l1/webserver/internal/router"
	"github.com/Brownie44l1/webserver/internal/server"
)

const (
	IndexFile = "index.html"
	HelloFile = "hello.html"
)

// Handler answers GET requests with files below its public root. Everything
// else, including paths that resolve outside the root, is a 404.
type Handler struct {
	root   string
	router *router.Router
	logger server.Logger
}

// New creates a handler for publicPath. The directory must exist.
func New(publicPath string, logger server.Logger) (*Handler, error) {
	if logger == nil {
		logger = server.NullLogger{}
	}

	abs, err := filepath.Abs(publicPath)
	if err != nil {
		return nil, fmt.Errorf("resolve public path %q: %w", publicPath, err)
	}
	root, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("resolve public path %q: %w", publicPath, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat public path %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("public path %q is not a directory", root)
	}

	h := &Handler{
		root:   root,
		router: router.New(),
		logger: logger,
	}
	h.router.GET("/", h.serveNamed(IndexFile))
	h.router.GET("/hello", h.serveNamed(HelloFile))
	h.router.GET("/*", h.serveFile)
	return h, nil
}

// Root returns the resolved public directory.
func (h *Handler) Root() string {
	return h.root
}

func (h *Handler) HandleRequest(req *request.Request) *response.Response {
	return h.router.HandleRequest(req)
}

func (h *Handler) serveNamed(name string) router.HandleFunc {
	return func(req *request.Request, _ router.Params) *response.Response {
		return h.fileResponse(name)
	}
}

func (h *Handler) serveFile(req *request.Request, params router.Params) *response.Response {
	return h.fileResponse(params["*"])
}

func (h *Handler) fileResponse(rel string) *response.Response {
	content, ok := h.readFile(rel)
	if !ok {
		return response.NotFound()
	}
	return response.Text(content)
}

// readFile returns the contents of rel below the root. Symlinks are resolved
// before the containment check, so a link pointing out of the root is refused.
func (h *Handler) readFile(rel string) (string, bool) {
	full := filepath.Join(h.root, filepath.FromSlash(rel))

	resolved, err := filepath.EvalSymlinks(full)
	if err != nil {
		h.logger.Debug("file not found", server.Field{Key: "path", Value: rel})
		return "", false
	}

	if !within(h.root, resolved) {
		h.logger.Warn("directory traversal attempt", server.Field{Key: "path", Value: rel})
		return "", false
	}

	info, err := os.Stat(resolved)
	if err != nil || info.IsDir() {
		return "", false
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		h.logger.Error("failed to read file",
			server.Field{Key: "path", Value: resolved},
			server.Field{Key: "error", Value: err},
		)
		return "", false
	}
	return string(data), true
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
