// Package api exposes the controller over HTTP for local tooling.
//
// Every request builds its own Controller through the Factory, so the data
// directory is re-listed and the key re-read per request and no state is
// shared between requests.
package api

import (
	_ "embed"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-openapi/runtime/middleware"

	"github.com/jmcleod/topsecret/control"
)

// Factory builds a fresh Controller.
type Factory func() *control.Controller

// API holds the dependencies needed by the REST handlers.
type API struct {
	newController Factory
	logger        *slog.Logger
	basePath      string
}

//go:embed openapi.yaml
var openapiSpec []byte

// Option configures the API instance.
type Option func(*API)

// WithLogger sets the structured logger for request events.
// If not set, a default JSON logger writing to stderr is used.
func WithLogger(logger *slog.Logger) Option {
	return func(a *API) {
		a.logger = logger
	}
}

// WithBasePath sets the path the router is mounted at, used to link the
// documentation pages to the OpenAPI document. Default: "/api/v1".
func WithBasePath(p string) Option {
	return func(a *API) {
		a.basePath = p
	}
}

// New creates a new API instance.
func New(factory Factory, opts ...Option) *API {
	a := &API{
		newController: factory,
		basePath:      "/api/v1",
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return a
}

// Router returns a chi.Router with all API routes mounted.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})

	docsPath := strings.TrimPrefix(a.basePath, "/")

	r.Handle("/docs*", middleware.SwaggerUI(middleware.SwaggerUIOpts{
		SpecURL: a.basePath + "/openapi.yaml",
		Path:    path.Join(docsPath, "docs"),
	}, nil))

	r.Handle("/redoc*", middleware.Redoc(middleware.RedocOpts{
		SpecURL: a.basePath + "/openapi.yaml",
		Path:    path.Join(docsPath, "redoc"),
	}, nil))

	r.Group(func(r chi.Router) {
		r.Use(SecurityHeaders)
		r.Get("/files", a.ListFiles)
		r.Get("/files/{selection}", a.GetFile)
	})

	return r
}
