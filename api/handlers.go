package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jmcleod/topsecret/catalog"
	"github.com/jmcleod/topsecret/control"
)

// ListFiles handles GET /files.
func (a *API) ListFiles(w http.ResponseWriter, r *http.Request) {
	res := a.newController().List()
	if !res.OK() {
		a.logger.Warn("list files failed", slog.String("kind", string(res.Err.Kind)), slog.String("error", res.Err.Error()))
		mapError(w, res.Err)
		return
	}

	resp := ListFilesResponse{Files: res.Entries}
	if res.Outcome == control.OutcomeEmpty {
		resp.Files = []catalog.Entry{}
		resp.Message = control.NoFilesFound
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetFile handles GET /files/{selection}?key=name.
func (a *API) GetFile(w http.ResponseWriter, r *http.Request) {
	selection := chi.URLParam(r, "selection")
	key := r.URL.Query().Get("key")

	if key != "" && !isBareName(key) {
		mapError(w, control.NewError(control.KindInvalidArguments, "key must be a file name without directories"))
		return
	}

	index, err := control.ParseSelection(selection)
	if err != nil {
		mapError(w, err)
		return
	}

	res := a.newController().Select(index, key)
	if !res.OK() {
		a.logger.Info("decode failed",
			slog.Int("selection", index),
			slog.String("kind", string(res.Err.Kind)))
		mapError(w, res.Err)
		return
	}

	a.logger.Info("file decoded",
		slog.Int("selection", index),
		slog.String("file", res.File.Name))

	writeJSON(w, http.StatusOK, GetFileResponse{
		Index: res.File.Index,
		Name:  res.File.Name,
		Text:  res.Output,
	})
}

func isBareName(name string) bool {
	return !strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..")
}
