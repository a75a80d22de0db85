package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	errs "github.com/matzehuels/starpath/pkg/errors"
	"github.com/matzehuels/starpath/pkg/io"
	"github.com/matzehuels/starpath/pkg/pipeline"
	"github.com/matzehuels/starpath/pkg/store"
)

// maxBodyBytes bounds request bodies, maps included.
const maxBodyBytes = 8 << 20

// maxHistoryLimit bounds ?limit on history listings.
const maxHistoryLimit = 500

type handlers struct {
	logger     *log.Logger
	runner     *pipeline.Runner
	defaultMap *io.Document
}

type routeRequest struct {
	Source  string       `json:"source"`
	Target  string       `json:"target"`
	Map     *io.Document `json:"map,omitempty"`
	Refresh bool         `json:"refresh,omitempty"`
}

type historyResponse struct {
	Routes []store.Route `json:"routes"`
	Count  int           `json:"count"`
}

type errorResponse struct {
	Code    errs.Code `json:"code,omitempty"`
	Message string    `json:"message"`
}

func (h *handlers) createRoute(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	doc := h.defaultMap
	if req.Map != nil {
		if err := req.Map.Validate(); err != nil {
			writeError(w, err)
			return
		}
		doc = req.Map
	}
	if doc == nil {
		writeError(w, errs.New(errs.ErrCodeInvalidInput, "request has no map and the server has no default map"))
		return
	}

	res, err := h.runner.Navigate(r.Context(), *doc, pipeline.Options{
		Source:  req.Source,
		Target:  req.Target,
		Refresh: req.Refresh,
	})
	if err != nil {
		h.logger.Debug("navigate failed", "source", req.Source, "target", req.Target, "err", err)
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *handlers) getRoute(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	route, err := h.runner.Store.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("get route", "id", id, "err", err)
		writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "get route"))
		return
	}
	if route == nil {
		writeError(w, errs.New(errs.ErrCodeNotFound, "route %q not found", id))
		return
	}
	respondJSON(w, http.StatusOK, route)
}

func (h *handlers) listHistory(w http.ResponseWriter, r *http.Request) {
	limit := store.DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxHistoryLimit {
			writeError(w, errs.New(errs.ErrCodeInvalidInput, "limit must be between 1 and %d", maxHistoryLimit))
			return
		}
		limit = n
	}

	routes, err := h.runner.History(r.Context(), limit)
	if err != nil {
		h.logger.Error("list history", "err", err)
		writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "list history"))
		return
	}
	if routes == nil {
		routes = []store.Route{}
	}
	respondJSON(w, http.StatusOK, historyResponse{Routes: routes, Count: len(routes)})
}

// writeError maps an error code to an HTTP status.
func writeError(w http.ResponseWriter, err error) {
	code := errs.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidGraph, errs.ErrCodeInvalidLabel, errs.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case errs.ErrCodeUnknownNode, errs.ErrCodeNotFound:
		status = http.StatusNotFound
	case errs.ErrCodeNetwork, errs.ErrCodeTimeout:
		status = http.StatusBadGateway
	}
	respondJSON(w, status, errorResponse{Code: code, Message: errs.UserMessage(err)})
}
