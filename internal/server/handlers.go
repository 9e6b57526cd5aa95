package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/rclayout/pkg/buildinfo"
	"github.com/matzehuels/rclayout/pkg/errors"
	"github.com/matzehuels/rclayout/pkg/form"
	"github.com/matzehuels/rclayout/pkg/pipeline"
	"github.com/matzehuels/rclayout/pkg/store"
)

// LayoutRequest is the body of POST /v1/layouts.
type LayoutRequest struct {
	Form         form.Form `json:"form"`
	NoStdButtons bool      `json:"no_std_buttons,omitempty"`
	Raw          bool      `json:"raw,omitempty"`
}

// Summary is a list entry.
type Summary struct {
	ID        string `json:"id"`
	Form      string `json:"form"`
	Hash      string `json:"hash"`
	CreatedAt string `json:"created_at"`
}

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatText: "text/plain; charset=utf-8",
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if err := validateForm(req.Form); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{
		NoStdButtons: req.NoStdButtons,
		Raw:          req.Raw,
		Formats:      []string{pipeline.FormatJSON},
	}
	fr, err := s.runner.Process(r.Context(), req.Form, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec := store.NewRecord(req.Form, fr.Layout, fr.LayoutHash)
	if err := s.store.Save(r.Context(), rec); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("stored layout", "id", rec.ID, "form", rec.Form.ID, "cached", fr.CacheInfo.LayoutHit)

	w.Header().Set("Location", "/v1/layouts/"+rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

// validateForm runs the document schema over a single form so API input is
// held to the same rules as files.
func validateForm(f form.Form) error {
	data, err := json.Marshal(form.Document{Forms: []form.Form{f}})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "encode form")
	}
	return form.ValidateJSON(data)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	opts := store.ListOptions{Form: r.URL.Query().Get("form")}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		opts.Limit = n
	}

	recs, err := s.store.List(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]Summary, len(recs))
	for i, rec := range recs {
		out[i] = Summary{
			ID:        rec.ID,
			Form:      rec.Form.ID,
			Hash:      rec.Hash,
			CreatedAt: rec.CreatedAt.Format("2006-01-02T15:04:05.000Z07:00"),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"layouts": out})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.store.Get(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeUnsupported, err, "render"))
		return
	}
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{Formats: []string{format}, Detailed: r.URL.Query().Has("detailed")}
	artifacts, err := s.runner.Render(r.Context(), rec.Layout, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// requireID rejects ids that cannot name a record before touching the store.
func (s *Server) requireID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chi.URLParam(r, "id"); !store.ValidID(id) {
			s.writeError(w, r, errors.New(errors.ErrCodeLayoutNotFound, "layout %s not found", id))
			return
		}
		next.ServeHTTP(w, r)
	})
}
