package v1

import (
	"net/http"

	"github.com/tinoosan/daftar/internal/service/source"
)

func (req sourceRequest) raw() source.RawInput {
	return source.RawInput{
		Name:   req.Name,
		Amount: string(req.Amount),
		Year:   string(req.Year),
		Month:  string(req.Month),
		Day:    string(req.Day),
	}
}

// GET /v1/sources
func (s *Server) listSources(w http.ResponseWriter, r *http.Request) {
	srcs, err := s.sources.List(r.Context(), userID(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]sourceResponse, 0, len(srcs))
	for _, src := range srcs {
		out = append(out, toSourceResponse(src))
	}
	toJSON(w, http.StatusOK, out)
}

// POST /v1/sources
func (s *Server) createSource(w http.ResponseWriter, r *http.Request) {
	var req sourceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	src, err := s.sources.Create(r.Context(), userID(r), req.raw())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	toJSON(w, http.StatusCreated, toSourceResponse(src))
}

// GET /v1/sources/{id}
func (s *Server) getSource(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	src, err := s.sources.Get(r.Context(), userID(r), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, toSourceResponse(src))
}

// PUT /v1/sources/{id}
func (s *Server) updateSource(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req sourceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	src, err := s.sources.Update(r.Context(), userID(r), id, req.raw())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, toSourceResponse(src))
}

// DELETE /v1/sources/{id}
func (s *Server) deleteSource(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.sources.Delete(r.Context(), userID(r), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
