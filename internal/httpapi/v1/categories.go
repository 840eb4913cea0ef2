package v1

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// pathID parses the {id} URL parameter. It writes 404 for malformed ids, the
// same as for ids that do not exist.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		notFound(w)
		return uuid.Nil, false
	}
	return id, true
}

// GET /v1/categories
func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.categories.List(r.Context(), userID(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, toCategoryResponse(c))
	}
	toJSON(w, http.StatusOK, out)
}

// POST /v1/categories
func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := s.categories.Create(r.Context(), userID(r), req.Name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	toJSON(w, http.StatusCreated, toCategoryResponse(c))
}

// DELETE /v1/categories/{id} removes the category and every cost filed under it.
func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	n, err := s.categories.Delete(r.Context(), userID(r), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.log.Info("category deleted", "req_id", reqID(r), "user_id", userID(r), "category_id", id, "deleted_costs", n)
	toJSON(w, http.StatusOK, deleteCategoryResponse{ID: id, DeletedCosts: n})
}
