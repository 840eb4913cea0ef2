package v1

import (
	"net/http"
	"strconv"

	"github.com/tinoosan/daftar/internal/service/expense"
)

// maxRecentDays bounds the ?days= window of the recent list.
const maxRecentDays = 366

func (req costRequest) raw() expense.RawInput {
	return expense.RawInput{
		Amount:     string(req.Amount),
		CategoryID: req.CategoryID,
		Year:       string(req.Year),
		Month:      string(req.Month),
		Day:        string(req.Day),
		Note:       req.Note,
	}
}

// GET /v1/costs?days=N lists costs of the last N days, newest first.
func (s *Server) listRecentCosts(w http.ResponseWriter, r *http.Request) {
	days := s.opts.RecentDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxRecentDays {
			badRequest(w, "days must be an integer between 1 and "+strconv.Itoa(maxRecentDays))
			return
		}
		days = n
	}
	costs, err := s.costs.ListRecent(r.Context(), userID(r), days)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]costResponse, 0, len(costs))
	for _, c := range costs {
		out = append(out, toCostResponse(c))
	}
	toJSON(w, http.StatusOK, out)
}

// POST /v1/costs
func (s *Server) createCost(w http.ResponseWriter, r *http.Request) {
	var req costRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := s.costs.Create(r.Context(), userID(r), req.raw())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	toJSON(w, http.StatusCreated, toCostResponse(c))
}

// GET /v1/costs/{id}
func (s *Server) getCost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := s.costs.Get(r.Context(), userID(r), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, toCostResponse(c))
}

// PUT /v1/costs/{id} replaces every field of the cost.
func (s *Server) updateCost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req costRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := s.costs.Update(r.Context(), userID(r), id, req.raw())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, toCostResponse(c))
}

// DELETE /v1/costs/{id}
func (s *Server) deleteCost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.costs.Delete(r.Context(), userID(r), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
