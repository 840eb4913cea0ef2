package v1

import (
	"net/http"
	"strconv"
	"time"

	chi "github.com/go-chi/chi/v5"
)

// GET /v1/reports/{year}/{month} with a Jalali year and month (1..12).
func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		badRequest(w, "year must be an integer")
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		badRequest(w, "month must be an integer")
		return
	}

	start := time.Now()
	res, err := s.reports.ComputeReport(r.Context(), userID(r), year, month)
	observeReport(start, err)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	resp, err := toReportResponse(res)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, resp)
}
