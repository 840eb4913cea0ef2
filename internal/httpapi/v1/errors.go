package v1

import (
	"errors"
	"net/http"

	"github.com/tinoosan/daftar/internal/errs"
	"github.com/tinoosan/daftar/internal/service/auth"
	"github.com/tinoosan/daftar/internal/service/category"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
	toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string)   { writeErr(w, http.StatusBadRequest, msg, "bad_request") }
func notFound(w http.ResponseWriter)                 { writeErr(w, http.StatusNotFound, "not_found", "not_found") }
func unauthorized(w http.ResponseWriter, msg string) { writeErr(w, http.StatusUnauthorized, msg, "unauthorized") }

// fail maps a service error onto a status and code. Unrecognized errors are
// logged and answered with a generic 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidDate):
		writeErr(w, http.StatusUnprocessableEntity, err.Error(), "invalid_date")
	case errors.Is(err, errs.ErrInvalidAmount):
		writeErr(w, http.StatusUnprocessableEntity, err.Error(), "invalid_amount")
	case errors.Is(err, auth.ErrPasswordMismatch):
		writeErr(w, http.StatusUnprocessableEntity, err.Error(), "password_mismatch")
	case errors.Is(err, errs.ErrUnprocessable):
		writeErr(w, http.StatusUnprocessableEntity, err.Error(), "validation_error")
	case errors.Is(err, errs.ErrInvalid):
		writeErr(w, http.StatusBadRequest, err.Error(), "validation_error")
	case errors.Is(err, errs.ErrNotFound):
		notFound(w)
	case errors.Is(err, auth.ErrEmailTaken):
		writeErr(w, http.StatusConflict, err.Error(), "email_taken")
	case errors.Is(err, category.ErrNameTaken):
		writeErr(w, http.StatusConflict, err.Error(), "category_exists")
	case errors.Is(err, errs.ErrConflict):
		writeErr(w, http.StatusConflict, err.Error(), "conflict")
	case errors.Is(err, auth.ErrEmailNotRegistered):
		writeErr(w, http.StatusUnauthorized, err.Error(), "email_not_registered")
	case errors.Is(err, auth.ErrInvalidPassword):
		writeErr(w, http.StatusUnauthorized, err.Error(), "invalid_password")
	case errors.Is(err, errs.ErrUnauthorized):
		unauthorized(w, err.Error())
	case errors.Is(err, errs.ErrForbidden):
		writeErr(w, http.StatusForbidden, err.Error(), "forbidden")
	default:
		s.log.Error("request failed",
			"req_id", reqID(r),
			"user_id", userID(r),
			"method", r.Method,
			"path", r.URL.Path,
			"err", err,
		)
		writeErr(w, http.StatusInternalServerError, "internal error", "internal_error")
	}
}
