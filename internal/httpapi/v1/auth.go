package v1

import (
	"net/http"
	"time"
)

// POST /v1/auth/signup
func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	u, err := s.auth.Signup(r.Context(), req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.log.Info("user signed up", "req_id", reqID(r), "user_id", u.ID)
	toJSON(w, http.StatusCreated, toUserResponse(u))
}

// POST /v1/auth/login
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		MaxAge:   int(sess.ExpiresAt.Sub(s.opts.Now()).Seconds()),
		HttpOnly: true,
		Secure:   s.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	toJSON(w, http.StatusOK, sessionResponse{Token: sess.Token, UserID: sess.UserID, ExpiresAt: sess.ExpiresAt})
}

// POST /v1/auth/logout clears the session cookie. Tokens are stateless, so a
// bearer client logs out by discarding its token.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// GET /v1/auth/me
func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	u, err := s.store.UserByID(r.Context(), userID(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, toUserResponse(u))
}
