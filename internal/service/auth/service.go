// Package auth handles signup, login and session token verification.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tinoosan/daftar/internal/errs"
	"github.com/tinoosan/daftar/internal/ledger"
)

var (
	ErrPasswordMismatch   = fmt.Errorf("%w: passwords do not match", errs.ErrUnprocessable)
	ErrEmailTaken         = fmt.Errorf("%w: email already registered", errs.ErrConflict)
	ErrEmailNotRegistered = fmt.Errorf("%w: email is not registered", errs.ErrUnauthorized)
	ErrInvalidPassword    = fmt.Errorf("%w: invalid password", errs.ErrUnauthorized)
)

const (
	MaxEmailLen    = 254
	MinPasswordLen = 6
	// bcrypt ignores input past 72 bytes
	MaxPasswordLen = 72
)

type Repo interface {
	// UserByEmail looks up by normalized email; errs.ErrNotFound when absent.
	UserByEmail(ctx context.Context, email string) (ledger.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (ledger.User, error)
}

type Writer interface {
	// CreateUser returns errs.ErrConflict when the email is taken.
	CreateUser(ctx context.Context, u ledger.User) (ledger.User, error)
}

// Session is an issued login token.
type Session struct {
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
}

type Service interface {
	Signup(ctx context.Context, email, password, confirm string) (ledger.User, error)
	Login(ctx context.Context, email, password string) (Session, error)
	// Verify validates a token and returns the user id it was issued for.
	Verify(token string) (uuid.UUID, error)
}

type Options struct {
	Secret []byte
	TTL    time.Duration
	// Cost is the bcrypt cost; zero means DefaultCost.
	Cost int
	Now  func() time.Time
}

type service struct {
	repo   Repo
	writer Writer
	opts   Options
}

func New(repo Repo, writer Writer, opts Options) Service {
	if opts.Cost == 0 {
		opts.Cost = DefaultCost
	}
	if opts.TTL <= 0 {
		opts.TTL = 2 * time.Hour
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &service{repo: repo, writer: writer, opts: opts}
}

// NormalizeEmail trims and lower-cases email.
func NormalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

func validEmail(email string) bool {
	if email == "" || len(email) > MaxEmailLen {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t\r\n")
}

func (s *service) Signup(ctx context.Context, email, password, confirm string) (ledger.User, error) {
	email = NormalizeEmail(email)
	if !validEmail(email) {
		return ledger.User{}, fmt.Errorf("%w: invalid email", errs.ErrInvalid)
	}
	if password != confirm {
		return ledger.User{}, ErrPasswordMismatch
	}
	if len(password) < MinPasswordLen || len(password) > MaxPasswordLen {
		return ledger.User{}, fmt.Errorf("%w: password must be %d to %d bytes", errs.ErrInvalid, MinPasswordLen, MaxPasswordLen)
	}
	if _, err := s.repo.UserByEmail(ctx, email); err == nil {
		return ledger.User{}, ErrEmailTaken
	} else if !errors.Is(err, errs.ErrNotFound) {
		return ledger.User{}, err
	}
	hash, err := HashPassword(password, s.opts.Cost)
	if err != nil {
		return ledger.User{}, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.writer.CreateUser(ctx, ledger.User{ID: uuid.New(), Email: email, PasswordHash: hash, CreatedAt: s.opts.Now().UTC()})
	if errors.Is(err, errs.ErrConflict) {
		return ledger.User{}, ErrEmailTaken
	}
	return u, err
}

func (s *service) Login(ctx context.Context, email, password string) (Session, error) {
	u, err := s.repo.UserByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, errs.ErrNotFound) {
		return Session{}, ErrEmailNotRegistered
	}
	if err != nil {
		return Session{}, err
	}
	if err := VerifyPassword(u.PasswordHash, password); err != nil {
		return Session{}, ErrInvalidPassword
	}
	token, exp, err := signToken(s.opts.Secret, u.ID, s.opts.Now(), s.opts.TTL)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, UserID: u.ID, ExpiresAt: exp}, nil
}

func (s *service) Verify(token string) (uuid.UUID, error) {
	if strings.TrimSpace(token) == "" {
		return uuid.Nil, fmt.Errorf("%w: missing token", errs.ErrUnauthorized)
	}
	return parseToken(s.opts.Secret, token, s.opts.Now)
}
