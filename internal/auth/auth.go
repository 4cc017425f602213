// Package auth implements the simulated sign-in: any well-formed email and
// non-empty password is accepted after a short delay, and the session is kept
// in a signed cookie.
package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"studyfortress/internal/platform/logger"
)

const CookieName = "sf_session"

var ErrInvalidSession = errors.New("auth: invalid session")

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// User is the signed-in principal. ID is derived from the email, so the same
// email always maps to the same workspaces.
type User struct {
	ID    string
	Email string
}

func userFor(email string) User {
	email = strings.ToLower(strings.TrimSpace(email))
	return User{
		ID:    uuid.NewSHA1(uuid.NameSpaceOID, []byte(email)).String(),
		Email: email,
	}
}

type Claims struct {
	jwt.RegisteredClaims
}

type Options struct {
	Secret string
	TTL    time.Duration
	Delay  time.Duration
	Secure bool
}

type Service struct {
	secret    []byte
	ttl       time.Duration
	delay     time.Duration
	secure    bool
	validator *Validator
	log       *logger.Logger
	now       func() time.Time
}

func New(opts Options, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		secret:    []byte(opts.Secret),
		ttl:       opts.TTL,
		delay:     opts.Delay,
		secure:    opts.Secure,
		validator: NewValidator(),
		log:       log,
		now:       time.Now,
	}
}

// Login validates creds, waits out the configured delay and returns a signed
// session token. There is no credential store.
func (s *Service) Login(ctx context.Context, creds Credentials) (User, string, error) {
	if err := s.validator.Struct(creds); err != nil {
		return User{}, "", err
	}
	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return User{}, "", errors.Wrap(ctx.Err(), "auth: login cancelled")
		case <-t.C:
		}
	}
	u := userFor(creds.Email)
	token, err := s.Issue(u)
	if err != nil {
		return User{}, "", err
	}
	s.log.Info("login", "email", u.Email, "user_id", u.ID)
	return u, token, nil
}

// Issue signs a session token for u.
func (s *Service) Issue(u User) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Email,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "auth: sign token")
	}
	return signed, nil
}

// Parse verifies a session token and returns its user.
func (s *Service) Parse(tokenString string) (User, error) {
	if tokenString == "" {
		return User{}, ErrInvalidSession
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return User{}, errors.Wrap(ErrInvalidSession, err.Error())
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return User{}, ErrInvalidSession
	}
	return userFor(claims.Subject), nil
}

// SetCookie stores token in the session cookie.
func (s *Service) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie ends the session.
func (s *Service) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest returns the user carried by the request's session cookie.
func (s *Service) FromRequest(r *http.Request) (User, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return User{}, false
	}
	u, err := s.Parse(c.Value)
	if err != nil {
		return User{}, false
	}
	return u, true
}

// Require lets requests with a valid session through and sends everyone else
// to the login page.
func (s *Service) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := s.FromRequest(r)
		if !ok {
			if r.Header.Get("Hx-Request") == "true" {
				w.Header().Set("Hx-Redirect", "/login")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

type ctxKey struct{}

func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

func UserFrom(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(ctxKey{}).(User)
	return u, ok
}
