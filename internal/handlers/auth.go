package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"studyfortress/internal/auth"
	"studyfortress/internal/platform/logger"
	"studyfortress/internal/viewmodel"
	"studyfortress/views/pages"
)

type AuthHandler struct {
	auth  *auth.Service
	delay time.Duration
	log   *logger.Logger
}

func NewAuthHandler(svc *auth.Service, delay time.Duration, log *logger.Logger) *AuthHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthHandler{auth: svc, delay: delay, log: log}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/login", h.loginPage)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
}

func (h *AuthHandler) loginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.auth.FromRequest(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	render(w, r, pages.LoginPage(viewmodel.LoginPage{SubmitDelay: int(h.delay / time.Millisecond)}))
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	creds := auth.Credentials{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
	_, token, err := h.auth.Login(r.Context(), creds)
	if err != nil {
		data := viewmodel.LoginPage{Email: creds.Email, SubmitDelay: int(h.delay / time.Millisecond)}
		var verr *auth.ValidationError
		if errors.As(err, &verr) {
			data.EmailError = verr.For("email")
			data.PassError = verr.For("password")
			renderStatus(w, r, http.StatusUnprocessableEntity, pages.LoginPage(data))
			return
		}
		h.log.Warn("login failed", "email", creds.Email, "error", err)
		data.FormError = "Sign in failed. Please try again."
		renderStatus(w, r, http.StatusInternalServerError, pages.LoginPage(data))
		return
	}
	h.auth.SetCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	h.auth.ClearCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
