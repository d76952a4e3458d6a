package handler

import (
	"net/http"

	"emojifeedback/internal/apperrors"
	"emojifeedback/internal/logger"
	middleware "emojifeedback/internal/midlleware"
	"emojifeedback/internal/service"
)

type AuthHandler struct {
	auth     *service.AuthService
	sessions *middleware.SessionManager
	view     *Renderer
}

func NewAuthHandler(auth *service.AuthService, sessions *middleware.SessionManager, view *Renderer) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, view: view}
}

// Login - GET показывает форму, POST проверяет пароль и открывает сессию
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if u := middleware.CurrentUser(r.Context()); u != nil {
		http.Redirect(w, r, middleware.HomePath(u), http.StatusSeeOther)
		return
	}

	if r.Method != http.MethodPost {
		h.view.Render(w, r, http.StatusOK, "login.html", map[string]interface{}{"Title": "Log in"})
		return
	}

	username := r.FormValue("username")
	u, err := h.auth.Login(r.Context(), username, r.FormValue("password"))
	if err != nil {
		h.sessions.AddFlash(w, r, "error", flashError(r, err, "Login failed"))
		h.view.Render(w, r, http.StatusUnauthorized, "login.html", map[string]interface{}{
			"Title":    "Log in",
			"Username": username,
		})
		return
	}

	if err := h.sessions.Login(w, r, u); err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("failed to save session")
		h.view.Error(w, r, http.StatusInternalServerError, "Could not start a session")
		return
	}

	logger.FromContext(r.Context()).Info().Int("user_id", u.ID).Str("role", u.Role.String()).Msg("logged in")
	h.sessions.AddFlash(w, r, "success", "Logged in")
	http.Redirect(w, r, middleware.HomePath(u), http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(w, r); err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("failed to clear session")
	}
	h.sessions.AddFlash(w, r, "info", "You have been logged out")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	if r.Method != http.MethodPost {
		h.view.Render(w, r, http.StatusOK, "change_password.html", map[string]interface{}{"Title": "Change password"})
		return
	}

	err := h.auth.ChangePassword(r.Context(), u,
		r.FormValue("old_password"),
		r.FormValue("new_password"),
		r.FormValue("confirm_password"),
	)
	if err != nil {
		status := http.StatusInternalServerError
		if apperrors.Is(err, apperrors.ErrorTypeValidation) {
			status = http.StatusBadRequest
		}
		h.sessions.AddFlash(w, r, "error", flashError(r, err, "Could not change password"))
		h.view.Render(w, r, status, "change_password.html", map[string]interface{}{"Title": "Change password"})
		return
	}

	h.sessions.AddFlash(w, r, "success", "Password changed")
	http.Redirect(w, r, middleware.HomePath(u), http.StatusSeeOther)
}
