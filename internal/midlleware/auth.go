package middleware

import (
	"context"
	"net/http"

	"emojifeedback/internal/entity"
	"emojifeedback/internal/logger"
)

type ctxKey int

const userCtxKey ctxKey = iota

// UserLoader достаёт пользователя по id из сессии
type UserLoader interface {
	GetByID(ctx context.Context, id int) (*entity.User, error)
}

type Auth struct {
	sessions *SessionManager
	users    UserLoader
}

func NewAuth(sessions *SessionManager, users UserLoader) *Auth {
	return &Auth{sessions: sessions, users: users}
}

// Session loads the logged-in user, if any, into the request context.
func (a *Auth) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := a.sessions.UserID(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		u, err := a.users.GetByID(r.Context(), id)
		if err != nil {
			logger.FromContext(r.Context()).Error().Err(err).Int("user_id", id).Msg("failed to load session user")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if u == nil {
			// пользователя удалили из базы - сессия больше не действительна
			a.sessions.Logout(w, r)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

// RequireAuth отправляет на /login всех, кто не вошёл
func (a *Auth) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r.Context()) == nil {
			a.sessions.AddFlash(w, r, "error", "Please log in first")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// RequireCapability пропускает только роли, у которых есть все перечисленные права
func (a *Auth) RequireCapability(caps entity.Capability, next http.HandlerFunc) http.HandlerFunc {
	return a.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		u := CurrentUser(r.Context())
		if !u.Can(caps) {
			logger.FromContext(r.Context()).Warn().
				Int("user_id", u.ID).
				Str("role", u.Role.String()).
				Str("path", r.URL.Path).
				Msg("access denied")
			a.sessions.AddFlash(w, r, "error", "You do not have permission to open that page")
			http.Redirect(w, r, HomePath(u), http.StatusSeeOther)
			return
		}
		next(w, r)
	})
}

// HomePath - стартовая страница для роли
func HomePath(u *entity.User) string {
	switch {
	case u == nil:
		return "/login"
	case u.Can(entity.CapViewAggregates):
		return "/admin/dashboard"
	default:
		return "/student/dashboard"
	}
}

func WithUser(ctx context.Context, u *entity.User) context.Context {
	return context.WithValue(ctx, userCtxKey, u)
}

func CurrentUser(ctx context.Context) *entity.User {
	u, _ := ctx.Value(userCtxKey).(*entity.User)
	return u
}
