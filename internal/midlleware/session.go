package middleware

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog/log"

	"emojifeedback/internal/config"
	"emojifeedback/internal/entity"
)

const (
	sessionName = "app-session"
	keyUserID   = "user_id"
	keyRole     = "role"
)

// Flash - сообщение, которое показывается один раз после редиректа
type Flash struct {
	Category string
	Message  string
}

func init() {
	gob.Register(Flash{})
}

type SessionManager struct {
	store *sessions.CookieStore
}

func NewSessionManager(cfg config.SessionConfig) *SessionManager {
	key := []byte(cfg.Key)
	if len(key) == 0 {
		// без SESSION_KEY сессии не переживут перезапуск
		log.Warn().Msg("SESSION_KEY is not set, generating a random key")
		key = securecookie.GenerateRandomKey(32)
	}

	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &SessionManager{store: store}
}

func (m *SessionManager) session(r *http.Request) *sessions.Session {
	// при битой cookie gorilla всё равно возвращает новую пустую сессию
	s, err := m.store.Get(r, sessionName)
	if err != nil {
		log.Debug().Err(err).Msg("discarding invalid session cookie")
	}
	return s
}

func (m *SessionManager) Login(w http.ResponseWriter, r *http.Request, u *entity.User) error {
	s := m.session(r)
	s.Values[keyUserID] = u.ID
	s.Values[keyRole] = string(u.Role)
	return s.Save(r, w)
}

func (m *SessionManager) Logout(w http.ResponseWriter, r *http.Request) error {
	s := m.session(r)
	delete(s.Values, keyUserID)
	delete(s.Values, keyRole)
	return s.Save(r, w)
}

// UserID - id вошедшего пользователя, 0 и false если никто не вошёл
func (m *SessionManager) UserID(r *http.Request) (int, bool) {
	id, ok := m.session(r).Values[keyUserID].(int)
	return id, ok && id > 0
}

func (m *SessionManager) AddFlash(w http.ResponseWriter, r *http.Request, category, message string) {
	s := m.session(r)
	s.AddFlash(Flash{Category: category, Message: message})
	if err := s.Save(r, w); err != nil {
		log.Error().Err(err).Msg("failed to save flash")
	}
}

// Flashes забирает накопленные сообщения и очищает их в сессии
func (m *SessionManager) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	s := m.session(r)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := s.Save(r, w); err != nil {
		log.Error().Err(err).Msg("failed to clear flashes")
	}

	flashes := make([]Flash, 0, len(raw))
	for _, f := range raw {
		if flash, ok := f.(Flash); ok {
			flashes = append(flashes, flash)
		}
	}
	return flashes
}
