package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emojifeedback/internal/config"
	"emojifeedback/internal/entity"
)

type stubUsers map[int]*entity.User

func (s stubUsers) GetByID(_ context.Context, id int) (*entity.User, error) {
	if id == 500 {
		return nil, errors.New("db down")
	}
	return s[id], nil
}

func newSessions() *SessionManager {
	return NewSessionManager(config.SessionConfig{Key: "0123456789abcdef0123456789abcdef", MaxAge: time.Hour})
}

// loginCookies выполняет вход и возвращает cookie, которые выдал сервер
func loginCookies(t *testing.T, sm *SessionManager, u *entity.User) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, sm.Login(w, r, u))
	return w.Result().Cookies()
}

func withCookies(r *http.Request, cookies []*http.Cookie) *http.Request {
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestSessionManager_LoginLogout(t *testing.T) {
	sm := newSessions()
	cookies := loginCookies(t, sm, &entity.User{ID: 7, Role: entity.RoleStudent})

	r := withCookies(httptest.NewRequest(http.MethodGet, "/", nil), cookies)
	id, ok := sm.UserID(r)
	assert.True(t, ok)
	assert.Equal(t, 7, id)

	w := httptest.NewRecorder()
	require.NoError(t, sm.Logout(w, r))

	r = withCookies(httptest.NewRequest(http.MethodGet, "/", nil), w.Result().Cookies())
	_, ok = sm.UserID(r)
	assert.False(t, ok)
}

func TestSessionManager_Flashes(t *testing.T) {
	sm := newSessions()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/student/enroll", nil)
	sm.AddFlash(w, r, "success", "Enrolled")

	r = withCookies(httptest.NewRequest(http.MethodGet, "/student/courses", nil), w.Result().Cookies())
	w = httptest.NewRecorder()
	flashes := sm.Flashes(w, r)
	assert.Equal(t, []Flash{{Category: "success", Message: "Enrolled"}}, flashes)

	r = withCookies(httptest.NewRequest(http.MethodGet, "/student/courses", nil), w.Result().Cookies())
	assert.Empty(t, sm.Flashes(httptest.NewRecorder(), r), "flashes are shown once")
}

func TestAuth_Session(t *testing.T) {
	sm := newSessions()
	users := stubUsers{7: {ID: 7, Username: "anna", Role: entity.RoleStudent}}
	auth := NewAuth(sm, users)

	var seen *entity.User
	h := auth.Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CurrentUser(r.Context())
	}))

	t.Run("logged in", func(t *testing.T) {
		seen = nil
		r := withCookies(httptest.NewRequest(http.MethodGet, "/", nil), loginCookies(t, sm, users[7]))
		h.ServeHTTP(httptest.NewRecorder(), r)
		require.NotNil(t, seen)
		assert.Equal(t, "anna", seen.Username)
	})

	t.Run("anonymous", func(t *testing.T) {
		seen = &entity.User{}
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Nil(t, seen)
	})

	t.Run("deleted user", func(t *testing.T) {
		seen = &entity.User{}
		r := withCookies(httptest.NewRequest(http.MethodGet, "/", nil), loginCookies(t, sm, &entity.User{ID: 8}))
		h.ServeHTTP(httptest.NewRecorder(), r)
		assert.Nil(t, seen)
	})

	t.Run("store error", func(t *testing.T) {
		r := withCookies(httptest.NewRequest(http.MethodGet, "/", nil), loginCookies(t, sm, &entity.User{ID: 500}))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAuth_RequireCapability(t *testing.T) {
	auth := NewAuth(newSessions(), stubUsers{})
	ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) }
	h := auth.RequireCapability(entity.CapViewAggregates, ok)

	tests := []struct {
		name     string
		user     *entity.User
		status   int
		location string
	}{
		{name: "anonymous", user: nil, status: http.StatusSeeOther, location: "/login"},
		{name: "student", user: &entity.User{ID: 1, Role: entity.RoleStudent}, status: http.StatusSeeOther, location: "/student/dashboard"},
		{name: "teacher", user: &entity.User{ID: 2, Role: entity.RoleTeacher}, status: http.StatusNoContent},
		{name: "admin", user: &entity.User{ID: 3, Role: entity.RoleAdmin}, status: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
			if tt.user != nil {
				r = r.WithContext(WithUser(r.Context(), tt.user))
			}
			w := httptest.NewRecorder()

			h(w, r)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.location, w.Header().Get("Location"))
		})
	}
}

func TestHomePath(t *testing.T) {
	assert.Equal(t, "/login", HomePath(nil))
	assert.Equal(t, "/student/dashboard", HomePath(&entity.User{Role: entity.RoleStudent}))
	assert.Equal(t, "/admin/dashboard", HomePath(&entity.User{Role: entity.RoleTeacher}))
	assert.Equal(t, "/admin/dashboard", HomePath(&entity.User{Role: entity.RoleAdmin}))
}

func TestLogging_RequestID(t *testing.T) {
	h := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, "req-1")
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "req-1", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRecover(t *testing.T) {
	h := Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLogging_RecoveredPanicIsLogged(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	h := Logging(Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/student/send_emoji", nil)
	r.Header.Set(RequestIDHeader, "req-42")
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))

	out := buf.String()
	assert.Contains(t, out, `"message":"handler panicked"`)
	assert.Contains(t, out, `"message":"request"`)
	assert.Contains(t, out, `"status":500`)
	assert.Equal(t, 2, strings.Count(out, `"request_id":"req-42"`), "both lines carry the request id")
}
