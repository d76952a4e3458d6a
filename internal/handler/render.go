package handler

import (
	"bytes"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"emojifeedback/internal/apperrors"
	"emojifeedback/internal/entity"
	"emojifeedback/internal/logger"
	middleware "emojifeedback/internal/midlleware"
	"emojifeedback/internal/templates"
)

// Renderer рисует страницы из internal/templates и добавляет общие данные:
// пользователя, flash-сообщения и права для меню.
type Renderer struct {
	tmpl     *template.Template
	sessions *middleware.SessionManager
}

func NewRenderer(sessions *middleware.SessionManager) *Renderer {
	funcMap := template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return "—"
			}
			return t.Format(entity.DateLayout)
		},
	}
	tmpl := template.Must(template.New("").Funcs(funcMap).ParseFS(templates.FS, "*.html"))

	return &Renderer{tmpl: tmpl, sessions: sessions}
}

func (v *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	data["User"] = middleware.CurrentUser(r.Context())
	data["Flashes"] = v.sessions.Flashes(w, r)
	data["CapAggregates"] = entity.CapViewAggregates
	data["CapUsers"] = entity.CapManageUsers

	var buf bytes.Buffer
	if err := v.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Str("template", name).Msg("failed to render template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (v *Renderer) Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	v.Render(w, r, status, "error.html", map[string]interface{}{
		"Title":   http.StatusText(status),
		"Code":    status,
		"Message": message,
	})
}

// flashError показывает пользователю понятное сообщение, а внутренние ошибки только логирует
func flashError(r *http.Request, err error, fallback string) string {
	switch {
	case apperrors.Is(err, apperrors.ErrorTypeNotEnrolled):
		return "You are not enrolled in this course"
	case apperrors.Is(err, apperrors.ErrorTypeSubmissionFailed):
		logger.FromContext(r.Context()).Error().Err(err).Msg("submission failed")
		return "Your feedback could not be saved, please try again"
	case apperrors.Is(err, apperrors.ErrorTypeValidation),
		apperrors.Is(err, apperrors.ErrorTypeConflict),
		apperrors.Is(err, apperrors.ErrorTypeNotFound),
		apperrors.Is(err, apperrors.ErrorTypeForbidden),
		apperrors.Is(err, apperrors.ErrorTypeUnauthorized):
		return apperrors.Message(err, fallback)
	default:
		logger.FromContext(r.Context()).Error().Err(err).Msg(fallback)
		return fallback
	}
}

// intParam - целое из query или формы, 0 если параметра нет или он битый
func intParam(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.FormValue(name))
	if err != nil {
		return 0
	}
	return n
}
