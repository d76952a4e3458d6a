package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"emojifeedback/internal/entity"
	"emojifeedback/internal/export"
	"emojifeedback/internal/logger"
	middleware "emojifeedback/internal/midlleware"
	"emojifeedback/internal/service"
)

type StatsHandler struct {
	courses     *service.CourseService
	stats       *service.StatisticService
	sessions    *middleware.SessionManager
	view        *Renderer
	defaultDays int
	now         service.Clock
}

func NewStatsHandler(c *service.CourseService, s *service.StatisticService, sm *middleware.SessionManager, v *Renderer, defaultDays int) *StatsHandler {
	return &StatsHandler{
		courses:     c,
		stats:       s,
		sessions:    sm,
		view:        v,
		defaultDays: defaultDays,
		now:         time.Now,
	}
}

// filter собирает фильтр из query: course_id и либо from+to (YYYY-MM-DD), либо days.
// Возвращает и число дней, чтобы показать его в форме.
func (h *StatsHandler) filter(r *http.Request) (entity.FeedbackFilter, int) {
	q := r.URL.Query()
	courseID := intParam(r, "course_id")

	from, errFrom := time.Parse(entity.DateLayout, q.Get("from"))
	to, errTo := time.Parse(entity.DateLayout, q.Get("to"))
	if errFrom == nil && errTo == nil {
		return entity.NewFeedbackFilter(courseID, entity.NewDateRange(from, to)), 0
	}

	days := intParam(r, "days")
	if days <= 0 {
		days = h.defaultDays
	}
	return entity.NewFeedbackFilter(courseID, entity.LastDays(h.now(), days)), days
}

func (h *StatsHandler) StatsPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	courses, err := h.courses.Visible(ctx, middleware.CurrentUser(ctx))
	if err != nil {
		h.view.Error(w, r, http.StatusInternalServerError, flashError(r, err, "Could not load courses"))
		return
	}

	f, days := h.filter(r)
	stats, err := h.stats.Statistics(ctx, f)
	if err != nil {
		h.view.Error(w, r, http.StatusInternalServerError, flashError(r, err, "Could not load statistics"))
		return
	}

	h.view.Render(w, r, http.StatusOK, "statistics.html", map[string]interface{}{
		"Title":            "Statistics",
		"Courses":          courses,
		"SelectedCourseID": intParam(r, "course_id"),
		"Days":             days,
		"Stats":            stats,
	})
}

// Export отдаёт xlsx с отзывами; если выгружать нечего - предупреждение и редирект
func (h *StatsHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	f, _ := h.filter(r)
	rows, err := h.stats.Export(ctx, f)
	if err != nil {
		h.sessions.AddFlash(w, r, "error", flashError(r, err, "Export failed"))
		http.Redirect(w, r, "/admin/emoji_data", http.StatusSeeOther)
		return
	}
	if len(rows) == 0 {
		h.sessions.AddFlash(w, r, "warning", "No data to export")
		http.Redirect(w, r, "/admin/emoji_data", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName(h.now())+`"`)
	if err := export.WriteXLSX(w, rows); err != nil {
		// заголовки уже ушли, остаётся только лог
		logger.FromContext(ctx).Error().Err(err).Msg("failed to write xlsx")
		return
	}
	logger.FromContext(ctx).Info().Int("rows", len(rows)).Msg("feedback exported")
}

// ChartData - JSON для графиков
func (h *StatsHandler) ChartData(w http.ResponseWriter, r *http.Request) {
	f, _ := h.filter(r)
	stats, err := h.stats.Statistics(r.Context(), f)
	if err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("failed to load chart data")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "could not load statistics"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(service.NewChartData(stats))
}
