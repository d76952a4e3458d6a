package handler

import (
	"net/http"
	"strings"
	"time"

	"emojifeedback/internal/config"
	"emojifeedback/internal/entity"
	middleware "emojifeedback/internal/midlleware"
	"emojifeedback/internal/service"
)

// AdminHandler - раздел преподавателя и администратора
type AdminHandler struct {
	auth     *service.AuthService
	courses  *service.CourseService
	feedback *service.FeedbackService
	stats    *service.StatisticService
	sessions *middleware.SessionManager
	view     *Renderer
	cfg      config.FeedbackConfig
	now      service.Clock
}

func NewAdminHandler(
	auth *service.AuthService,
	courses *service.CourseService,
	feedback *service.FeedbackService,
	stats *service.StatisticService,
	sessions *middleware.SessionManager,
	view *Renderer,
	cfg config.FeedbackConfig,
) *AdminHandler {
	return &AdminHandler{
		auth:     auth,
		courses:  courses,
		feedback: feedback,
		stats:    stats,
		sessions: sessions,
		view:     view,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.auth.CountUsers(ctx)
	if err != nil {
		h.view.Error(w, r, http.StatusInternalServerError, flashError(r, err, "Could not load dashboard"))
		return
	}
	courses, err := h.courses.ListActive(ctx)
	if err != nil {
		h.view.Error(w, r, http.StatusInternalServerError, flashError(r, err, "Could not load dashboard"))
		return
	}
	stats, err := h.stats.Statistics(ctx, entity.NewFeedbackFilter(0, entity.LastDays(h.now(), h.cfg.DashboardDays)))
	if err != nil {
		h.view.Error(w, r, http.StatusInternalServerError, flashError(r, err, "Could not load dashboard"))
		return
	}

	h.view.Render(w, r, http.StatusOK, "admin_dashboard.html", map[string]interface{}{
		"Title":        "Dashboard",
		"UsersCount":   users,
		"CoursesCount": len(courses),
		"Days":         h.cfg.DashboardDays,
		"Stats":        stats,
	})
}

// Users - список пользователей, ?role= фильтрует по роли
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	roleFilter := r.URL.Query().Get("role")

	var role *entity.Role
	if roleFilter != "" {
		parsed, err := entity.ParseRole(roleFilter)
		if err != nil {
			h.view.Error(w, r, http.StatusBadRequest, "Unknown role")
			return
		}
		role = &parsed
	}

	users, err := h.auth.ListUsers(r.Context(), role)
	if err != nil {
		h.view.Error(w, r, http.StatusInternalServerError, flashError(r, err, "Could not load users"))
		return
	}

	h.view.Render(w, r, http.StatusOK, "admin_users.html", map[string]interface{}{
		"Title":      "Users",
		"Roles":      entity.Roles,
		"RoleFilter": roleFilter,
		"Users":      users,
	})
}

func (h *AdminHandler) Courses(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	courses, err := h.courses.Visible(r.Context(), u)
	if err != nil {
		h.view.Error(w, r, http.StatusInternalServerError, flashError(r, err, "Could not load courses"))
		return
	}

	h.view.Render(w, r, http.StatusOK, "admin_courses.html", map[string]interface{}{
		"Title":            "Courses",
		"Courses":          courses,
		"CanAssignTeacher": u.Can(entity.CapViewAllCourses),
	})
}

func (h *AdminHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	u := middleware.CurrentUser(r.Context())

	in := service.CourseInput{
		Name:        strings.TrimSpace(r.FormValue("course_name")),
		Code:        strings.TrimSpace(r.FormValue("course_code")),
		Description: r.FormValue("description"),
		Semester:    r.FormValue("semester"),
		TeacherID:   intParam(r, "teacher_id"),
	}

	if c, err := h.courses.Create(r.Context(), u, in); err != nil {
		h.sessions.AddFlash(w, r, "error", flashError(r, err, "Could not create course"))
	} else {
		h.sessions.AddFlash(w, r, "success", "Course "+c.Name+" created")
	}
	http.Redirect(w, r, "/admin/courses", http.StatusSeeOther)
}

func (h *AdminHandler) DeactivateCourse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	u := middleware.CurrentUser(r.Context())

	if err := h.courses.Deactivate(r.Context(), u, intParam(r, "course_id")); err != nil {
		h.sessions.AddFlash(w, r, "error", flashError(r, err, "Could not deactivate course"))
	} else {
		h.sessions.AddFlash(w, r, "success", "Course deactivated")
	}
	http.Redirect(w, r, "/admin/courses", http.StatusSeeOther)
}

// EmojiData - отзывы по курсу, без course_id - последние записи по всем курсам
func (h *AdminHandler) EmojiData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	u := middleware.CurrentUser(ctx)

	courses, err := h.courses.Visible(ctx, u)
	if err != nil {
		h.view.Error(w, r, http.StatusInternalServerError, flashError(r, err, "Could not load courses"))
		return
	}

	courseID := intParam(r, "course_id")
	data := map[string]interface{}{
		"Title":            "Feedback",
		"Courses":          courses,
		"SelectedCourseID": courseID,
	}

	if courseID > 0 {
		data["Records"], err = h.feedback.CourseRecords(ctx, courseID, nil)
	} else {
		data["Records"], err = h.feedback.AllRecords(ctx, h.cfg.AllRecordsLimit)
	}
	if err != nil {
		h.view.Error(w, r, http.StatusInternalServerError, flashError(r, err, "Could not load feedback"))
		return
	}

	h.view.Render(w, r, http.StatusOK, "emoji_data.html", data)
}
