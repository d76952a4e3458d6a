package handler

import (
	"net/http"

	"emojifeedback/internal/apperrors"
	"emojifeedback/internal/entity"
	middleware "emojifeedback/internal/midlleware"
	"emojifeedback/internal/service"
)

type StudentHandler struct {
	courses  *service.CourseService
	feedback *service.FeedbackService
	sessions *middleware.SessionManager
	view     *Renderer
}

func NewStudentHandler(c *service.CourseService, f *service.FeedbackService, s *middleware.SessionManager, v *Renderer) *StudentHandler {
	return &StudentHandler{courses: c, feedback: f, sessions: s, view: v}
}

// Dashboard - курсы, на которые записан студент
func (h *StudentHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	courses, err := h.courses.StudentCourses(r.Context(), u.ID)
	if err != nil {
		h.view.Error(w, r, http.StatusInternalServerError, flashError(r, err, "Could not load courses"))
		return
	}

	h.view.Render(w, r, http.StatusOK, "student_dashboard.html", map[string]interface{}{
		"Title":   "My courses",
		"Courses": courses,
	})
}

// Courses - все активные курсы с отметкой о записи
func (h *StudentHandler) Courses(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	all, err := h.courses.ListActive(r.Context())
	if err != nil {
		h.view.Error(w, r, http.StatusInternalServerError, flashError(r, err, "Could not load courses"))
		return
	}
	mine, err := h.courses.StudentCourses(r.Context(), u.ID)
	if err != nil {
		h.view.Error(w, r, http.StatusInternalServerError, flashError(r, err, "Could not load courses"))
		return
	}

	enrolled := make(map[int]bool, len(mine))
	for _, c := range mine {
		enrolled[c.ID] = true
	}

	h.view.Render(w, r, http.StatusOK, "student_courses.html", map[string]interface{}{
		"Title":    "All courses",
		"Courses":  all,
		"Enrolled": enrolled,
	})
}

func (h *StudentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	u := middleware.CurrentUser(r.Context())

	res, err := h.courses.Enroll(r.Context(), u.ID, intParam(r, "course_id"))
	switch {
	case err != nil:
		h.sessions.AddFlash(w, r, "error", flashError(r, err, "Enrollment failed"))
	case res == entity.EnrollAlreadyEnrolled:
		h.sessions.AddFlash(w, r, "info", "You are already enrolled in this course")
	default:
		h.sessions.AddFlash(w, r, "success", "Enrolled")
	}
	http.Redirect(w, r, "/student/courses", http.StatusSeeOther)
}

// SendEmoji - GET форма, POST отправка отзыва
func (h *StudentHandler) SendEmoji(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	if r.Method == http.MethodPost {
		_, err := h.feedback.Submit(r.Context(), u.ID, intParam(r, "course_id"), r.FormValue("emoji"), r.FormValue("comment"))
		if err == nil {
			h.sessions.AddFlash(w, r, "success", "Feedback sent")
			http.Redirect(w, r, "/student/history", http.StatusSeeOther)
			return
		}
		h.sessions.AddFlash(w, r, "error", flashError(r, err, "Could not send feedback"))
		if !apperrors.Is(err, apperrors.ErrorTypeValidation) && !apperrors.Is(err, apperrors.ErrorTypeNotEnrolled) {
			http.Redirect(w, r, "/student/send_emoji", http.StatusSeeOther)
			return
		}
	}

	courses, err := h.courses.StudentCourses(r.Context(), u.ID)
	if err != nil {
		h.view.Error(w, r, http.StatusInternalServerError, flashError(r, err, "Could not load courses"))
		return
	}

	status := http.StatusOK
	if r.Method == http.MethodPost {
		status = http.StatusBadRequest
	}
	h.view.Render(w, r, status, "send_emoji.html", map[string]interface{}{
		"Title":   "Send feedback",
		"Courses": courses,
		"Emojis":  entity.Emojis,
	})
}

func (h *StudentHandler) History(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())

	records, err := h.feedback.History(r.Context(), u.ID)
	if err != nil {
		h.view.Error(w, r, http.StatusInternalServerError, flashError(r, err, "Could not load history"))
		return
	}

	h.view.Render(w, r, http.StatusOK, "history.html", map[string]interface{}{
		"Title":   "My feedback",
		"Records": records,
	})
}
