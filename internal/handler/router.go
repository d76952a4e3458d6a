package handler

import (
	"net/http"

	"emojifeedback/internal/entity"
	middleware "emojifeedback/internal/midlleware"
)

// Handlers - всё, что нужно для маршрутизации
type Handlers struct {
	Index   *IndexHandler
	Auth    *AuthHandler
	Student *StudentHandler
	Admin   *AdminHandler
	Stats   *StatsHandler
}

// NewRouter регистрирует маршруты и оборачивает их в общие middleware
func NewRouter(h Handlers, auth *middleware.Auth) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", h.Index.Index)
	mux.HandleFunc("/healthz", h.Index.Health)

	mux.HandleFunc("/login", h.Auth.Login)
	mux.HandleFunc("/logout", h.Auth.Logout)
	mux.HandleFunc("/register", h.Auth.Register)
	mux.HandleFunc("/change_password", auth.RequireAuth(h.Auth.ChangePassword))

	protect := auth.RequireCapability
	mux.HandleFunc("/student/dashboard", protect(entity.CapEnroll, h.Student.Dashboard))
	mux.HandleFunc("/student/courses", protect(entity.CapEnroll, h.Student.Courses))
	mux.HandleFunc("/student/enroll", protect(entity.CapEnroll, h.Student.Enroll))
	mux.HandleFunc("/student/send_emoji", protect(entity.CapSubmitFeedback, h.Student.SendEmoji))
	mux.HandleFunc("/student/history", protect(entity.CapViewOwnHistory, h.Student.History))

	mux.HandleFunc("/admin/dashboard", protect(entity.CapViewAggregates, h.Admin.Dashboard))
	mux.HandleFunc("/admin/users", protect(entity.CapManageUsers, h.Admin.Users))
	mux.HandleFunc("/admin/courses", protect(entity.CapManageCourses, h.Admin.Courses))
	mux.HandleFunc("/admin/courses/create", protect(entity.CapManageCourses, h.Admin.CreateCourse))
	mux.HandleFunc("/admin/courses/deactivate", protect(entity.CapManageCourses, h.Admin.DeactivateCourse))
	mux.HandleFunc("/admin/emoji_data", protect(entity.CapViewAggregates, h.Admin.EmojiData))
	mux.HandleFunc("/admin/statistics", protect(entity.CapViewAggregates, h.Stats.StatsPage))
	mux.HandleFunc("/admin/export", protect(entity.CapExport, h.Stats.Export))
	mux.HandleFunc("/admin/api/chart_data", protect(entity.CapViewAggregates, h.Stats.ChartData))

	return middleware.Logging(middleware.Recover(auth.Session(mux)))
}
