package handler

import (
	"net/http"

	"emojifeedback/internal/entity"
	"emojifeedback/internal/service"
)

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Title": "Register",
		"Roles": entity.Roles,
		"Form":  map[string]string{},
	}

	if r.Method != http.MethodPost {
		h.view.Render(w, r, http.StatusOK, "register.html", data)
		return
	}

	in := service.RegisterInput{
		Username:        r.FormValue("username"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
		Role:            r.FormValue("role"),
		FullName:        r.FormValue("full_name"),
		Email:           r.FormValue("email"),
	}

	if _, err := h.auth.Register(r.Context(), in); err != nil {
		// пароль обратно в форму не отдаём
		data["Form"] = map[string]string{
			"username":  in.Username,
			"full_name": in.FullName,
			"email":     in.Email,
			"role":      in.Role,
		}
		h.sessions.AddFlash(w, r, "error", flashError(r, err, "Registration failed"))
		h.view.Render(w, r, http.StatusBadRequest, "register.html", data)
		return
	}

	h.sessions.AddFlash(w, r, "success", "Registration complete, please log in")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
