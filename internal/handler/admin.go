package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pavithraB-wec/OnlineQuizSystem/internal/handler/views"
	"github.com/pavithraB-wec/OnlineQuizSystem/internal/model"
)

func (h *Handler) adminStats() (model.AdminStats, error) {
	var stats model.AdminStats
	var err error
	if stats.Students, err = h.store.CountUsersByRole(model.RoleStudent); err != nil {
		return stats, err
	}
	if stats.Teachers, err = h.store.CountUsersByRole(model.RoleTeacher); err != nil {
		return stats, err
	}
	if stats.Courses, err = h.store.CourseCount(); err != nil {
		return stats, err
	}
	stats.Questions, err = h.store.QuestionCount()
	return stats, err
}

func (h *Handler) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminStats()
	if err != nil {
		slog.Error("failed to load admin stats", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	pending, err := h.store.ListPendingTeachers()
	if err != nil {
		slog.Error("failed to list pending teachers", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.render(w, r, views.AdminDashboardPage(stats, pending, noticeFrom(r)))
}

func (h *Handler) handleApproveTeacher(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r, "userID")
	if !ok {
		h.renderNotFound(w, r)
		return
	}

	user, err := h.store.GetUserByID(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if user == nil {
		h.renderNotFound(w, r)
		return
	}

	// Approving an already-approved teacher is a no-op, not an error.
	if err := h.store.ApproveTeacher(id); err != nil {
		slog.Error("failed to approve teacher", "id", id, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, h.path("/admin/dashboard?notice=TeacherApproved"), http.StatusSeeOther)
}

func (h *Handler) handleAdminCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.store.ListCourses()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.render(w, r, views.CoursesPage(courses, "/admin", noticeFrom(r)))
}

func (h *Handler) handleAdminCourseForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, views.CourseFormPage("/admin", ""))
}

func (h *Handler) handleAdminAddCourse(w http.ResponseWriter, r *http.Request) {
	h.addCourse(w, r, "/admin")
}

func (h *Handler) handleAdminDeleteCourse(w http.ResponseWriter, r *http.Request) {
	// Admin may delete any course.
	id, ok := urlParamID(r, "courseID")
	if !ok {
		h.renderNotFound(w, r)
		return
	}
	if _, err := h.store.GetCourse(id); errors.Is(err, sql.ErrNoRows) {
		h.renderNotFound(w, r)
		return
	} else if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.store.DeleteCourse(id); err != nil {
		slog.Error("failed to delete course", "id", id, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, h.path("/admin/courses?notice=CourseDeleted"), http.StatusSeeOther)
}

// addCourse persists a course owned by the current principal and returns to
// the actor's course list.
func (h *Handler) addCourse(w http.ResponseWriter, r *http.Request, prefix string) {
	user := model.UserFromContext(r.Context())
	name := r.FormValue("name")
	if name == "" {
		w.WriteHeader(http.StatusBadRequest)
		h.render(w, r, views.CourseFormPage(prefix, "name required"))
		return
	}

	_, err := h.store.CreateCourse(model.Course{
		Name:        name,
		Description: r.FormValue("description"),
		CreatedBy:   user.ID,
	})
	if err != nil {
		slog.Error("failed to create course", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, h.path(prefix+"/courses?notice=CourseAdded"), http.StatusSeeOther)
}
