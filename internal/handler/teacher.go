package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pavithraB-wec/OnlineQuizSystem/internal/handler/views"
	"github.com/pavithraB-wec/OnlineQuizSystem/internal/model"
)

func (h *Handler) handleTeacherDashboard(w http.ResponseWriter, r *http.Request) {
	var stats model.TeacherStats
	var err error
	if stats.Students, err = h.store.CountUsersByRole(model.RoleStudent); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if stats.Courses, err = h.store.CourseCount(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if stats.Questions, err = h.store.QuestionCount(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.render(w, r, views.TeacherDashboardPage(stats, noticeFrom(r)))
}

func (h *Handler) handleTeacherCourses(w http.ResponseWriter, r *http.Request) {
	user := model.UserFromContext(r.Context())
	courses, err := h.store.ListCoursesByCreator(user.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.render(w, r, views.CoursesPage(courses, "/teacher", noticeFrom(r)))
}

func (h *Handler) handleTeacherCourseForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, views.CourseFormPage("/teacher", ""))
}

func (h *Handler) handleTeacherAddCourse(w http.ResponseWriter, r *http.Request) {
	h.addCourse(w, r, "/teacher")
}

func (h *Handler) handleTeacherDeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r, "courseID")
	if !ok {
		h.renderNotFound(w, r)
		return
	}

	course, err := h.store.GetCourse(id)
	if errors.Is(err, sql.ErrNoRows) {
		h.renderNotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Ownership is re-verified here, not only at the route level.
	user := model.UserFromContext(r.Context())
	if !course.OwnedBy(user) {
		http.Redirect(w, r, h.path("/teacher/courses?notice=NotYourCourse"), http.StatusSeeOther)
		return
	}

	if err := h.store.DeleteCourse(id); err != nil {
		slog.Error("failed to delete course", "id", id, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, h.path("/teacher/courses?notice=CourseDeleted"), http.StatusSeeOther)
}
