package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pavithraB-wec/OnlineQuizSystem/internal/handler/views"
	appI18n "github.com/pavithraB-wec/OnlineQuizSystem/internal/i18n"
	"github.com/pavithraB-wec/OnlineQuizSystem/internal/model"
)

func (h *Handler) handleStudentDashboard(w http.ResponseWriter, r *http.Request) {
	courses, err := h.store.ListCourses()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	questions, err := h.store.QuestionCount()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	stats := model.StudentStats{Courses: len(courses), Questions: questions}
	h.render(w, r, views.StudentDashboardPage(courses, stats, noticeFrom(r)))
}

func (h *Handler) handleExamPage(w http.ResponseWriter, r *http.Request) {
	course, ok := h.loadCourse(w, r, "courseID")
	if !ok {
		return
	}
	questions, err := h.store.ListQuestionsByCourse(course.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.render(w, r, views.ExamPage(course, questions))
}

// handleExamSubmit scores a submission and records one immutable result row.
// Questions are walked in insertion order; an absent answer counts as no
// match. Nothing prevents a student from taking the same exam again.
func (h *Handler) handleExamSubmit(w http.ResponseWriter, r *http.Request) {
	course, ok := h.loadCourse(w, r, "courseID")
	if !ok {
		return
	}
	questions, err := h.store.ListQuestionsByCourse(course.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	score := 0
	totalMarks := 0
	for _, q := range questions {
		selected := r.FormValue("q_" + strconv.FormatInt(q.ID, 10))
		totalMarks += q.Marks
		if selected == q.CorrectOption {
			score += q.Marks
		}
	}

	user := model.UserFromContext(r.Context())
	_, err = h.store.InsertResult(model.Result{
		StudentID:  user.ID,
		CourseID:   course.ID,
		Score:      score,
		TotalMarks: totalMarks,
	})
	if err != nil {
		slog.Error("failed to insert result", "course", course.ID, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	slog.Info("exam submitted", "student", user.ID, "course", course.ID,
		"score", score, "total", totalMarks)
	http.Redirect(w, r,
		h.path("/results?score="+strconv.Itoa(score)+"&total="+strconv.Itoa(totalMarks)),
		http.StatusSeeOther)
}

func (h *Handler) handleResults(w http.ResponseWriter, r *http.Request) {
	user := model.UserFromContext(r.Context())
	results, err := h.store.ListResultsByStudent(user.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// A fresh submission's score arrives via explicit query values rather
	// than a session flash.
	notice := ""
	if scoreStr, totalStr := r.URL.Query().Get("score"), r.URL.Query().Get("total"); scoreStr != "" {
		score, errS := strconv.Atoi(scoreStr)
		total, errT := strconv.Atoi(totalStr)
		if errS == nil && errT == nil {
			notice = appI18n.Td(r.Context(), "ExamScore", map[string]any{"Score": score, "Total": total})
		}
	}

	h.render(w, r, views.ResultsPage(results, notice))
}
