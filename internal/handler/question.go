package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pavithraB-wec/OnlineQuizSystem/internal/handler/views"
	appI18n "github.com/pavithraB-wec/OnlineQuizSystem/internal/i18n"
	"github.com/pavithraB-wec/OnlineQuizSystem/internal/llm/prompts"
	"github.com/pavithraB-wec/OnlineQuizSystem/internal/model"
	"github.com/pavithraB-wec/OnlineQuizSystem/internal/store"
)

// loadCourse resolves the courseID URL parameter, rendering 404 when the
// course does not exist. The bool reports whether the caller may proceed.
func (h *Handler) loadCourse(w http.ResponseWriter, r *http.Request, param string) (model.Course, bool) {
	id, ok := urlParamID(r, param)
	if !ok {
		h.renderNotFound(w, r)
		return model.Course{}, false
	}
	course, err := h.store.GetCourse(id)
	if errors.Is(err, sql.ErrNoRows) {
		h.renderNotFound(w, r)
		return model.Course{}, false
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return model.Course{}, false
	}
	return course, true
}

func (h *Handler) handleQuestions(w http.ResponseWriter, r *http.Request) {
	course, ok := h.loadCourse(w, r, "courseID")
	if !ok {
		return
	}
	questions, err := h.store.ListQuestionsByCourse(course.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.render(w, r, views.QuestionsPage(course, questions, h.config.LLMEnabled, noticeFrom(r)))
}

// draftFromForm reads question fields from either a form post or the
// prefill query produced by the generate page.
func draftFromForm(r *http.Request) model.QuestionDraft {
	marks, _ := strconv.Atoi(r.FormValue("marks"))
	return model.QuestionDraft{
		Text:          r.FormValue("question_text"),
		OptionA:       r.FormValue("option_a"),
		OptionB:       r.FormValue("option_b"),
		OptionC:       r.FormValue("option_c"),
		OptionD:       r.FormValue("option_d"),
		CorrectOption: r.FormValue("correct_option"),
		Marks:         marks,
	}
}

func (h *Handler) handleQuestionForm(w http.ResponseWriter, r *http.Request) {
	course, ok := h.loadCourse(w, r, "courseID")
	if !ok {
		return
	}
	if !h.requireCourseOwner(w, r, course) {
		return
	}
	h.render(w, r, views.QuestionFormPage(course, draftFromForm(r), ""))
}

func (h *Handler) handleAddQuestion(w http.ResponseWriter, r *http.Request) {
	course, ok := h.loadCourse(w, r, "courseID")
	if !ok {
		return
	}
	if !h.requireCourseOwner(w, r, course) {
		return
	}

	draft := draftFromForm(r)
	if draft.Text == "" || draft.OptionA == "" || draft.OptionB == "" || draft.OptionC == "" || draft.OptionD == "" {
		w.WriteHeader(http.StatusBadRequest)
		h.render(w, r, views.QuestionFormPage(course, draft, "all fields required"))
		return
	}

	_, err := h.store.InsertQuestion(model.Question{
		CourseID:      course.ID,
		Text:          draft.Text,
		OptionA:       draft.OptionA,
		OptionB:       draft.OptionB,
		OptionC:       draft.OptionC,
		OptionD:       draft.OptionD,
		CorrectOption: draft.CorrectOption,
		Marks:         draft.Marks,
	})
	if errors.Is(err, store.ErrInvalidOption) {
		w.WriteHeader(http.StatusBadRequest)
		h.render(w, r, views.QuestionFormPage(course, draft, err.Error()))
		return
	}
	if err != nil {
		slog.Error("failed to insert question", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.path("/questions/"+strconv.FormatInt(course.ID, 10)+"?notice=QuestionAdded"), http.StatusSeeOther)
}

func (h *Handler) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r, "questionID")
	if !ok {
		h.renderNotFound(w, r)
		return
	}

	question, err := h.store.GetQuestion(id)
	if errors.Is(err, sql.ErrNoRows) {
		h.renderNotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Ownership is resolved through the question's parent course.
	course, err := h.store.GetCourse(question.CourseID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !h.requireCourseOwner(w, r, course) {
		return
	}

	if err := h.store.DeleteQuestion(id); err != nil {
		slog.Error("failed to delete question", "id", id, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, h.path("/questions/"+strconv.FormatInt(course.ID, 10)+"?notice=QuestionDeleted"), http.StatusSeeOther)
}

// requireCourseOwner re-verifies inside mutating handlers that the acting
// user owns the course (or is an admin). On failure it redirects back to the
// question list with a notice and reports false.
func (h *Handler) requireCourseOwner(w http.ResponseWriter, r *http.Request, course model.Course) bool {
	user := model.UserFromContext(r.Context())
	if course.OwnedBy(user) {
		return true
	}
	http.Redirect(w, r, h.path("/questions/"+strconv.FormatInt(course.ID, 10)+"?notice=NotYourCourse"), http.StatusSeeOther)
	return false
}

func (h *Handler) handleGenerateForm(w http.ResponseWriter, r *http.Request) {
	course, ok := h.loadCourse(w, r, "courseID")
	if !ok {
		return
	}
	if !h.requireCourseOwner(w, r, course) {
		return
	}
	if h.llm == nil {
		h.renderNotFound(w, r)
		return
	}
	h.render(w, r, views.GeneratePage(course, nil, ""))
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	course, ok := h.loadCourse(w, r, "courseID")
	if !ok {
		return
	}
	if !h.requireCourseOwner(w, r, course) {
		return
	}
	if h.llm == nil {
		h.renderNotFound(w, r)
		return
	}

	topic := r.FormValue("topic")
	difficulty := r.FormValue("difficulty")
	if !prompts.IsValidVariant(difficulty) {
		difficulty = string(prompts.VariantMedium)
	}
	count, err := strconv.Atoi(r.FormValue("count"))
	if err != nil || count < 1 {
		count = 3
	}

	drafts, err := h.llm.GenerateDrafts(r.Context(), topic, prompts.Variant(difficulty), count)
	if err != nil {
		slog.Error("draft generation failed", "course", course.ID, "error", err)
		h.render(w, r, views.GeneratePage(course, nil, appI18n.T(r.Context(), "GenerateFailed")))
		return
	}

	h.render(w, r, views.GeneratePage(course, drafts, ""))
}
