package handler

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/pavithraB-wec/OnlineQuizSystem/internal/handler/views"
	appI18n "github.com/pavithraB-wec/OnlineQuizSystem/internal/i18n"
	"github.com/pavithraB-wec/OnlineQuizSystem/internal/llm"
	"github.com/pavithraB-wec/OnlineQuizSystem/internal/model"
	"github.com/pavithraB-wec/OnlineQuizSystem/internal/store"
)

//go:embed static
var staticFS embed.FS

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	store  *store.Store
	llm    *llm.Client // nil when draft generation is not configured
	config model.ServerConfig
}

// New creates a new Handler. llmClient may be nil.
func New(s *store.Store, llmClient *llm.Client, cfg model.ServerConfig) (*Handler, error) {
	cfg.LLMEnabled = llmClient != nil
	return &Handler{store: s, llm: llmClient, config: cfg}, nil
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Use(h.csrfMiddleware)

	staticRoot, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	r.Handle("/static/*", http.StripPrefix(h.path("/static/"),
		http.FileServer(http.FS(staticRoot))))

	r.Get("/", h.handleHome)
	r.Get("/register", h.handleRegisterPage)
	r.Post("/register", h.handleRegister)
	r.Get("/login", h.handleLoginPage)
	r.Post("/login", h.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Get("/logout", h.handleLogout)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth, h.requireRole(model.RoleAdmin))
		r.Get("/admin/dashboard", h.handleAdminDashboard)
		r.Get("/admin/approve_teacher/{userID}", h.handleApproveTeacher)
		r.Get("/admin/courses", h.handleAdminCourses)
		r.Get("/admin/courses/add", h.handleAdminCourseForm)
		r.Post("/admin/courses/add", h.handleAdminAddCourse)
		r.Get("/admin/courses/delete/{courseID}", h.handleAdminDeleteCourse)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth, h.requireRole(model.RoleTeacher))
		r.Get("/teacher/dashboard", h.handleTeacherDashboard)
		r.Get("/teacher/courses", h.handleTeacherCourses)
		r.Get("/teacher/courses/add", h.handleTeacherCourseForm)
		r.Post("/teacher/courses/add", h.handleTeacherAddCourse)
		r.Get("/teacher/courses/delete/{courseID}", h.handleTeacherDeleteCourse)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth, h.requireRole(model.RoleAdmin, model.RoleTeacher))
		r.Get("/questions/{courseID}", h.handleQuestions)
		r.Get("/questions/add/{courseID}", h.handleQuestionForm)
		r.Post("/questions/add/{courseID}", h.handleAddQuestion)
		r.Get("/questions/delete/{questionID}", h.handleDeleteQuestion)
		r.Get("/questions/generate/{courseID}", h.handleGenerateForm)
		r.Post("/questions/generate/{courseID}", h.handleGenerate)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth, h.requireRole(model.RoleStudent))
		r.Get("/student/dashboard", h.handleStudentDashboard)
		r.Get("/exam/{courseID}", h.handleExamPage)
		r.Post("/exam/{courseID}", h.handleExamSubmit)
		r.Get("/results", h.handleResults)
	})
}

// BasePathMiddleware stores the configured base path in every request context
// so views can build prefixed links.
func (h *Handler) BasePathMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := model.ContextWithBasePath(r.Context(), h.config.BasePath)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// path prefixes a redirect target with the configured base path.
func (h *Handler) path(p string) string {
	return h.config.BasePath + p
}

// handleHome redirects an authenticated user to the dashboard for their role,
// forwarding any notice query. Anonymous visitors get the login page.
func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(r)
	if user == nil {
		h.render(w, r, views.LoginPage(noticeFrom(r)))
		return
	}

	query := ""
	if r.URL.RawQuery != "" {
		query = "?" + r.URL.RawQuery
	}
	switch user.Role {
	case model.RoleAdmin:
		http.Redirect(w, r, h.path("/admin/dashboard")+query, http.StatusSeeOther)
	case model.RoleTeacher:
		http.Redirect(w, r, h.path("/teacher/dashboard")+query, http.StatusSeeOther)
	default:
		http.Redirect(w, r, h.path("/student/dashboard")+query, http.StatusSeeOther)
	}
}

// currentUser resolves the session cookie outside requireAuth, for routes that
// serve both anonymous and authenticated visitors.
func (h *Handler) currentUser(r *http.Request) *model.User {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	authSess, err := h.store.GetAuthSession(cookie.Value)
	if err != nil || authSess == nil {
		return nil
	}
	user, err := h.store.GetUserByID(authSess.UserID)
	if err != nil || user == nil {
		return nil
	}
	return user
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		slog.Error("render error", "error", err)
	}
}

func (h *Handler) renderNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := views.NotFoundPage().Render(r.Context(), w); err != nil {
		slog.Error("render error", "error", err)
	}
}

// allowedNotices is the closed set of message IDs a redirect may carry in its
// notice query parameter. Anything else renders as no notice at all.
var allowedNotices = map[string]bool{
	"AccessDenied":      true,
	"StudentRegistered": true,
	"TeacherRegistered": true,
	"TeacherApproved":   true,
	"CourseAdded":       true,
	"CourseDeleted":     true,
	"QuestionAdded":     true,
	"QuestionDeleted":   true,
	"NotYourCourse":     true,
}

// noticeFrom localizes the whitelisted notice named in the request query.
func noticeFrom(r *http.Request) string {
	id := r.URL.Query().Get("notice")
	if !allowedNotices[id] {
		return ""
	}
	return appI18n.T(r.Context(), id)
}

func urlParamID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
