package model

import (
	"context"
	"time"
)

// Role represents a user's access level. The set is closed: every user row
// carries exactly one of the three values below.
type Role string

const (
	// RoleAdmin is the single bootstrap administrator role.
	RoleAdmin Role = "admin"
	// RoleTeacher is a course-authoring role; requires admin approval.
	RoleTeacher Role = "teacher"
	// RoleStudent is an exam-taking role.
	RoleStudent Role = "student"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// User represents a system user.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	Approved     bool
	CreatedAt    time.Time
}

// AuthSession represents an authentication session.
type AuthSession struct {
	ID        string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Course is a named collection of exam questions owned by its creator.
type Course struct {
	ID          int64
	Name        string
	Description string
	CreatedBy   int64
	CreatedAt   time.Time
}

// OwnedBy reports whether u may mutate the course: the creator or any admin.
func (c Course) OwnedBy(u *User) bool {
	if u == nil {
		return false
	}
	return u.Role == RoleAdmin || c.CreatedBy == u.ID
}

// Question is a four-option multiple-choice question.
type Question struct {
	ID            int64
	CourseID      int64
	Text          string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectOption string // one of "A", "B", "C", "D"
	Marks         int
}

// Option pairs an option letter with its text for rendering.
type Option struct {
	Letter string
	Text   string
}

// Options returns the four option texts keyed by letter, in display order.
func (q Question) Options() []Option {
	return []Option{
		{Letter: "A", Text: q.OptionA},
		{Letter: "B", Text: q.OptionB},
		{Letter: "C", Text: q.OptionC},
		{Letter: "D", Text: q.OptionD},
	}
}

// Result is an immutable record of one exam attempt.
type Result struct {
	ID         int64
	StudentID  int64
	CourseID   int64
	CourseName string // joined for display; empty if the course was deleted
	Score      int
	TotalMarks int
	TakenAt    time.Time
}

// AdminStats holds the aggregate counts shown on the admin dashboard.
type AdminStats struct {
	Students  int
	Teachers  int
	Courses   int
	Questions int
}

// TeacherStats holds the aggregate counts shown on the teacher dashboard.
type TeacherStats struct {
	Students  int
	Courses   int
	Questions int
}

// StudentStats holds the aggregate counts shown on the student dashboard.
type StudentStats struct {
	Courses   int
	Questions int
}

// QuestionDraft is an AI-generated question proposal. Drafts are only ever
// prefilled into the add-question form; a teacher must submit them explicitly.
type QuestionDraft struct {
	Text          string `json:"text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectOption string `json:"correct_option"`
	Marks         int    `json:"marks"`
}

// ServerConfig holds runtime parameters set via CLI flags.
type ServerConfig struct {
	BasePath      string // URL prefix for sub-path deployments (e.g. "/quiz")
	SecureCookies bool   // Set Secure flag on cookies (disable for local dev)
	LLMEnabled    bool   // Question draft generation is available
}

type userCtxKey struct{}

// ContextWithUser stores a user in the request context.
func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext retrieves the authenticated user from context, or nil.
func UserFromContext(ctx context.Context) *User {
	u, _ := ctx.Value(userCtxKey{}).(*User)
	return u
}

type basePathCtxKey struct{}

// ContextWithBasePath stores the base path prefix in context.
func ContextWithBasePath(ctx context.Context, basePath string) context.Context {
	return context.WithValue(ctx, basePathCtxKey{}, basePath)
}

// BasePathFromContext retrieves the base path from context (empty string if not set).
func BasePathFromContext(ctx context.Context) string {
	bp, _ := ctx.Value(basePathCtxKey{}).(string)
	return bp
}

type csrfCtxKey struct{}

// ContextWithCSRFToken stores the CSRF token in context.
func ContextWithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, csrfCtxKey{}, token)
}

// CSRFTokenFromContext retrieves the CSRF token from context.
func CSRFTokenFromContext(ctx context.Context) string {
	t, _ := ctx.Value(csrfCtxKey{}).(string)
	return t
}
