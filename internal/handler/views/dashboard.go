package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"

	appI18n "github.com/pavithraB-wec/OnlineQuizSystem/internal/i18n"
	"github.com/pavithraB-wec/OnlineQuizSystem/internal/model"
)

func statCard(ctx context.Context, labelID string, value int) string {
	return fmt.Sprintf(`<div class="stat"><span class="label">%s</span><span class="value">%d</span></div>`,
		esc(appI18n.T(ctx, labelID)), value)
}

// AdminDashboardPage shows aggregate counts and the pending-teacher queue.
func AdminDashboardPage(stats model.AdminStats, pending []model.User, notice string) templ.Component {
	return page("Dashboard", func(ctx context.Context) string {
		var b strings.Builder
		b.WriteString(noticeBox(notice))
		b.WriteString(`<div class="stats">`)
		b.WriteString(statCard(ctx, "TotalStudents", stats.Students))
		b.WriteString(statCard(ctx, "TotalTeachers", stats.Teachers))
		b.WriteString(statCard(ctx, "TotalCourses", stats.Courses))
		b.WriteString(statCard(ctx, "TotalQuestions", stats.Questions))
		b.WriteString(`</div>`)

		fmt.Fprintf(&b, "<h2>%s</h2>", esc(appI18n.T(ctx, "PendingTeachers")))
		if len(pending) == 0 {
			b.WriteString("<p>—</p>")
			return b.String()
		}
		b.WriteString("<ul>")
		for _, t := range pending {
			fmt.Fprintf(&b, `<li>%s <a href="%s/admin/approve_teacher/%d">✓</a></li>`,
				esc(t.Username), esc(model.BasePathFromContext(ctx)), t.ID)
		}
		b.WriteString("</ul>")
		return b.String()
	})
}

// TeacherDashboardPage shows aggregate counts for a teacher.
func TeacherDashboardPage(stats model.TeacherStats, notice string) templ.Component {
	return page("Dashboard", func(ctx context.Context) string {
		var b strings.Builder
		b.WriteString(noticeBox(notice))
		b.WriteString(`<div class="stats">`)
		b.WriteString(statCard(ctx, "TotalStudents", stats.Students))
		b.WriteString(statCard(ctx, "TotalCourses", stats.Courses))
		b.WriteString(statCard(ctx, "TotalQuestions", stats.Questions))
		b.WriteString(`</div>`)
		return b.String()
	})
}

// StudentDashboardPage lists every course with a take-exam link.
func StudentDashboardPage(courses []model.Course, stats model.StudentStats, notice string) templ.Component {
	return page("Dashboard", func(ctx context.Context) string {
		var b strings.Builder
		b.WriteString(noticeBox(notice))
		b.WriteString(`<div class="stats">`)
		b.WriteString(statCard(ctx, "TotalCourses", stats.Courses))
		b.WriteString(statCard(ctx, "TotalQuestions", stats.Questions))
		b.WriteString(`</div>`)

		fmt.Fprintf(&b, "<h2>%s</h2>", esc(appI18n.T(ctx, "Courses")))
		b.WriteString("<ul>")
		for _, c := range courses {
			fmt.Fprintf(&b, `<li>%s — %s <a href="%s/exam/%d">%s</a></li>`,
				esc(c.Name), esc(c.Description),
				esc(model.BasePathFromContext(ctx)), c.ID, esc(appI18n.T(ctx, "TakeExam")))
		}
		b.WriteString("</ul>")
		return b.String()
	})
}
