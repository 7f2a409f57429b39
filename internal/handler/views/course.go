package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"

	appI18n "github.com/pavithraB-wec/OnlineQuizSystem/internal/i18n"
	"github.com/pavithraB-wec/OnlineQuizSystem/internal/model"
)

// CoursesPage lists courses for an admin or teacher. prefix is the route
// prefix the actor manages courses under ("/admin" or "/teacher").
func CoursesPage(courses []model.Course, prefix string, notice string) templ.Component {
	return page("Courses", func(ctx context.Context) string {
		bp := model.BasePathFromContext(ctx)
		var b strings.Builder
		b.WriteString(noticeBox(notice))
		fmt.Fprintf(&b, `<p><a href="%s%s/courses/add">%s</a></p>`,
			esc(bp), esc(prefix), esc(appI18n.T(ctx, "AddCourse")))
		b.WriteString(`<table><tbody>`)
		for _, c := range courses {
			fmt.Fprintf(&b, `<tr><td>%s</td><td>%s</td>`, esc(c.Name), esc(c.Description))
			fmt.Fprintf(&b, `<td><a href="%s/questions/%d">%s</a></td>`,
				esc(bp), c.ID, esc(appI18n.T(ctx, "Questions")))
			fmt.Fprintf(&b, `<td><a href="%s%s/courses/delete/%d">✗</a></td></tr>`,
				esc(bp), esc(prefix), c.ID)
		}
		b.WriteString(`</tbody></table>`)
		return b.String()
	})
}

// CourseFormPage renders the add-course form under the given route prefix.
func CourseFormPage(prefix string, errMsg string) templ.Component {
	return page("Courses", func(ctx context.Context) string {
		var b strings.Builder
		b.WriteString(noticeBox(errMsg))
		fmt.Fprintf(&b, `<form method="post" action="%s">`, esc(href(ctx, prefix+"/courses/add")))
		b.WriteString(csrfField(ctx))
		b.WriteString(`<label>Name <input type="text" name="name" required></label>`)
		b.WriteString(`<label>Description <textarea name="description"></textarea></label>`)
		fmt.Fprintf(&b, `<button type="submit">%s</button>`, esc(appI18n.T(ctx, "AddCourse")))
		b.WriteString(`</form>`)
		return b.String()
	})
}
