package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"

	appI18n "github.com/pavithraB-wec/OnlineQuizSystem/internal/i18n"
	"github.com/pavithraB-wec/OnlineQuizSystem/internal/model"
)

// ExamPage renders a course's questions as one submission form. Option inputs
// are named q_<questionID>; unanswered questions simply post nothing.
func ExamPage(course model.Course, questions []model.Question) templ.Component {
	return page(course.Name, func(ctx context.Context) string {
		var b strings.Builder
		if len(questions) == 0 {
			fmt.Fprintf(&b, `<p>%s</p>`, esc(appI18n.T(ctx, "NoQuestionsYet")))
			return b.String()
		}

		fmt.Fprintf(&b, `<form method="post" action="%s/exam/%d">`,
			esc(model.BasePathFromContext(ctx)), course.ID)
		b.WriteString(csrfField(ctx))
		for i, q := range questions {
			b.WriteString(`<fieldset class="question">`)
			fmt.Fprintf(&b, `<legend>%d. %s <em>(%d)</em></legend>`, i+1, esc(q.Text), q.Marks)
			for _, opt := range q.Options() {
				fmt.Fprintf(&b, `<label><input type="radio" name="q_%d" value="%s"> %s. %s</label>`,
					q.ID, opt.Letter, opt.Letter, esc(opt.Text))
			}
			b.WriteString(`</fieldset>`)
		}
		fmt.Fprintf(&b, `<button type="submit">%s</button>`, esc(appI18n.T(ctx, "SubmitExam")))
		b.WriteString(`</form>`)
		return b.String()
	})
}

// ResultsPage lists a student's own results, newest first. notice carries the
// just-submitted score line, or is empty.
func ResultsPage(results []model.Result, notice string) templ.Component {
	return page("Results", func(ctx context.Context) string {
		var b strings.Builder
		b.WriteString(noticeBox(notice))
		b.WriteString(`<table><tbody>`)
		for _, r := range results {
			name := r.CourseName
			if name == "" {
				name = "—"
			}
			fmt.Fprintf(&b, `<tr><td>%s</td><td>%d/%d</td><td>%s</td></tr>`,
				esc(name), r.Score, r.TotalMarks, esc(r.TakenAt.Format("2006-01-02 15:04")))
		}
		b.WriteString(`</tbody></table>`)
		return b.String()
	})
}
