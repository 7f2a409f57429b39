package views

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	appI18n "github.com/pavithraB-wec/OnlineQuizSystem/internal/i18n"
	"github.com/pavithraB-wec/OnlineQuizSystem/internal/model"
)

// QuestionsPage lists a course's questions for its owner or an admin.
func QuestionsPage(course model.Course, questions []model.Question, llmEnabled bool, notice string) templ.Component {
	return page(course.Name, func(ctx context.Context) string {
		bp := model.BasePathFromContext(ctx)
		var b strings.Builder
		b.WriteString(noticeBox(notice))
		fmt.Fprintf(&b, `<p>%s</p>`, esc(appI18n.Tp(ctx, "QuestionsInCourse", len(questions))))
		fmt.Fprintf(&b, `<p><a href="%s/questions/add/%d">%s</a>`,
			esc(bp), course.ID, esc(appI18n.T(ctx, "AddQuestion")))
		if llmEnabled {
			fmt.Fprintf(&b, ` <a href="%s/questions/generate/%d">%s</a>`,
				esc(bp), course.ID, esc(appI18n.T(ctx, "GenerateQuestions")))
		}
		b.WriteString(`</p>`)

		for _, q := range questions {
			b.WriteString(`<div class="question">`)
			fmt.Fprintf(&b, `<p>%s <em>(%d)</em> <a href="%s/questions/delete/%d">✗</a></p>`,
				esc(q.Text), q.Marks, esc(bp), q.ID)
			b.WriteString(`<ol type="A">`)
			for _, opt := range q.Options() {
				cls := ""
				if opt.Letter == q.CorrectOption {
					cls = ` class="correct"`
				}
				fmt.Fprintf(&b, `<li%s>%s</li>`, cls, esc(opt.Text))
			}
			b.WriteString(`</ol></div>`)
		}
		return b.String()
	})
}

// QuestionFormPage renders the add-question form, optionally prefilled with an
// AI-generated draft.
func QuestionFormPage(course model.Course, draft model.QuestionDraft, errMsg string) templ.Component {
	return page(course.Name, func(ctx context.Context) string {
		var b strings.Builder
		b.WriteString(noticeBox(errMsg))
		fmt.Fprintf(&b, `<form method="post" action="%s/questions/add/%d">`,
			esc(model.BasePathFromContext(ctx)), course.ID)
		b.WriteString(csrfField(ctx))
		fmt.Fprintf(&b, `<label>Question <textarea name="question_text" required>%s</textarea></label>`,
			esc(draft.Text))
		for _, opt := range []struct{ name, label, value string }{
			{"option_a", "A", draft.OptionA},
			{"option_b", "B", draft.OptionB},
			{"option_c", "C", draft.OptionC},
			{"option_d", "D", draft.OptionD},
		} {
			fmt.Fprintf(&b, `<label>%s <input type="text" name="%s" value="%s" required></label>`,
				opt.label, opt.name, esc(opt.value))
		}
		b.WriteString(`<label>Correct <select name="correct_option">`)
		for _, letter := range []string{"A", "B", "C", "D"} {
			sel := ""
			if letter == draft.CorrectOption {
				sel = ` selected`
			}
			fmt.Fprintf(&b, `<option value="%s"%s>%s</option>`, letter, sel, letter)
		}
		b.WriteString(`</select></label>`)
		marks := draft.Marks
		if marks < 1 {
			marks = 1
		}
		fmt.Fprintf(&b, `<label>Marks <input type="number" name="marks" value="%d" min="1"></label>`, marks)
		fmt.Fprintf(&b, `<button type="submit">%s</button>`, esc(appI18n.T(ctx, "AddQuestion")))
		b.WriteString(`</form>`)
		return b.String()
	})
}

// GeneratePage renders the AI draft request form and any drafts produced so
// far. Each draft links back to the add form with its fields prefilled.
func GeneratePage(course model.Course, drafts []model.QuestionDraft, errMsg string) templ.Component {
	return page(course.Name, func(ctx context.Context) string {
		bp := model.BasePathFromContext(ctx)
		var b strings.Builder
		b.WriteString(noticeBox(errMsg))
		fmt.Fprintf(&b, `<form method="post" action="%s/questions/generate/%d">`, esc(bp), course.ID)
		b.WriteString(csrfField(ctx))
		b.WriteString(`<label>Topic <input type="text" name="topic" required></label>`)
		b.WriteString(`<label>Difficulty <select name="difficulty">`)
		for _, d := range []string{"easy", "medium", "hard"} {
			fmt.Fprintf(&b, `<option value="%s">%s</option>`, d, d)
		}
		b.WriteString(`</select></label>`)
		b.WriteString(`<label>Count <input type="number" name="count" value="3" min="1" max="20"></label>`)
		fmt.Fprintf(&b, `<button type="submit">%s</button>`, esc(appI18n.T(ctx, "GenerateQuestions")))
		b.WriteString(`</form>`)

		for _, d := range drafts {
			b.WriteString(`<div class="question draft">`)
			fmt.Fprintf(&b, `<p>%s <em>(%d)</em></p><ol type="A">`, esc(d.Text), d.Marks)
			for _, opt := range []struct{ letter, text string }{
				{"A", d.OptionA}, {"B", d.OptionB}, {"C", d.OptionC}, {"D", d.OptionD},
			} {
				cls := ""
				if opt.letter == d.CorrectOption {
					cls = ` class="correct"`
				}
				fmt.Fprintf(&b, `<li%s>%s</li>`, cls, esc(opt.text))
			}
			b.WriteString(`</ol>`)
			fmt.Fprintf(&b, `<a href="%s/questions/add/%d?%s">%s</a>`,
				esc(bp), course.ID, esc(draftQuery(d)), esc(appI18n.T(ctx, "AddQuestion")))
			b.WriteString(`</div>`)
		}
		return b.String()
	})
}

func draftQuery(d model.QuestionDraft) string {
	v := url.Values{}
	v.Set("question_text", d.Text)
	v.Set("option_a", d.OptionA)
	v.Set("option_b", d.OptionB)
	v.Set("option_c", d.OptionC)
	v.Set("option_d", d.OptionD)
	v.Set("correct_option", d.CorrectOption)
	v.Set("marks", strconv.Itoa(d.Marks))
	return v.Encode()
}
