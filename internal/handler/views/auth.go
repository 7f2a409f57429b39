package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"

	appI18n "github.com/pavithraB-wec/OnlineQuizSystem/internal/i18n"
)

// LoginPage renders the login form. notice holds an already-localized message
// (login failure, registration confirmation) or is empty.
func LoginPage(notice string) templ.Component {
	return page("Login", func(ctx context.Context) string {
		var b strings.Builder
		b.WriteString(noticeBox(notice))
		fmt.Fprintf(&b, `<form method="post" action="%s">`, esc(href(ctx, "/login")))
		b.WriteString(csrfField(ctx))
		fmt.Fprintf(&b, `<label>%s <input type="text" name="username" required></label>`,
			esc(appI18n.T(ctx, "Username")))
		fmt.Fprintf(&b, `<label>%s <input type="password" name="password" required></label>`,
			esc(appI18n.T(ctx, "Password")))
		fmt.Fprintf(&b, `<button type="submit">%s</button>`, esc(appI18n.T(ctx, "Login")))
		b.WriteString(`</form>`)
		fmt.Fprintf(&b, `<p><a href="%s">%s</a></p>`,
			esc(href(ctx, "/register")), esc(appI18n.T(ctx, "Register")))
		return b.String()
	})
}

// RegisterPage renders the registration form. errMsg is an already-localized
// validation failure rendered with the form, or empty.
func RegisterPage(errMsg string) templ.Component {
	return page("Register", func(ctx context.Context) string {
		var b strings.Builder
		b.WriteString(noticeBox(errMsg))
		fmt.Fprintf(&b, `<form method="post" action="%s">`, esc(href(ctx, "/register")))
		b.WriteString(csrfField(ctx))
		fmt.Fprintf(&b, `<label>%s <input type="text" name="username" required></label>`,
			esc(appI18n.T(ctx, "Username")))
		fmt.Fprintf(&b, `<label>%s <input type="password" name="password" required></label>`,
			esc(appI18n.T(ctx, "Password")))
		fmt.Fprintf(&b, `<label>%s <select name="role">`, esc(appI18n.T(ctx, "RoleLabel")))
		fmt.Fprintf(&b, `<option value="student">%s</option>`, esc(appI18n.T(ctx, "RoleStudent")))
		fmt.Fprintf(&b, `<option value="teacher">%s</option>`, esc(appI18n.T(ctx, "RoleTeacher")))
		b.WriteString(`</select></label>`)
		fmt.Fprintf(&b, `<button type="submit">%s</button>`, esc(appI18n.T(ctx, "Register")))
		b.WriteString(`</form>`)
		return b.String()
	})
}
