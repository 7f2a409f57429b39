// Package views renders every page of the quiz application as a
// templ.Component. Components read the localizer, base path, and CSRF token
// from the request context at render time.
package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	appI18n "github.com/pavithraB-wec/OnlineQuizSystem/internal/i18n"
	"github.com/pavithraB-wec/OnlineQuizSystem/internal/model"
)

func esc(s string) string {
	return templ.EscapeString(s)
}

// href prefixes a path with the configured base path from context.
func href(ctx context.Context, path string) string {
	return model.BasePathFromContext(ctx) + path
}

// csrfField emits the hidden CSRF input for POST forms.
func csrfField(ctx context.Context) string {
	token := model.CSRFTokenFromContext(ctx)
	return `<input type="hidden" name="csrf_token" value="` + esc(token) + `">`
}

// noticeBox renders a one-line notice, or nothing when the message is empty.
func noticeBox(msg string) string {
	if msg == "" {
		return ""
	}
	return `<p class="notice">` + esc(msg) + `</p>`
}

func navBar(ctx context.Context) string {
	u := model.UserFromContext(ctx)
	if u == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<nav>`)
	switch u.Role {
	case model.RoleAdmin:
		fmt.Fprintf(&b, `<a href="%s">%s</a> <a href="%s">%s</a> `,
			esc(href(ctx, "/admin/dashboard")), esc(appI18n.T(ctx, "Dashboard")),
			esc(href(ctx, "/admin/courses")), esc(appI18n.T(ctx, "Courses")))
	case model.RoleTeacher:
		fmt.Fprintf(&b, `<a href="%s">%s</a> <a href="%s">%s</a> `,
			esc(href(ctx, "/teacher/dashboard")), esc(appI18n.T(ctx, "Dashboard")),
			esc(href(ctx, "/teacher/courses")), esc(appI18n.T(ctx, "Courses")))
	case model.RoleStudent:
		fmt.Fprintf(&b, `<a href="%s">%s</a> <a href="%s">%s</a> `,
			esc(href(ctx, "/student/dashboard")), esc(appI18n.T(ctx, "Dashboard")),
			esc(href(ctx, "/results")), esc(appI18n.T(ctx, "Results")))
	}
	fmt.Fprintf(&b, `<span class="user">%s</span> <a href="%s">%s</a>`,
		esc(u.Username), esc(href(ctx, "/logout")), esc(appI18n.T(ctx, "Logout")))
	b.WriteString(`</nav>`)
	return b.String()
}

// page wraps a body fragment in the shared HTML shell. The body must already
// be escaped by its producer.
func page(title string, body func(ctx context.Context) string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">")
		fmt.Fprintf(&b, "<title>%s — %s</title>", esc(title), esc(appI18n.T(ctx, "AppTitle")))
		b.WriteString(`<link rel="stylesheet" href="` + esc(href(ctx, "/static/style.css")) + `">`)
		b.WriteString("</head><body>")
		b.WriteString(navBar(ctx))
		b.WriteString(`<main>`)
		fmt.Fprintf(&b, "<h1>%s</h1>", esc(title))
		b.WriteString(body(ctx))
		b.WriteString("</main></body></html>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// NotFoundPage renders the standard not-found response body.
func NotFoundPage() templ.Component {
	return page("404", func(ctx context.Context) string {
		return "<p>Not found.</p>"
	})
}
