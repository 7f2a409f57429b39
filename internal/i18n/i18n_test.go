package i18n

import (
	"context"
	"testing"
)

func initTestBundle(t *testing.T) {
	t.Helper()
	if err := Init("en"); err != nil {
		t.Fatalf("Init: %v", err)
	}
}

func ctxFor(lang string) context.Context {
	return WithLocalizer(context.Background(), NewLocalizer(lang))
}

func TestInitRejectsBadLanguage(t *testing.T) {
	if err := Init("not a tag"); err == nil {
		t.Fatal("expected error for invalid language tag")
	}
}

func TestTranslate(t *testing.T) {
	initTestBundle(t)

	tests := []struct {
		lang  string
		msgID string
		want  string
	}{
		{"en", "AppTitle", "Online Quiz System"},
		{"ru", "AppTitle", "Система онлайн-тестирования"},
		{"en", "AccessDenied", "Access denied."},
		{"ru", "AccessDenied", "Доступ запрещён."},
		{"en", "PendingApproval", "Your teacher account is not approved yet."},
	}
	for _, tt := range tests {
		t.Run(tt.lang+"/"+tt.msgID, func(t *testing.T) {
			if got := T(ctxFor(tt.lang), tt.msgID); got != tt.want {
				t.Errorf("T(%s, %s) = %q, want %q", tt.lang, tt.msgID, got, tt.want)
			}
		})
	}
}

func TestTranslateMissingKeyFallsBackToID(t *testing.T) {
	initTestBundle(t)

	if got := T(ctxFor("en"), "NoSuchMessage"); got != "NoSuchMessage" {
		t.Errorf("expected message ID fallback, got %q", got)
	}
}

func TestTranslateWithoutLocalizerInContext(t *testing.T) {
	initTestBundle(t)

	// A bare context falls back to the English localizer.
	if got := T(context.Background(), "Login"); got != "Login" {
		t.Errorf("expected English fallback, got %q", got)
	}
}

func TestTranslateWithData(t *testing.T) {
	initTestBundle(t)

	got := Td(ctxFor("en"), "ExamScore", map[string]any{"Score": 3, "Total": 10})
	want := "Exam submitted. You scored 3/10."
	if got != want {
		t.Errorf("Td = %q, want %q", got, want)
	}
}

func TestTranslatePlural(t *testing.T) {
	initTestBundle(t)

	tests := []struct {
		lang  string
		count int
		want  string
	}{
		{"en", 1, "1 question"},
		{"en", 5, "5 questions"},
		{"ru", 1, "1 вопрос"},
		{"ru", 3, "3 вопроса"},
		{"ru", 7, "7 вопросов"},
	}
	for _, tt := range tests {
		if got := Tp(ctxFor(tt.lang), "QuestionsInCourse", tt.count); got != tt.want {
			t.Errorf("Tp(%s, %d) = %q, want %q", tt.lang, tt.count, got, tt.want)
		}
	}
}
