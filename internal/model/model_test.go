package model

import (
	"context"
	"testing"
)

func TestRoleValid(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleAdmin, true},
		{RoleTeacher, true},
		{RoleStudent, true},
		{Role(""), false},
		{Role("superuser"), false},
		{Role("Admin"), false},
	}
	for _, tt := range tests {
		if got := tt.role.Valid(); got != tt.want {
			t.Errorf("Role(%q).Valid() = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestCourseOwnedBy(t *testing.T) {
	course := Course{ID: 1, CreatedBy: 42}

	tests := []struct {
		name string
		user *User
		want bool
	}{
		{"creator", &User{ID: 42, Role: RoleTeacher}, true},
		{"other teacher", &User{ID: 7, Role: RoleTeacher}, false},
		{"any admin", &User{ID: 7, Role: RoleAdmin}, true},
		{"student", &User{ID: 42, Role: RoleStudent}, true}, // same ID still counts as creator
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := course.OwnedBy(tt.user); got != tt.want {
				t.Errorf("OwnedBy(%+v) = %v, want %v", tt.user, got, tt.want)
			}
		})
	}
}

func TestQuestionOptions(t *testing.T) {
	q := Question{OptionA: "1", OptionB: "2", OptionC: "3", OptionD: "4"}
	opts := q.Options()
	if len(opts) != 4 {
		t.Fatalf("expected 4 options, got %d", len(opts))
	}
	for i, want := range []string{"A", "B", "C", "D"} {
		if opts[i].Letter != want {
			t.Errorf("option %d: expected letter %q, got %q", i, want, opts[i].Letter)
		}
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()

	if UserFromContext(ctx) != nil {
		t.Error("expected nil user on empty context")
	}
	if BasePathFromContext(ctx) != "" {
		t.Error("expected empty base path on empty context")
	}
	if CSRFTokenFromContext(ctx) != "" {
		t.Error("expected empty CSRF token on empty context")
	}

	u := &User{ID: 1, Username: "alice"}
	ctx = ContextWithUser(ctx, u)
	ctx = ContextWithBasePath(ctx, "/quiz")
	ctx = ContextWithCSRFToken(ctx, "tok")

	if got := UserFromContext(ctx); got != u {
		t.Errorf("expected stored user, got %+v", got)
	}
	if got := BasePathFromContext(ctx); got != "/quiz" {
		t.Errorf("expected /quiz, got %q", got)
	}
	if got := CSRFTokenFromContext(ctx); got != "tok" {
		t.Errorf("expected tok, got %q", got)
	}
}
