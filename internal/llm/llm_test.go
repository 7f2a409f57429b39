package llm

import (
	"encoding/json"
	"testing"

	"github.com/pavithraB-wec/OnlineQuizSystem/internal/model"
)

func fullDraft(correct string, marks int) model.QuestionDraft {
	return model.QuestionDraft{
		Text:          "What is inertia?",
		OptionA:       "a", OptionB: "b", OptionC: "c", OptionD: "d",
		CorrectOption: correct,
		Marks:         marks,
	}
}

func TestNormalizeDrafts(t *testing.T) {
	in := []model.QuestionDraft{
		fullDraft("A", 2),
		fullDraft(" b ", 1), // normalized to B
		fullDraft("E", 1),   // dropped
		fullDraft("", 1),    // dropped
		fullDraft("C", 0),   // marks lifted to 1
		{CorrectOption: "A", Marks: 1}, // incomplete, dropped
	}

	out := normalizeDrafts(in)
	if len(out) != 3 {
		t.Fatalf("expected 3 usable drafts, got %d", len(out))
	}
	if out[0].CorrectOption != "A" || out[0].Marks != 2 {
		t.Errorf("unexpected first draft: %+v", out[0])
	}
	if out[1].CorrectOption != "B" {
		t.Errorf("expected normalized correct option B, got %q", out[1].CorrectOption)
	}
	if out[2].Marks != 1 {
		t.Errorf("expected marks lifted to 1, got %d", out[2].Marks)
	}
}

func TestNormalizeDraftsAllInvalid(t *testing.T) {
	out := normalizeDrafts([]model.QuestionDraft{fullDraft("X", 1), fullDraft("AB", 1)})
	if len(out) != 0 {
		t.Fatalf("expected no drafts, got %d", len(out))
	}
}

func TestDraftResponseEnvelope(t *testing.T) {
	raw := `{"questions": [{"text": "Q", "option_a": "1", "option_b": "2",
		"option_c": "3", "option_d": "4", "correct_option": "B", "marks": 2}]}`

	var parsed draftResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(parsed.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(parsed.Questions))
	}
	q := parsed.Questions[0]
	if q.CorrectOption != "B" || q.Marks != 2 || q.OptionD != "4" {
		t.Errorf("unexpected draft: %+v", q)
	}
}

func TestNewLoadsPrompts(t *testing.T) {
	c, err := New("http://localhost:9999/v1", "key", "test-model")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.model != "test-model" {
		t.Errorf("expected model name kept, got %q", c.model)
	}
}
