package analysis

import (
	"strings"
	"testing"
)

func TestParse_Valid(t *testing.T) {
	raw := `{"mood": 7, "summary": "A calm, productive day.", "advice": "Take a short walk after lunch."}`

	got, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Mood != 7 {
		t.Errorf("Mood = %d, want 7", got.Mood)
	}
	if got.Summary != "A calm, productive day." {
		t.Errorf("Summary = %q", got.Summary)
	}
	if got.Advice != "Take a short walk after lunch." {
		t.Errorf("Advice = %q", got.Advice)
	}
}

func TestParse_MarkdownFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"json fence", "```json\n{\"mood\": 3, \"summary\": \"s\", \"advice\": \"a\"}\n```"},
		{"bare fence", "```\n{\"mood\": 3, \"summary\": \"s\", \"advice\": \"a\"}\n```"},
		{"surrounding whitespace", "  \n{\"mood\": 3, \"summary\": \"s\", \"advice\": \"a\"}\n  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Mood != 3 {
				t.Errorf("Mood = %d, want 3", got.Mood)
			}
		})
	}
}

func TestParse_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantSub string
	}{
		{"empty", "", "empty"},
		{"not json", "I had a great day!", "not valid JSON"},
		{"missing mood", `{"summary": "s", "advice": "a"}`, "missing field: mood"},
		{"missing summary", `{"mood": 5, "advice": "a"}`, "missing field: summary"},
		{"missing advice", `{"mood": 5, "summary": "s"}`, "missing field: advice"},
		{"mood zero", `{"mood": 0, "summary": "s", "advice": "a"}`, "out of range"},
		{"mood eleven", `{"mood": 11, "summary": "s", "advice": "a"}`, "out of range"},
		{"mood negative", `{"mood": -3, "summary": "s", "advice": "a"}`, "out of range"},
		{"mood fractional", `{"mood": 7.5, "summary": "s", "advice": "a"}`, "not valid JSON"},
		{"mood as string", `{"mood": "7", "summary": "s", "advice": "a"}`, "not valid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantSub)
			}
		})
	}
}

func TestParse_BoundaryMoods(t *testing.T) {
	for _, mood := range []string{"1", "10"} {
		raw := `{"mood": ` + mood + `, "summary": "s", "advice": "a"}`
		if _, err := Parse(raw); err != nil {
			t.Errorf("Parse with mood=%s: unexpected error: %v", mood, err)
		}
	}
}
