package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Result is the structured outcome of one analysis call. All three fields
// are required; a response missing any of them is rejected, never defaulted.
type Result struct {
	Mood    int    `json:"mood"` // 1..10
	Summary string `json:"summary"`
	Advice  string `json:"advice"`
}

// rawResult keeps pointers so a missing field is distinguishable from a
// zero value.
type rawResult struct {
	Mood    *int    `json:"mood"`
	Summary *string `json:"summary"`
	Advice  *string `json:"advice"`
}

// Parse validates the raw model output as strict JSON with exactly the
// expected fields. Models like to wrap JSON in markdown fences, so those
// are stripped first. Mood must be an integer in [1,10]; out-of-range
// values are rejected rather than clamped.
func Parse(raw string) (*Result, error) {
	cleaned := stripFences(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("empty analysis response")
	}

	var r rawResult
	dec := json.NewDecoder(strings.NewReader(cleaned))
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("analysis is not valid JSON: %w", err)
	}

	if r.Mood == nil {
		return nil, fmt.Errorf("analysis missing field: mood")
	}
	if r.Summary == nil {
		return nil, fmt.Errorf("analysis missing field: summary")
	}
	if r.Advice == nil {
		return nil, fmt.Errorf("analysis missing field: advice")
	}
	if *r.Mood < 1 || *r.Mood > 10 {
		return nil, fmt.Errorf("mood out of range: %d", *r.Mood)
	}

	return &Result{Mood: *r.Mood, Summary: *r.Summary, Advice: *r.Advice}, nil
}

// stripFences removes a surrounding ```...``` or ```json...``` block.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		// drop the language tag line, e.g. "json"
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
