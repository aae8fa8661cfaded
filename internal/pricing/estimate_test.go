package pricing

import (
	"strings"
	"testing"
)

func TestEstimate_KnownExample(t *testing.T) {
	// 400 chars in, 80 chars out, $0.60/$2.40 per MTok
	transcript := strings.Repeat("a", 400)
	analysis := strings.Repeat("b", 80)

	got := Estimate(transcript, analysis, 0.60, 2.40)

	if got.TokensIn != 100 {
		t.Errorf("TokensIn = %d, want 100", got.TokensIn)
	}
	if got.TokensOut != 20 {
		t.Errorf("TokensOut = %d, want 20", got.TokensOut)
	}
	// 0.00006 + 0.000048 = 0.000108 -> 0.0001 at 4 places
	if got.CostUSD != 0.0001 {
		t.Errorf("CostUSD = %v, want 0.0001", got.CostUSD)
	}
}

func TestEstimate_CeilDivision(t *testing.T) {
	tests := []struct {
		name      string
		inLen     int
		wantInTok int
	}{
		{"empty", 0, 0},
		{"one char", 1, 1},
		{"exactly one token", 4, 1},
		{"one over", 5, 2},
		{"seven chars", 7, 2},
		{"eight chars", 8, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Estimate(strings.Repeat("x", tt.inLen), "", 1, 1)
			if got.TokensIn != tt.wantInTok {
				t.Errorf("TokensIn = %d, want %d", got.TokensIn, tt.wantInTok)
			}
		})
	}
}

func TestEstimate_Deterministic(t *testing.T) {
	a := Estimate("hello world", `{"mood":7}`, 0.60, 2.40)
	b := Estimate("hello world", `{"mood":7}`, 0.60, 2.40)
	if a != b {
		t.Errorf("same inputs gave different results: %+v vs %+v", a, b)
	}
}

func TestEstimate_MonotoneInTranscriptLength(t *testing.T) {
	analysis := strings.Repeat("y", 120)
	prev := Estimate("", analysis, 0.60, 2.40).CostUSD
	for n := 100; n <= 10000; n += 100 {
		cur := Estimate(strings.Repeat("x", n), analysis, 0.60, 2.40).CostUSD
		if cur < prev {
			t.Fatalf("cost decreased when transcript grew to %d chars: %v < %v", n, cur, prev)
		}
		prev = cur
	}
}

func TestEstimate_PricesInjected(t *testing.T) {
	transcript := strings.Repeat("a", 4_000_000) // exactly 1M tokens
	got := Estimate(transcript, "", 3.00, 12.00)
	if got.CostUSD != 3.00 {
		t.Errorf("CostUSD = %v, want 3.00", got.CostUSD)
	}
}
