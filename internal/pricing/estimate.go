// Package pricing estimates the processing cost of one pipeline run.
package pricing

import "math"

// Usage holds the estimated token counts and cost of one analysis call.
// Counts come from a coarse 4-characters-per-token heuristic, not a real
// tokenizer, so the cost is an approximation and never billing-exact.
type Usage struct {
	TokensIn  int
	TokensOut int
	CostUSD   float64
}

// Estimate derives token counts from text lengths and prices them.
// Prices are USD per million tokens and are injected by the caller so
// they can change without touching this code.
func Estimate(transcript, serializedAnalysis string, priceInPerMTok, priceOutPerMTok float64) Usage {
	tokensIn := ceilDiv(len(transcript), 4)
	tokensOut := ceilDiv(len(serializedAnalysis), 4)

	cost := float64(tokensIn)/1_000_000*priceInPerMTok +
		float64(tokensOut)/1_000_000*priceOutPerMTok

	return Usage{
		TokensIn:  tokensIn,
		TokensOut: tokensOut,
		CostUSD:   round4(cost),
	}
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
