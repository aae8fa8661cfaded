package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JournalEntry is one ingested (or manually created) journal record.
// Optional columns are pointers: nil means the value was never assessed.
// Entries are immutable once created; there is no update path.
type JournalEntry struct {
	ID        string    `gorm:"size:36;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	UserID *string `gorm:"size:36;index" json:"user_id,omitempty"`

	Mood    *int    `json:"mood,omitempty"` // 1..10
	Summary *string `gorm:"type:text" json:"summary,omitempty"`
	Advice  *string `gorm:"type:text" json:"advice,omitempty"`

	Transcript *string `gorm:"type:text" json:"transcript,omitempty"`
	AudioPath  *string `gorm:"size:255" json:"audio_path,omitempty"`

	ModelASR      *string `gorm:"size:64" json:"model_asr,omitempty"`
	ModelAnalysis *string `gorm:"size:64" json:"model_analysis,omitempty"`

	MsElapsed       *int64   `json:"ms_elapsed,omitempty"`
	TokensInput     *int     `json:"tokens_input,omitempty"`
	TokensOutput    *int     `json:"tokens_output,omitempty"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
	CostEstimateUSD *float64 `json:"cost_estimate_usd,omitempty"` // heuristic, never billing-exact
}

// BeforeCreate assigns the opaque id at insert time.
func (e *JournalEntry) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// DailyMoodPoint is one point of the derived daily mood series. It is
// produced fresh per aggregation request and never persisted.
type DailyMoodPoint struct {
	Day     string  `json:"day"` // YYYY-MM-DD
	AvgMood float64 `json:"avg_mood"`
}
