// Package mood turns the sparse entry log into a dense, gap-filled daily
// mood series for charting.
package mood

import (
	"context"
	"math"
	"time"

	"github.com/dylanm29799/HowAreYou/internal/models"
	"github.com/dylanm29799/HowAreYou/internal/storage"
)

const (
	// MinDays and MaxDays bound the requested window. Out-of-range values
	// are clamped silently, never rejected.
	MinDays = 1
	MaxDays = 90
)

// Reader is the slice of the datastore the aggregator needs.
type Reader interface {
	MoodsSince(ctx context.Context, since time.Time, userID *string) ([]storage.MoodRow, error)
}

// Aggregator builds daily mood series from raw entries.
type Aggregator struct {
	reader Reader
	now    func() time.Time
}

// New builds an aggregator over reader.
func New(reader Reader) *Aggregator {
	return &Aggregator{reader: reader, now: time.Now}
}

// ClampDays constrains a requested day count into [MinDays, MaxDays].
func ClampDays(days int) int {
	if days < MinDays {
		return MinDays
	}
	if days > MaxDays {
		return MaxDays
	}
	return days
}

// DailyMood returns exactly clamp(days) points, one per calendar day,
// oldest first, ending today. Entries are bucketed by the day of their
// creation instant; a day with no mood values yields avg_mood = 0 so
// chart clients never deal with holes. Averages are rounded to 2 places.
func (a *Aggregator) DailyMood(ctx context.Context, days int, userID *string) ([]models.DailyMoodPoint, error) {
	days = ClampDays(days)

	now := a.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := today.AddDate(0, 0, -(days - 1))

	rows, err := a.reader.MoodsSince(ctx, start, userID)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		sum   int
		count int
	}
	buckets := make(map[string]*bucket, days)
	for _, row := range rows {
		if row.Mood == nil {
			continue // manual entries without an assessed mood
		}
		key := row.CreatedAt.In(now.Location()).Format("2006-01-02")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.sum += *row.Mood
		b.count++
	}

	points := make([]models.DailyMoodPoint, 0, days)
	for day := start; !day.After(today); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		avg := 0.0
		if b, ok := buckets[key]; ok && b.count > 0 {
			avg = round2(float64(b.sum) / float64(b.count))
		}
		points = append(points, models.DailyMoodPoint{Day: key, AvgMood: avg})
	}

	return points, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
