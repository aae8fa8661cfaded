package models

import "time"

// RequestLog records one API request for the access trail.
type RequestLog struct {
	ID         uint   `gorm:"primaryKey"`
	Method     string `gorm:"size:16"`
	Path       string `gorm:"size:255"`
	Status     int
	IP         string `gorm:"size:64"`
	UserAgent  string `gorm:"size:255"`
	DurationMs int64
	CreatedAt  time.Time
}
