// Package storage persists and reads journal entries through gorm.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/dylanm29799/HowAreYou/internal/models"
	"github.com/dylanm29799/HowAreYou/internal/util"

	"gorm.io/gorm"
)

const (
	// DefaultListLimit 默认分页大小
	DefaultListLimit = 20
	// MaxListLimit 分页上限
	MaxListLimit = 100
)

// EntryStorage is the datastore handle; it is constructed once at startup
// and injected wherever entries are read or written.
type EntryStorage struct {
	db         *gorm.DB
	encryptKey string
}

// NewEntryStorage wraps db. A non-empty encryptKey enables at-rest
// encryption of the transcript, summary and advice columns; everything
// above this layer only ever sees plaintext.
func NewEntryStorage(db *gorm.DB, encryptKey string) *EntryStorage {
	return &EntryStorage{
		db:         db,
		encryptKey: encryptKey,
	}
}

// InsertEntry writes one complete entry as a single atomic statement.
// There is no retry: the row either exists fully or not at all.
func (s *EntryStorage) InsertEntry(ctx context.Context, entry *models.JournalEntry) error {
	if err := s.sealEntry(entry); err != nil {
		return fmt.Errorf("seal entry: %w", err)
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}

	s.openEntry(entry)
	return nil
}

// ListEntries returns entries newest first. limit defaults to 20 and is
// capped at 100.
func (s *EntryStorage) ListEntries(ctx context.Context, limit int) ([]models.JournalEntry, error) {
	limit = util.ClampLimit(limit, DefaultListLimit, MaxListLimit)

	var entries []models.JournalEntry
	if err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	for i := range entries {
		s.openEntry(&entries[i])
	}
	return entries, nil
}

// MoodRow is the minimal projection the aggregator needs.
type MoodRow struct {
	CreatedAt time.Time
	Mood      *int
}

// MoodsSince returns creation instants and moods of entries created at or
// after since, optionally filtered to one user. Single read-only query
// over immutable rows; no locking needed.
func (s *EntryStorage) MoodsSince(ctx context.Context, since time.Time, userID *string) ([]MoodRow, error) {
	q := s.db.WithContext(ctx).
		Model(&models.JournalEntry{}).
		Select("created_at", "mood").
		Where("created_at >= ?", since)
	if userID != nil && *userID != "" {
		q = q.Where("user_id = ?", *userID)
	}

	var rows []MoodRow
	if err := q.Order("created_at ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("moods since: %w", err)
	}
	return rows, nil
}

// sealEntry encrypts the sensitive text columns in place.
func (s *EntryStorage) sealEntry(entry *models.JournalEntry) error {
	if s.encryptKey == "" {
		return nil
	}
	for _, field := range []**string{&entry.Transcript, &entry.Summary, &entry.Advice} {
		if *field == nil {
			continue
		}
		enc, err := util.EncryptField(s.encryptKey, **field)
		if err != nil {
			return err
		}
		*field = &enc
	}
	return nil
}

// openEntry decrypts the sensitive text columns in place. Legacy plaintext
// rows pass through unchanged.
func (s *EntryStorage) openEntry(entry *models.JournalEntry) {
	if s.encryptKey == "" {
		return
	}
	for _, field := range []**string{&entry.Transcript, &entry.Summary, &entry.Advice} {
		if *field == nil {
			continue
		}
		plain := util.DecryptField(s.encryptKey, **field)
		*field = &plain
	}
}
