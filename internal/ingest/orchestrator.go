// Package ingest sequences one audio upload into one durable journal entry:
// transcription (with retry), single-shot structured analysis, cost
// estimation, persistence.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dylanm29799/HowAreYou/internal/analysis"
	"github.com/dylanm29799/HowAreYou/internal/asr"
	"github.com/dylanm29799/HowAreYou/internal/models"
	"github.com/dylanm29799/HowAreYou/internal/pricing"
)

// Source is the caller's temporary audio resource. Open returns a fresh
// reader over the same bytes each time it is called; Cleanup releases the
// backing resource and is invoked exactly once per ingestion, on every
// exit path.
type Source interface {
	Open() (io.ReadCloser, error)
	Cleanup() error
}

// EntryInserter persists one complete entry atomically.
type EntryInserter interface {
	InsertEntry(ctx context.Context, entry *models.JournalEntry) error
}

const promptTemplate = `You are a caring journaling assistant. Given the spoken journal entry below, respond with strict JSON only, no prose, with exactly these fields:
"mood": an integer from 1 to 10 rating the speaker's mood,
"summary": a 1-2 sentence summary of the entry,
"advice": one short practical tip for the speaker.

Journal entry:
%s`

// Options carries the pipeline knobs main wires from config.
type Options struct {
	ASRModel        string
	ChatModel       string
	PriceInPerMTok  float64
	PriceOutPerMTok float64
}

// Orchestrator owns retry and cleanup policy for the ingestion pipeline.
type Orchestrator struct {
	retrier  *asr.Retrier
	analyzer analysis.Client
	store    EntryInserter
	opts     Options
}

// New builds an orchestrator around explicitly injected collaborators.
func New(retrier *asr.Retrier, analyzer analysis.Client, store EntryInserter, opts Options) *Orchestrator {
	return &Orchestrator{
		retrier:  retrier,
		analyzer: analyzer,
		store:    store,
		opts:     opts,
	}
}

// Request is one upload handed to the pipeline. AudioPath and
// DurationSeconds are recorded as-is; both are owned by the upload
// boundary, not computed here.
type Request struct {
	Source          Source
	MimeType        string
	OriginalName    string
	AudioPath       string
	DurationSeconds *float64
	UserID          *string
}

// Ingest drives one upload through the full pipeline and returns the
// persisted entry. On any failure nothing is inserted; the source is
// released exactly once either way.
func (o *Orchestrator) Ingest(ctx context.Context, req Request) (*models.JournalEntry, error) {
	if req.Source == nil {
		return nil, ErrNoAudio
	}
	defer req.Source.Cleanup()

	started := time.Now()

	filename := FilenameHint(req.MimeType, req.OriginalName)

	transcript, err := o.retrier.Transcribe(ctx, req.Source.Open, filename)
	if err != nil {
		return nil, &TranscriptionError{Err: err}
	}

	prompt := fmt.Sprintf(promptTemplate, transcript.Text)
	raw, err := o.analyzer.Complete(ctx, prompt)
	if err != nil {
		return nil, &AnalysisParseError{Err: err}
	}
	result, err := analysis.Parse(raw)
	if err != nil {
		return nil, &AnalysisParseError{Err: err}
	}

	// serialize the validated analysis the same way it is persisted, so
	// the output-token estimate tracks what the model actually produced
	serialized, err := json.Marshal(result)
	if err != nil {
		return nil, &AnalysisParseError{Err: err}
	}

	usage := pricing.Estimate(transcript.Text, string(serialized),
		o.opts.PriceInPerMTok, o.opts.PriceOutPerMTok)

	elapsed := time.Since(started).Milliseconds()

	entry := &models.JournalEntry{
		UserID:          req.UserID,
		Mood:            &result.Mood,
		Summary:         &result.Summary,
		Advice:          &result.Advice,
		Transcript:      &transcript.Text,
		ModelASR:        &o.opts.ASRModel,
		ModelAnalysis:   &o.opts.ChatModel,
		MsElapsed:       &elapsed,
		TokensInput:     &usage.TokensIn,
		TokensOutput:    &usage.TokensOut,
		DurationSeconds: req.DurationSeconds,
		CostEstimateUSD: &usage.CostUSD,
	}
	if req.AudioPath != "" {
		entry.AudioPath = &req.AudioPath
	}

	if err := o.store.InsertEntry(ctx, entry); err != nil {
		return nil, &StorageError{Err: err}
	}

	return entry, nil
}

// FilenameHint maps the upload's MIME type to the filename the
// transcription service uses to recognize the container format. It does
// not rename the stored file.
func FilenameHint(mimeType, originalName string) string {
	m := strings.ToLower(mimeType)
	switch {
	case m == "":
		if originalName != "" {
			return originalName
		}
		return "audio.mp3"
	case strings.Contains(m, "mp4"), strings.Contains(m, "aac"):
		return "audio.mp4"
	case strings.Contains(m, "webm"):
		return "audio.webm"
	case strings.Contains(m, "ogg"), strings.Contains(m, "opus"):
		return "audio.ogg"
	case strings.Contains(m, "mpeg"), strings.Contains(m, "mp3"):
		return "audio.mp3"
	case strings.Contains(m, "wav"):
		return "audio.wav"
	default:
		return "audio.mp3"
	}
}

// FileSource is a Source backed by a temporary file on disk. Cleanup
// removes the file.
type FileSource struct {
	Path string
}

// Open returns a fresh reader positioned at the start of the file.
func (s *FileSource) Open() (io.ReadCloser, error) {
	return os.Open(s.Path)
}

// Cleanup deletes the backing file.
func (s *FileSource) Cleanup() error {
	return os.Remove(s.Path)
}
