package ingest

import (
	"errors"
	"fmt"
)

// ErrNoAudio means no usable audio source was supplied.
var ErrNoAudio = errors.New("no audio source supplied")

// TranscriptionError is a speech-to-text failure, surfaced only after the
// retry wrapper gave up (or classified the failure as non-retryable).
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string { return fmt.Sprintf("transcription: %v", e.Err) }
func (e *TranscriptionError) Unwrap() error { return e.Err }

// AnalysisParseError is a failed or malformed structured analysis. The
// analysis step is never retried.
type AnalysisParseError struct {
	Err error
}

func (e *AnalysisParseError) Error() string { return fmt.Sprintf("analysis: %v", e.Err) }
func (e *AnalysisParseError) Unwrap() error { return e.Err }

// StorageError is a persistence failure. There is no partial row to clean
// up: the insert either happened fully or not at all.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %v", e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }
