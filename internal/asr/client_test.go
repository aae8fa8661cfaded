package asr

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHTTPClient_Transcribe(t *testing.T) {
	var gotPath, gotAuth, gotFilename, gotModel string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotModel = r.FormValue("model")
		if files := r.MultipartForm.File["file"]; len(files) == 1 {
			gotFilename = files[0].Filename
		}

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"text":"today was a good day"}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "test-key", "whisper-1")
	result, err := c.Transcribe(context.Background(), strings.NewReader("fake-audio"), "audio.webm")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text != "today was a good day" {
		t.Errorf("Text = %q, want %q", result.Text, "today was a good day")
	}
	if gotPath != "/v1/audio/transcriptions" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth = %q", gotAuth)
	}
	if gotFilename != "audio.webm" {
		t.Errorf("filename hint = %q, want %q", gotFilename, "audio.webm")
	}
	if gotModel != "whisper-1" {
		t.Errorf("model = %q, want %q", gotModel, "whisper-1")
	}
}

func TestHTTPClient_TranscribeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, "rate limit exceeded")
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "test-key", "whisper-1")
	_, err := c.Transcribe(context.Background(), strings.NewReader("fake-audio"), "audio.mp3")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusTooManyRequests {
		t.Errorf("Status = %d, want %d", apiErr.Status, http.StatusTooManyRequests)
	}
	if apiErr.Body != "rate limit exceeded" {
		t.Errorf("Body = %q", apiErr.Body)
	}
}

func TestHTTPClient_TranscribeBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "not json")
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "test-key", "whisper-1")
	_, err := c.Transcribe(context.Background(), strings.NewReader("fake-audio"), "audio.mp3")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestHTTPClient_Options(t *testing.T) {
	c := NewHTTPClient("http://localhost:9000/", "k", "whisper-1", WithTimeout(30*time.Second))
	if c.httpClient.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want %v", c.httpClient.Timeout, 30*time.Second)
	}
	if c.baseURL != "http://localhost:9000" {
		t.Errorf("baseURL = %q, trailing slash should be trimmed", c.baseURL)
	}
}
