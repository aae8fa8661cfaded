package handler

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dylanm29799/HowAreYou/internal/config"
	"github.com/dylanm29799/HowAreYou/internal/ingest"
	"github.com/dylanm29799/HowAreYou/internal/models"
	"github.com/dylanm29799/HowAreYou/internal/mood"
	"github.com/dylanm29799/HowAreYou/internal/storage"
	"github.com/dylanm29799/HowAreYou/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EntryHandler 负责日记条目相关接口
type EntryHandler struct {
	Store        *storage.EntryStorage
	Orchestrator *ingest.Orchestrator
	Aggregator   *mood.Aggregator
	Upload       config.UploadConfig
}

func NewEntryHandler(store *storage.EntryStorage, orch *ingest.Orchestrator, agg *mood.Aggregator, upload config.UploadConfig) *EntryHandler {
	return &EntryHandler{
		Store:        store,
		Orchestrator: orch,
		Aggregator:   agg,
		Upload:       upload,
	}
}

// ---------- 请求/响应结构 ----------

type entryResp struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Mood      *int      `json:"mood"`
	Summary   *string   `json:"summary"`
	Advice    *string   `json:"advice"`
}

type manualEntryReq struct {
	UserID     string  `json:"user_id"`
	Mood       *int    `json:"mood"`
	Summary    *string `json:"summary" binding:"omitempty,max=1000"`
	Advice     *string `json:"advice" binding:"omitempty,max=1000"`
	Transcript *string `json:"transcript"`
}

func toEntryResp(e *models.JournalEntry) entryResp {
	return entryResp{
		ID:        e.ID,
		CreatedAt: e.CreatedAt,
		Mood:      e.Mood,
		Summary:   e.Summary,
		Advice:    e.Advice,
	}
}

// ---------- 录音上传 ----------

// CreateEntry receives one audio upload, drives the ingestion pipeline and
// returns the stored entry.
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	fh, err := c.FormFile("audio")
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "no audio file supplied")
		return
	}

	if err := util.ValidateUploadSize(fh.Size, h.Upload.MaxSizeMB*1024*1024); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	mimeType := fh.Header.Get("Content-Type")
	if err := util.ValidateAudioMime(mimeType); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	// the pipeline's temporary audio resource; the orchestrator releases it
	tmpPath := filepath.Join(os.TempDir(), "hay-upload-"+uuid.NewString())
	if err := c.SaveUploadedFile(fh, tmpPath); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to buffer upload")
		return
	}

	// durable copy referenced by audio_path, owned by this boundary layer
	storedPath := filepath.Join(h.Upload.Dir, uuid.NewString()+safeExt(fh.Filename))
	if err := c.SaveUploadedFile(fh, storedPath); err != nil {
		_ = os.Remove(tmpPath)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to store audio")
		return
	}

	var userID *string
	if v := strings.TrimSpace(c.PostForm("user_id")); v != "" {
		userID = &v
	}
	var duration *float64
	if v := c.PostForm("duration_seconds"); v != "" {
		if d, err := strconv.ParseFloat(v, 64); err == nil && d >= 0 {
			duration = &d
		}
	}

	entry, err := h.Orchestrator.Ingest(c.Request.Context(), ingest.Request{
		Source:          &ingest.FileSource{Path: tmpPath},
		MimeType:        mimeType,
		OriginalName:    fh.Filename,
		AudioPath:       storedPath,
		DurationSeconds: duration,
		UserID:          userID,
	})
	if err != nil {
		// nothing was persisted; drop the orphaned audio copy
		_ = os.Remove(storedPath)
		status, code, msg := mapIngestError(err)
		util.Error(c, status, code, msg)
		return
	}

	util.Success(c, util.Response{
		"entry": entry,
	})
}

// mapIngestError turns a typed pipeline failure into an HTTP response.
func mapIngestError(err error) (int, int, string) {
	var trErr *ingest.TranscriptionError
	var anErr *ingest.AnalysisParseError
	var stErr *ingest.StorageError
	switch {
	case errors.Is(err, ingest.ErrNoAudio):
		return http.StatusBadRequest, util.CodeInvalidParam, "no audio file supplied"
	case errors.As(err, &trErr):
		return http.StatusBadGateway, util.CodeUpstream, "transcription failed"
	case errors.As(err, &anErr):
		return http.StatusBadGateway, util.CodeUpstream, "analysis failed"
	case errors.As(err, &stErr):
		return http.StatusInternalServerError, util.CodeServerErr, "failed to save entry"
	default:
		return http.StatusInternalServerError, util.CodeServerErr, "ingestion failed"
	}
}

func safeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" || len(ext) > 8 {
		return ".mp3"
	}
	return ext
}

// ---------- 手动创建 ----------

// CreateManualEntry stores a typed (non-audio) record.
func (h *EntryHandler) CreateManualEntry(c *gin.Context) {
	var req manualEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	if req.Mood != nil && (*req.Mood < 1 || *req.Mood > 10) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "mood must be between 1 and 10")
		return
	}
	if req.Mood == nil && req.Summary == nil && req.Transcript == nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "entry is empty")
		return
	}

	entry := models.JournalEntry{
		Mood:       req.Mood,
		Summary:    req.Summary,
		Advice:     req.Advice,
		Transcript: req.Transcript,
	}
	if v := strings.TrimSpace(req.UserID); v != "" {
		entry.UserID = &v
	}

	if err := h.Store.InsertEntry(c.Request.Context(), &entry); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save entry")
		return
	}

	util.Success(c, util.Response{
		"entry": entry,
	})
}

// ---------- 列表 ----------

// ListEntries returns recent entries, newest first.
func (h *EntryHandler) ListEntries(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, err := h.Store.ListEntries(c.Request.Context(), limit)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list entries")
		return
	}

	items := make([]entryResp, 0, len(entries))
	for i := range entries {
		items = append(items, toEntryResp(&entries[i]))
	}

	util.Success(c, util.Response{
		"items": items,
		"count": len(items),
	})
}

// ---------- 心情曲线 ----------

// GetDailyMood returns the gap-filled daily mood series for the chart.
func (h *EntryHandler) GetDailyMood(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	var userID *string
	if v := strings.TrimSpace(c.Query("user_id")); v != "" {
		userID = &v
	}

	points, err := h.Aggregator.DailyMood(c.Request.Context(), days, userID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to aggregate mood")
		return
	}

	util.Success(c, util.Response{
		"days":   len(points),
		"series": points,
	})
}
