package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dylanm29799/HowAreYou/internal/models"
	"github.com/dylanm29799/HowAreYou/internal/storage"
	"github.com/dylanm29799/HowAreYou/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

type ExportHandler struct {
	Store *storage.EntryStorage
}

func NewExportHandler(store *storage.EntryStorage) *ExportHandler {
	return &ExportHandler{Store: store}
}

var exportHeader = []string{"id", "created_at", "mood", "summary", "advice", "transcript", "cost_estimate_usd"}

func exportRow(e *models.JournalEntry) []string {
	return []string{
		e.ID,
		e.CreatedAt.Format(time.RFC3339),
		fmtIntPtr(e.Mood),
		strPtr(e.Summary),
		strPtr(e.Advice),
		strPtr(e.Transcript),
		fmtFloatPtr(e.CostEstimateUSD),
	}
}

func strPtr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func fmtIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func fmtFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 4, 64)
}

// ExportCSV 导出日记条目为 CSV
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	entries, err := h.Store.ListEntries(c.Request.Context(), storage.MaxListLimit)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list entries")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"entries_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// UTF-8 BOM（让 Excel 正确识别编码）
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	_ = writer.Write(exportHeader)
	for i := range entries {
		_ = writer.Write(exportRow(&entries[i]))
	}
}

// ExportXLSX 导出日记条目为 Excel
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	entries, err := h.Store.ListEntries(c.Request.Context(), storage.MaxListLimit)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list entries")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Entries"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, title)
	}
	for row := range entries {
		for col, val := range exportRow(&entries[row]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, val)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"entries_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write workbook")
		return
	}
}
