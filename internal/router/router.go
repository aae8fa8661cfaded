package router

import (
	"net/http"

	"github.com/dylanm29799/HowAreYou/internal/config"
	"github.com/dylanm29799/HowAreYou/internal/handler"
	"github.com/dylanm29799/HowAreYou/internal/ingest"
	"github.com/dylanm29799/HowAreYou/internal/middleware"
	"github.com/dylanm29799/HowAreYou/internal/mood"
	"github.com/dylanm29799/HowAreYou/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps are the collaborators constructed at startup and injected here.
type Deps struct {
	Store        *storage.EntryStorage
	Orchestrator *ingest.Orchestrator
	Aggregator   *mood.Aggregator
}

// SetupRouter configures Gin engine, templates and static resources.
func SetupRouter(cfg *config.Config, db *gorm.DB, deps Deps) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// static files and templates
	r.Static("/static", "./web/static")
	r.LoadHTMLGlob("web/templates/*")

	// Home -> record & chart page
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"title": "How Are You",
		})
	})

	// ====== API ======
	api := r.Group("/api")
	api.Use(middleware.RequestLogMiddleware(db))

	entryHandler := handler.NewEntryHandler(deps.Store, deps.Orchestrator, deps.Aggregator, cfg.Upload)
	api.POST("/entries", entryHandler.CreateEntry)
	api.POST("/entries/manual", entryHandler.CreateManualEntry)
	api.GET("/entries", entryHandler.ListEntries)
	api.GET("/stats/daily-mood", entryHandler.GetDailyMood)

	exportHandler := handler.NewExportHandler(deps.Store)
	api.GET("/export/csv", exportHandler.ExportCSV)
	api.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
