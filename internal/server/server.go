package server

import (
	"embed"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmurrell/mgc-calendar/config"
	"github.com/jmurrell/mgc-calendar/internal/handlers"
	"github.com/jmurrell/mgc-calendar/internal/ics"
	"github.com/jmurrell/mgc-calendar/internal/middleware"
	"github.com/jmurrell/mgc-calendar/internal/store"
	"github.com/jmurrell/mgc-calendar/internal/transfer"
)

//go:embed static/index.html
var embeddedStatic embed.FS

// Start brings up the dashboard: config, database, store, codec, router.
// The store is only handed to the router once migration has completed.
func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	eventStore := store.New(db)
	codec, err := ics.NewGenerator(cfg.ICSDir())
	if err != nil {
		return fmt.Errorf("failed to prepare ICS directory: %v", err)
	}
	porter := transfer.NewPorter(eventStore, codec)

	r := gin.Default()
	setupRoutes(r, eventStore, codec, porter)

	return r.Run(":" + cfg.DashboardPort)
}

func setupRoutes(r *gin.Engine, s *store.Store, codec *ics.Generator, porter *transfer.Porter) {
	r.Use(middleware.CalendarMiddleware(s, codec, porter))

	api := r.Group("/api")
	{
		events := api.Group("/events")
		{
			events.GET("", handlers.ListEvents)
			events.POST("", handlers.CreateEvent)
			events.GET("/:id", handlers.GetEvent)
			events.PUT("/:id", handlers.UpdateEvent)
			events.DELETE("/:id", handlers.DeleteEvent)
			events.POST("/:id/publish", handlers.PublishEvent)
			events.GET("/:id/ics", handlers.DownloadEventICS)
		}

		api.GET("/calendar.ics", handlers.DownloadAllICS)
		api.POST("/import", handlers.ImportEvents)
		api.GET("/export", handlers.ExportEvents)
	}

	r.GET("/", func(c *gin.Context) {
		html, err := embeddedStatic.ReadFile("static/index.html")
		if err != nil {
			c.String(http.StatusInternalServerError, "dashboard page missing")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", html)
	})
}
