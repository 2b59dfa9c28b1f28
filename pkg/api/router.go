package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/inkhaus/inkhaus/pkg/api/handlers"
	"github.com/inkhaus/inkhaus/pkg/db"
	"github.com/inkhaus/inkhaus/pkg/device"
	"github.com/inkhaus/inkhaus/pkg/render"
	"github.com/inkhaus/inkhaus/pkg/screen"
)

// Config carries the server-level settings the router needs.
type Config struct {
	// BaseURL is the externally reachable prefix put into image URLs
	// handed to devices, e.g. "http://192.168.1.10:8080".
	BaseURL string
	// Secret keys API key derivation at registration time.
	Secret []byte
}

// Router holds the Gin engine and dependencies
type Router struct {
	engine    *gin.Engine
	database  *db.DB
	resolver  *device.Resolver
	validator *screen.Validator
	events    render.EventSource
	cfg       Config
}

// NewRouter creates a new API router
func NewRouter(database *db.DB, events render.EventSource, cfg Config) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	SetupMiddleware(engine)

	router := &Router{
		engine:    engine,
		database:  database,
		resolver:  device.NewResolver(database.Devices()),
		validator: screen.NewValidator(),
		events:    events,
		cfg:       cfg,
	}

	router.setupRoutes()

	return router
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	// Swagger UI
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/swagger/index.html")
	})

	// Health check at root
	healthHandler := handlers.NewHealthHandler(r.database)
	r.engine.GET("/health", healthHandler.Health)

	devices := r.database.Devices()
	screens := r.database.Screens()

	api := r.engine.Group("/api")
	{
		// Device-facing endpoints: firmware talks to these.
		setupHandler := handlers.NewSetupHandler(devices, r.cfg.Secret)
		api.GET("/setup", setupHandler.GetSetup)
		api.POST("/setup", setupHandler.PostSetup)

		displayHandler := handlers.NewDisplayHandler(r.resolver, screens, r.cfg.BaseURL)
		api.GET("/display", displayHandler.Display)

		logsHandler := handlers.NewLogsHandler(r.resolver, devices, r.database.Logs())
		api.POST("/log", logsHandler.Ingest)

		// Rendering
		renderHandler := handlers.NewRenderHandler(devices, screens, r.events)
		api.GET("/render", renderHandler.Render)
		api.GET("/bitmap/year-progress.bmp", renderHandler.YearProgress)
		api.GET("/test-bmp", renderHandler.TestBitmap)

		// Dashboard endpoints
		devicesHandler := handlers.NewDevicesHandler(devices)
		screensHandler := handlers.NewScreensHandler(devices, screens, r.validator)
		deviceRoutes := api.Group("/devices")
		{
			deviceRoutes.GET("", devicesHandler.ListDevices)
			deviceRoutes.GET("/:id", devicesHandler.GetDevice)
			deviceRoutes.PATCH("/:id", devicesHandler.UpdateDevice)
			deviceRoutes.DELETE("/:id", devicesHandler.RemoveDevice)

			deviceRoutes.GET("/:id/screens", screensHandler.ListScreens)
			deviceRoutes.POST("/:id/screens", screensHandler.CreateScreen)
			deviceRoutes.GET("/:id/logs", logsHandler.List)
		}
		api.PATCH("/screens/:id", screensHandler.UpdateScreen)
		api.DELETE("/screens/:id", screensHandler.RemoveScreen)
	}
}

// Handler exposes the underlying engine, for tests and embedding.
func (r *Router) Handler() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
