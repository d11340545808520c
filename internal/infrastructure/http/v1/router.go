// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"tabularium/internal/domain/importer"
	"tabularium/internal/domain/schema"
	"tabularium/internal/infrastructure/http/v1/handlers"
	"tabularium/internal/infrastructure/http/v1/middleware"
	"tabularium/internal/infrastructure/storage/postgres"
	"tabularium/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Hub is the composed department schema hub.
	Hub *schema.Hub

	// Engine runs batch row validation.
	Engine *importer.Engine

	// ResolverOptions tune header resolution for import endpoints.
	ResolverOptions schema.ResolverOptions

	// Store is the optional mapping-memory store; nil disables the
	// persistence endpoints.
	Store *postgres.Store

	// Pool is the optional database pool used by health checks.
	Pool *postgres.Pool

	// Logger for request logging.
	Logger *logger.Logger
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Hub, cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler()

	api := router.Group("/api/v1")
	{
		schemaHandler := handlers.NewSchemaHandler(baseHandler, cfg.Hub)
		sg := api.Group("/schema")
		{
			sg.GET("/departments", schemaHandler.ListDepartments)
			sg.GET("/departments/:dept", schemaHandler.GetDepartment)
			sg.GET("/departments/:dept/tables", schemaHandler.ListTables)
			sg.GET("/departments/:dept/tables/:table", schemaHandler.GetTable)
		}

		importHandler := handlers.NewImportHandler(baseHandler, cfg.Hub, cfg.Engine, cfg.ResolverOptions, cfg.Store)
		ig := api.Group("/import")
		{
			ig.POST("/:dept/:table/plan", importHandler.BuildPlan)
			ig.POST("/:dept/:table/validate", importHandler.ValidateRows)
			ig.POST("/:dept/:table/mappings", importHandler.ConfirmMapping)
			ig.GET("/:dept/:table/mappings", importHandler.ListMappings)
			ig.DELETE("/:dept/:table/mappings/:header", importHandler.DeleteMapping)
			ig.GET("/:dept/:table/runs", importHandler.ListRuns)
			ig.GET("/:dept/:table/runs/:id", importHandler.GetRun)
		}
	}

	return router
}
