package handler

import (
	"net/http"
	"time"

	"github.com/JoseManuelPR/aduanas-app-sub001/backend/config"
	"github.com/JoseManuelPR/aduanas-app-sub001/backend/middleware"
	"github.com/JoseManuelPR/aduanas-app-sub001/backend/pkg/metrics"
	"github.com/JoseManuelPR/aduanas-app-sub001/backend/service"
	"github.com/gin-gonic/gin"
)

// RouterDeps holds what the HTTP layer is built from
type RouterDeps struct {
	Config  *config.Config
	Cases   *service.CaseService
	Docs    DocumentLinker // nil serves documents inline
	Metrics *metrics.Metrics
}

// NewRouter wires middleware and every route
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config

	authHandler := NewAuthHandler(cfg)
	workflowHandler := NewWorkflowHandler(deps.Metrics)
	denunciaHandler := NewDenunciaHandler(deps.Cases, deps.Docs)
	cargoHandler := NewCargoHandler(deps.Cases)

	router := gin.New() // Use New() instead of Default() to avoid default middleware

	router.Use(middleware.RequestID())           // Request ID for tracing
	router.Use(middleware.Recovery())            // Panic recovery
	router.Use(middleware.RequestLogger())       // Access logging
	router.Use(middleware.Metrics(deps.Metrics)) // Request metrics
	router.Use(middleware.CORS())                // CORS

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	api := router.Group("/api")
	api.Use(middleware.NoCache())

	// Public routes
	public := api.Group("/")
	public.Use(middleware.RateLimit(cfg.RateLimit))
	{
		public.POST("/auth/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	protected.Use(middleware.RateLimit(cfg.RateLimit))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)

		protected.GET("/workflow/stages", workflowHandler.Stages)
		protected.GET("/workflow/claim-stages", workflowHandler.ClaimStages)
		protected.GET("/workflow/resolve", workflowHandler.Resolve)
		protected.GET("/workflow/deadline", workflowHandler.Deadline)

		protected.GET("/denuncias", denunciaHandler.List)
		protected.GET("/denuncias/summary", denunciaHandler.Summary)
		protected.GET("/denuncias/:id", denunciaHandler.Get)
		protected.GET("/denuncias/:id/workflow", denunciaHandler.Workflow)
		protected.PATCH("/denuncias/:id", denunciaHandler.Update)
		protected.POST("/denuncias/:id/formalizar", denunciaHandler.Submit)
		protected.POST("/denuncias/:id/revisor", denunciaHandler.AssignReviewer)
		protected.POST("/denuncias/:id/observar", denunciaHandler.Observe)
		protected.POST("/denuncias/:id/formular", denunciaHandler.Formulate)
		protected.POST("/denuncias/:id/notificar", denunciaHandler.Notify)
		protected.POST("/denuncias/:id/cerrar", denunciaHandler.Close)
		protected.POST("/denuncias/:id/archivar", denunciaHandler.Archive)
		protected.POST("/denuncias/:id/cargos", denunciaHandler.GenerateCharge)
		protected.POST("/denuncias/:id/reclamos", denunciaHandler.FileClaim)
		protected.GET("/denuncias/:id/documentos/:docId", denunciaHandler.Document)

		protected.GET("/cargos", cargoHandler.ListCargos)
		protected.GET("/cargos/:id", cargoHandler.GetCargo)
		protected.POST("/cargos/:id/giros", cargoHandler.IssueGiro)
		protected.GET("/giros", cargoHandler.ListGiros)
		protected.GET("/giros/:id", cargoHandler.GetGiro)
		protected.GET("/reclamos", cargoHandler.ListReclamos)
		protected.GET("/reclamos/:id", cargoHandler.GetReclamo)
		protected.POST("/reclamos/:id/avanzar", cargoHandler.AdvanceClaim)
	}

	return router
}
