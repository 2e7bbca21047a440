package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/JoseManuelPR/aduanas-app-sub001/backend/middleware"
	"github.com/JoseManuelPR/aduanas-app-sub001/backend/pkg/logger"
	"github.com/JoseManuelPR/aduanas-app-sub001/backend/service"
	"github.com/JoseManuelPR/aduanas-app-sub001/backend/workflow"
	"github.com/gin-gonic/gin"
)

// DocumentLinker hands out download links for published documents
type DocumentLinker interface {
	PresignedURL(ctx context.Context, objectName string) (string, error)
}

type DenunciaHandler struct {
	cases *service.CaseService
	docs  DocumentLinker
}

// NewDenunciaHandler creates the case handler. docs may be nil, in which
// case documents are served inline.
func NewDenunciaHandler(cases *service.CaseService, docs DocumentLinker) *DenunciaHandler {
	return &DenunciaHandler{cases: cases, docs: docs}
}

// List returns the denuncias of the caller's aduana
func (h *DenunciaHandler) List(c *gin.Context) {
	filter := service.CaseFilter{Status: c.Query("status")}

	if raw := c.Query("stage"); raw != "" {
		stage, err := strconv.Atoi(raw)
		if err != nil || stage < 0 || stage >= workflow.StageCount {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stage"})
			return
		}
		filter.Stage = &stage
	}

	if raw := c.Query("severity"); raw != "" {
		switch sev := workflow.Severity(raw); sev {
		case workflow.SeverityCritical, workflow.SeverityWarning, workflow.SeverityInfo, workflow.SeverityNeutral:
			filter.Severity = sev
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid severity"})
			return
		}
	}

	views := h.cases.ListCases(c.Request.Context(), middleware.GetAduana(c), filter)
	if views == nil {
		views = []*service.CaseView{}
	}
	c.JSON(http.StatusOK, gin.H{"denuncias": views, "total": len(views)})
}

// Summary returns case counts by stage and deadline severity
func (h *DenunciaHandler) Summary(c *gin.Context) {
	c.JSON(http.StatusOK, h.cases.Summary(c.Request.Context(), middleware.GetAduana(c)))
}

// Get returns a single denuncia with its derived state
func (h *DenunciaHandler) Get(c *gin.Context) {
	view, err := h.cases.GetCase(c.Request.Context(), middleware.GetAduana(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Workflow returns only the derived workflow state of a denuncia
func (h *DenunciaHandler) Workflow(c *gin.Context) {
	view, err := h.cases.GetCase(c.Request.Context(), middleware.GetAduana(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":          view.ID,
		"status":      view.Status,
		"stage":       view.Stage,
		"stepper":     view.Stepper,
		"permissions": view.Permissions,
		"plazo":       view.Plazo,
	})
}

// Update edits the fields allowed by the current status
func (h *DenunciaHandler) Update(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	view, err := h.cases.UpdateFields(c.Request.Context(), middleware.GetAduana(c), c.Param("id"), fields, middleware.GetUsername(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type caseAction func(ctx context.Context, aduana, id, user string) (*service.CaseView, error)

// action wraps a body-less case operation as a handler
func (h *DenunciaHandler) action(op caseAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := op(c.Request.Context(), middleware.GetAduana(c), c.Param("id"), middleware.GetUsername(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func (h *DenunciaHandler) Submit(c *gin.Context)    { h.action(h.cases.Submit)(c) }
func (h *DenunciaHandler) Formulate(c *gin.Context) { h.action(h.cases.Formulate)(c) }
func (h *DenunciaHandler) Notify(c *gin.Context)    { h.action(h.cases.Notify)(c) }
func (h *DenunciaHandler) Close(c *gin.Context)     { h.action(h.cases.Close)(c) }
func (h *DenunciaHandler) Archive(c *gin.Context)   { h.action(h.cases.Archive)(c) }

type AssignReviewerRequest struct {
	Revisor string `json:"revisor" binding:"required"`
}

// AssignReviewer moves the case under review
func (h *DenunciaHandler) AssignReviewer(c *gin.Context) {
	var req AssignReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	view, err := h.cases.AssignReviewer(c.Request.Context(), middleware.GetAduana(c), c.Param("id"), req.Revisor, middleware.GetUsername(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type ObserveRequest struct {
	Observaciones string `json:"observaciones" binding:"required"`
}

// Observe returns the case with observations
func (h *DenunciaHandler) Observe(c *gin.Context) {
	var req ObserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	view, err := h.cases.Observe(c.Request.Context(), middleware.GetAduana(c), c.Param("id"), req.Observaciones, middleware.GetUsername(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type GenerateChargeRequest struct {
	Monto    float64 `json:"monto" binding:"required"`
	Concepto string  `json:"concepto"`
}

// GenerateCharge issues a cargo for the case
func (h *DenunciaHandler) GenerateCharge(c *gin.Context) {
	var req GenerateChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	cargo, err := h.cases.GenerateCharge(c.Request.Context(), middleware.GetAduana(c), c.Param("id"), req.Monto, req.Concepto, middleware.GetUsername(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cargo)
}

type FileClaimRequest struct {
	Tipo       string `json:"tipo" binding:"required"`
	Fundamento string `json:"fundamento" binding:"required"`
	CargoID    string `json:"cargo_id"`
}

// FileClaim registers a reclamo against the case
func (h *DenunciaHandler) FileClaim(c *gin.Context) {
	var req FileClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	reclamo, err := h.cases.FileClaim(c.Request.Context(), middleware.GetAduana(c), c.Param("id"), req.Tipo, req.Fundamento, req.CargoID, middleware.GetUsername(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reclamo)
}

// Document serves an attached document, or a download link when documents
// are published to object storage
func (h *DenunciaHandler) Document(c *gin.Context) {
	aduana := middleware.GetAduana(c)
	view, err := h.cases.GetCase(c.Request.Context(), aduana, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	doc, ok := view.Documento(c.Param("docId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	if h.docs == nil {
		c.Data(http.StatusOK, doc.ContentType, []byte(doc.Contenido))
		return
	}

	url, err := h.docs.PresignedURL(c.Request.Context(), service.ObjectName(aduana, view.ID, doc.ID))
	if err != nil {
		logger.Error(c.Request.Context(), "failed to presign document", "document_id", doc.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate URL: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":     doc.ID,
		"nombre": doc.Nombre,
		"tipo":   doc.Tipo,
		"url":    url,
	})
}
