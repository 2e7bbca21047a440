package handler

import (
	"net/http"

	"github.com/JoseManuelPR/aduanas-app-sub001/backend/middleware"
	"github.com/JoseManuelPR/aduanas-app-sub001/backend/service"
	"github.com/JoseManuelPR/aduanas-app-sub001/backend/workflow"
	"github.com/gin-gonic/gin"
)

// CargoHandler serves the records that hang off a case: cargos, the giros
// issued against them and reclamos.
type CargoHandler struct {
	cases *service.CaseService
}

func NewCargoHandler(cases *service.CaseService) *CargoHandler {
	return &CargoHandler{cases: cases}
}

// ListCargos returns cargos, optionally for ?denuncia_id=
func (h *CargoHandler) ListCargos(c *gin.Context) {
	cargos := h.cases.ListCargos(c.Request.Context(), middleware.GetAduana(c), c.Query("denuncia_id"))
	if cargos == nil {
		cargos = []*service.CargoView{}
	}
	c.JSON(http.StatusOK, gin.H{"cargos": cargos})
}

func (h *CargoHandler) GetCargo(c *gin.Context) {
	cargo, err := h.cases.GetCargo(c.Request.Context(), middleware.GetAduana(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cargo)
}

// IssueGiro issues a payment order for a cargo
func (h *CargoHandler) IssueGiro(c *gin.Context) {
	giro, err := h.cases.IssueGiro(c.Request.Context(), middleware.GetAduana(c), c.Param("id"), middleware.GetUsername(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, giro)
}

// ListGiros returns giros, optionally for ?cargo_id=
func (h *CargoHandler) ListGiros(c *gin.Context) {
	giros := h.cases.ListGiros(c.Request.Context(), middleware.GetAduana(c), c.Query("cargo_id"))
	if giros == nil {
		giros = []*service.GiroView{}
	}
	c.JSON(http.StatusOK, gin.H{"giros": giros})
}

func (h *CargoHandler) GetGiro(c *gin.Context) {
	giro, err := h.cases.GetGiro(c.Request.Context(), middleware.GetAduana(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, giro)
}

// ListReclamos returns reclamos, optionally for ?denuncia_id=
func (h *CargoHandler) ListReclamos(c *gin.Context) {
	reclamos := h.cases.ListReclamos(c.Request.Context(), middleware.GetAduana(c), c.Query("denuncia_id"))
	if reclamos == nil {
		reclamos = []*service.ReclamoView{}
	}
	c.JSON(http.StatusOK, gin.H{"reclamos": reclamos})
}

func (h *CargoHandler) GetReclamo(c *gin.Context) {
	reclamo, err := h.cases.GetReclamo(c.Request.Context(), middleware.GetAduana(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reclamo)
}

type AdvanceClaimRequest struct {
	Decision   string `json:"decision" binding:"required"`
	Resolucion string `json:"resolucion"`
}

// AdvanceClaim applies a decision to a reclamo
func (h *CargoHandler) AdvanceClaim(c *gin.Context) {
	var req AdvanceClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	reclamo, err := h.cases.AdvanceClaim(c.Request.Context(), middleware.GetAduana(c), c.Param("id"),
		workflow.Decision(req.Decision), req.Resolucion, middleware.GetUsername(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reclamo)
}
