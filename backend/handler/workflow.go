package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/JoseManuelPR/aduanas-app-sub001/backend/workflow"
	"github.com/gin-gonic/gin"
)

// SeverityObserver counts deadline classifications
type SeverityObserver interface {
	ObserveSeverity(severity string)
}

// WorkflowHandler exposes the status, permission and deadline resolvers
// so clients do not have to duplicate them.
type WorkflowHandler struct {
	observer SeverityObserver
	now      func() time.Time
}

func NewWorkflowHandler(observer SeverityObserver) *WorkflowHandler {
	return &WorkflowHandler{observer: observer, now: time.Now}
}

// Stages returns the case workflow stages in order
func (h *WorkflowHandler) Stages(c *gin.Context) {
	statuses := make(map[string][]workflow.CaseStatus)
	for _, s := range workflow.AllStatuses() {
		key := s.Stage().String()
		statuses[key] = append(statuses[key], s)
	}

	c.JSON(http.StatusOK, gin.H{
		"stages":   workflow.Stages(),
		"statuses": statuses,
	})
}

// ClaimStages returns the claim workflow stages in order
func (h *WorkflowHandler) ClaimStages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stages": workflow.ClaimStages()})
}

// Resolve derives stage and permissions for ?status=
func (h *WorkflowHandler) Resolve(c *gin.Context) {
	raw := c.Query("status")
	status, known := workflow.ParseStatus(raw)
	if !known {
		status = workflow.StatusBorrador
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      status,
		"known":       known,
		"stage":       workflow.ResolveStage(raw),
		"permissions": workflow.ResolvePermissions(raw),
	})
}

// Deadline classifies ?days= remaining, or the deadline ?date=YYYY-MM-DD
func (h *WorkflowHandler) Deadline(c *gin.Context) {
	var result workflow.DeadlineStatus

	switch {
	case c.Query("date") != "":
		now := h.now()
		date, err := time.ParseInLocation("2006-01-02", c.Query("date"), now.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		result = workflow.EvaluateDeadline(date, now)
	case c.Query("days") != "":
		days, err := strconv.Atoi(c.Query("days"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be an integer"})
			return
		}
		result = workflow.DeadlineStatus{
			DaysRemaining: days,
			Severity:      workflow.ClassifyDeadline(days),
			Label:         workflow.DeadlineLabel(days),
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "days or date is required"})
		return
	}

	if h.observer != nil {
		h.observer.ObserveSeverity(string(result.Severity))
	}
	c.JSON(http.StatusOK, result)
}
