package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/MrVulpesTech/hospital-quiz-bot/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReportHandler struct {
	responses *services.ResponseService
	reports   *services.ReportService
	timeout   time.Duration
}

func NewReportHandler(responses *services.ResponseService, reports *services.ReportService, timeout time.Duration) *ReportHandler {
	return &ReportHandler{responses: responses, reports: reports, timeout: timeout}
}

type ReportSummary struct {
	SessionID   string    `json:"session_id" example:"6f1c2a34-..."`
	Participant string    `json:"participant" example:"Іван Петренко"`
	Language    string    `json:"language" example:"uk"`
	HasReport   bool      `json:"has_report"`
	CreatedAt   time.Time `json:"created_at"`
}

type ReportDetail struct {
	SessionID string            `json:"session_id"`
	Report    string            `json:"report"`
	Answers   map[string]string `json:"answers"`
}

type RegenerateRequest struct {
	Alternative bool `json:"alternative" example:"true"`
}

// List godoc
// @Summary      List completed intake sessions
// @Description  Return all completed sessions with participant info
// @Tags         reports
// @Produce      json
// @Success      200 {array} ReportSummary
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	sessions, err := h.responses.ListCompleted()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load sessions"})
		return
	}

	summaries := make([]ReportSummary, 0, len(sessions))
	for _, s := range sessions {
		summaries = append(summaries, ReportSummary{
			SessionID:   s.SessionID,
			Participant: s.Participant.FullName(),
			Language:    s.Language,
			HasReport:   s.Report != "",
			CreatedAt:   s.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, summaries)
}

// Get godoc
// @Summary      Get a report by session ID
// @Description  Return the stored report, generating it first if missing
// @Tags         reports
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} ReportDetail
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/reports/{id} [get]
func (h *ReportHandler) Get(c *gin.Context) {
	sessionID := c.Param("id")

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	report, err := h.reports.GetOrGenerate(ctx, sessionID)
	if err != nil {
		status, msg := reportErrorStatus(err)
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}

	answers, err := h.responses.Answers(sessionID)
	if err != nil {
		log.Printf("[API] load answers for %s: %v", sessionID, err)
		answers = map[string]string{}
	}

	c.JSON(http.StatusOK, ReportDetail{SessionID: sessionID, Report: report, Answers: answers})
}

// Regenerate godoc
// @Summary      Regenerate a report
// @Description  Rebuild the report for a completed session, optionally with the alternative prompt
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        id path string true "Session ID"
// @Param        request body RegenerateRequest false "Regeneration options"
// @Success      200 {object} ReportDetail
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/reports/{id}/regenerate [post]
func (h *ReportHandler) Regenerate(c *gin.Context) {
	sessionID := c.Param("id")

	var req RegenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, err := h.responses.GetBySessionID(sessionID)
	if err != nil {
		status, msg := reportErrorStatus(err)
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	report, err := h.reports.Generate(ctx, session, req.Alternative)
	if err != nil {
		status, msg := reportErrorStatus(err)
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, ReportDetail{SessionID: sessionID, Report: report})
}

func reportErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, "session not found"
	case errors.Is(err, services.ErrNotComplete):
		return http.StatusConflict, "session is not complete"
	default:
		log.Printf("[API] report error: %v", err)
		return http.StatusInternalServerError, "failed to produce report"
	}
}

func contextWithTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}
