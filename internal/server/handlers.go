package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/seoaudit/internal/address"
	"github.com/nao1215/seoaudit/internal/database"
	"github.com/nao1215/seoaudit/internal/model"
	"github.com/nao1215/seoaudit/internal/pipeline"
)

// auditRequest is the body of POST /api/audits.
type auditRequest struct {
	URL     string `json:"url" binding:"required"`
	Keyword string `json:"keyword"`
}

// auditAccepted is the 202 response of POST /api/audits.
type auditAccepted struct {
	ID     int64              `json:"id"`
	Status model.ReportStatus `json:"status"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCreateAudit(c *gin.Context) {
	var req auditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(pipeline.MsgInvalidURL))
		return
	}

	addr := address.Normalize(req.URL)
	if !addr.Valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": pipeline.MsgInvalidURL, "detail": addr.Error})
		return
	}

	report := model.NewAuditReport(addr.Normalized, req.Keyword)
	id, err := s.store.CreateReport(c.Request.Context(), report)
	if err != nil {
		s.logger.Error("failed to create report", "url", addr.Normalized, "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(pipeline.MsgInternal))
		return
	}

	s.jobs.Add(1)
	go s.runJob(report)

	c.JSON(http.StatusAccepted, auditAccepted{ID: id, Status: report.Status})
}

// runJob audits the page of a stored pending report and saves the result
// under the same ID.
func (s *Server) runJob(pending *model.AuditReport) {
	defer s.jobs.Done()

	ctx, cancel := context.WithTimeout(s.jobCtx, s.jobTimeout)
	defer cancel()

	logger := s.logger.With("id", pending.ID, "url", pending.URL)

	if err := s.store.UpdateStatus(ctx, pending.ID, model.ReportAnalyzing); err != nil {
		logger.Warn("failed to mark report analyzing", "error", err)
	}

	result := s.auditor.RunAudit(ctx, pending.URL, pending.FocusKeyword, nil)
	result.ID = pending.ID
	result.CreatedAt = pending.CreatedAt

	// A cancelled audit is still saved as failed.
	saveCtx := context.WithoutCancel(ctx)
	if err := s.store.SaveReport(saveCtx, result); err != nil {
		logger.Error("failed to save report", "error", err)
		return
	}
	logger.Info("audit finished", "status", result.Status, "score", result.OverallScore)
}

func (s *Server) handleGetAudit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorBody("invalid audit id"))
		return
	}

	report, err := s.store.GetReport(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, errorBody("audit not found"))
			return
		}
		s.logger.Error("failed to load report", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(pipeline.MsgInternal))
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) handleListAudits(c *gin.Context) {
	ctx := c.Request.Context()

	raw := c.Query("url")
	if raw == "" {
		urls, err := s.store.ListAuditedURLs(ctx)
		if err != nil {
			s.logger.Error("failed to list audited urls", "error", err)
			c.JSON(http.StatusInternalServerError, errorBody(pipeline.MsgInternal))
			return
		}
		c.JSON(http.StatusOK, gin.H{"urls": urls})
		return
	}

	addr := address.Normalize(raw)
	if !addr.Valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": pipeline.MsgInvalidURL, "detail": addr.Error})
		return
	}

	limit := DefaultHistoryLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, errorBody("invalid limit"))
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	reports, err := s.store.GetHistory(ctx, addr.Normalized, limit)
	if err != nil {
		s.logger.Error("failed to load history", "url", addr.Normalized, "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(pipeline.MsgInternal))
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": addr.Normalized, "reports": reports})
}
