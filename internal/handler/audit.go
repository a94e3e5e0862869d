package handler

import (
	"net/http"
	"strconv"

	"keyword-match-service/internal/domain"
	"keyword-match-service/internal/dto"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) ListAudit(c *gin.Context) {
	if h.audit == nil {
		mapDomainError(c, domain.ErrAuditDisabled)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	filter := domain.AuditFilter{
		Filter: c.Query("filter"),
		Limit:  limit,
		Offset: offset,
	}
	if raw := c.Query("matched"); raw != "" {
		matched, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid matched value"})
			return
		}
		filter.Matched = &matched
	}

	records, total, err := h.audit.List(c.Request.Context(), filter)
	if err != nil {
		log.WithError(err).Error("list match audit failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.MatchRecordResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, dto.ToMatchRecordResponse(rec))
	}

	c.JSON(http.StatusOK, dto.ListAuditResponse{
		Items:      items,
		Total:      total,
		PageSize:   limit,
		NextOffset: offset + len(items),
	})
}

func (h *Handler) Stats(c *gin.Context) {
	if h.audit == nil {
		mapDomainError(c, domain.ErrAuditDisabled)
		return
	}

	stats, err := h.audit.Stats(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("aggregate match stats failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatsResponse{
		Total:         stats.Total,
		Matched:       stats.Matched,
		AvgDurationMS: stats.AvgDurationMS,
	})
}
