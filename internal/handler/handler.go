package handler

import (
	"keyword-match-service/internal/domain"
	"keyword-match-service/internal/matcher"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	matcher *matcher.Matcher
	audit   domain.AuditRepository // nil when auditing is disabled
}

func New(m *matcher.Matcher, audit domain.AuditRepository) *Handler {
	return &Handler{matcher: m, audit: audit}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Matching
	r.POST("/match", h.Match)
	r.GET("/match", h.MatchQuery)

	// Cached keyword sets
	r.GET("/sets", h.ListSets)
	r.POST("/sets/refresh", h.RefreshSet)

	// Audit
	r.GET("/audit", h.ListAudit)
	r.GET("/stats", h.Stats)
}
