package handler

import (
	"net/http"

	"keyword-match-service/internal/dto"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) ListSets(c *gin.Context) {
	infos := h.matcher.Sets()

	items := make([]dto.SetInfoResponse, 0, len(infos))
	for _, info := range infos {
		items = append(items, dto.ToSetInfoResponse(info))
	}

	c.JSON(http.StatusOK, dto.ListSetsResponse{
		Items: items,
		Total: len(items),
	})
}

func (h *Handler) RefreshSet(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info, err := h.matcher.Refresh(c.Request.Context(), req.Filter, req.Version)
	if err != nil {
		log.WithError(err).WithField("filter", req.Filter).Error("refresh keyword set failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSetInfoResponse(*info))
}
