package handler

import (
	"net/http"

	"keyword-match-service/internal/domain"
	"keyword-match-service/internal/dto"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) Match(c *gin.Context) {
	var req dto.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validateMatch(req.Input, req.Filter); err != nil {
		mapDomainError(c, err)
		return
	}

	result, err := h.matcher.Match(c.Request.Context(), req.Input, req.Filter, req.Version)
	if err != nil {
		log.WithError(err).WithField("filter", req.Filter).Error("match failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMatchResponse(result))
}

// MatchQuery mirrors Match for GET requests, keeping parity with the
// shared-library entry point which takes plain string arguments.
func (h *Handler) MatchQuery(c *gin.Context) {
	input := c.Query("input")
	filter := c.Query("filter")
	if err := validateMatch(input, filter); err != nil {
		mapDomainError(c, err)
		return
	}

	result, err := h.matcher.Match(c.Request.Context(), input, filter, c.Query("version"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMatchResponse(result))
}

// validateMatch enforces the HTTP contract. The shared-library entry point
// deliberately skips it: there only NULL arguments are rejected, empty
// strings match normally.
func validateMatch(input, filter string) error {
	if input == "" {
		return domain.ErrMissingInput
	}
	if filter == "" {
		return domain.ErrMissingFilter
	}
	return nil
}
