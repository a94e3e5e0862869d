package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"keyword-match-service/internal/domain"
	"keyword-match-service/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestListAudit(t *testing.T) {
	audit := new(testutil.MockAuditRepo)
	_, r := setupRouter(audit)

	records := []*domain.MatchRecord{
		{
			ID: uuid.New(), CreatedAt: time.Now(),
			Filter: "harm", Matched: true,
			Origin: domain.OriginUpstream, DurationMS: 3,
		},
	}
	audit.On("List", mock.Anything, mock.AnythingOfType("domain.AuditFilter")).Return(records, 1, nil)

	req, _ := http.NewRequest("GET", "/api/v1/keywords/audit?limit=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, float64(1), resp["total"])
}

func TestListAudit_MatchedFilter(t *testing.T) {
	audit := new(testutil.MockAuditRepo)
	_, r := setupRouter(audit)

	audit.On("List", mock.Anything, mock.MatchedBy(func(f domain.AuditFilter) bool {
		return f.Matched != nil && *f.Matched && f.Filter == "harm"
	})).Return([]*domain.MatchRecord{}, 0, nil)

	req, _ := http.NewRequest("GET", "/api/v1/keywords/audit?filter=harm&matched=true", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	audit.AssertExpectations(t)
}

func TestListAudit_InvalidMatched(t *testing.T) {
	audit := new(testutil.MockAuditRepo)
	_, r := setupRouter(audit)

	req, _ := http.NewRequest("GET", "/api/v1/keywords/audit?matched=maybe", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAudit_Disabled(t *testing.T) {
	_, r := setupRouter(nil)

	req, _ := http.NewRequest("GET", "/api/v1/keywords/audit", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestStats(t *testing.T) {
	audit := new(testutil.MockAuditRepo)
	_, r := setupRouter(audit)

	audit.On("Stats", mock.Anything).Return(&domain.MatchStats{
		Total: 10, Matched: 4, AvgDurationMS: 1.5,
	}, nil)

	req, _ := http.NewRequest("GET", "/api/v1/keywords/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, float64(10), resp["total"])
	assert.Equal(t, float64(4), resp["matched"])
}

func TestStats_Disabled(t *testing.T) {
	_, r := setupRouter(nil)

	req, _ := http.NewRequest("GET", "/api/v1/keywords/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotImplemented, w.Code)
}
