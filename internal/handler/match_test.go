package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"keyword-match-service/internal/domain"
	"keyword-match-service/internal/matcher"
	"keyword-match-service/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupRouter(audit domain.AuditRepository) (*testutil.MockKeywordSource, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	src := new(testutil.MockKeywordSource)

	m := matcher.New(src, nil, nil)
	h := New(m, audit)

	r := gin.New()
	api := r.Group("/api/v1/keywords")
	h.RegisterRoutes(api)

	return src, r
}

func TestMatchEndpoint(t *testing.T) {
	src, r := setupRouter(nil)

	set := &domain.KeywordSet{Keywords: []string{"suicide"}}
	src.On("Fetch", mock.Anything, "harm", "").Return(set, time.Hour, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"input":  "thinking about suicide",
		"filter": "harm",
	})

	req, _ := http.NewRequest("POST", "/api/v1/keywords/match", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, true, resp["matched"])
	assert.Equal(t, "upstream", resp["origin"])
}

func TestMatchEndpoint_NoMatch(t *testing.T) {
	src, r := setupRouter(nil)

	set := &domain.KeywordSet{Keywords: []string{"suicide"}}
	src.On("Fetch", mock.Anything, "harm", "").Return(set, time.Hour, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"input":  "nice weather today",
		"filter": "harm",
	})

	req, _ := http.NewRequest("POST", "/api/v1/keywords/match", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, false, resp["matched"])
}

func TestMatchEndpoint_MissingFilter(t *testing.T) {
	_, r := setupRouter(nil)

	body, _ := json.Marshal(map[string]interface{}{"input": "some text"})

	req, _ := http.NewRequest("POST", "/api/v1/keywords/match", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatchEndpoint_UpstreamDown(t *testing.T) {
	src, r := setupRouter(nil)

	src.On("Fetch", mock.Anything, "harm", "").Return(nil, time.Duration(0), domain.ErrUpstreamUnavailable)

	body, _ := json.Marshal(map[string]interface{}{
		"input":  "some text",
		"filter": "harm",
	})

	req, _ := http.NewRequest("POST", "/api/v1/keywords/match", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestMatchEndpoint_BadKeywordSet(t *testing.T) {
	src, r := setupRouter(nil)

	set := &domain.KeywordSet{Keywords: []string{"("}}
	src.On("Fetch", mock.Anything, "harm", "").Return(set, time.Hour, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"input":  "some text",
		"filter": "harm",
	})

	req, _ := http.NewRequest("POST", "/api/v1/keywords/match", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestMatchQueryEndpoint(t *testing.T) {
	src, r := setupRouter(nil)

	set := &domain.KeywordSet{Keywords: []string{"suicide"}}
	src.On("Fetch", mock.Anything, "harm", "v2").Return(set, time.Hour, nil)

	req, _ := http.NewRequest("GET", "/api/v1/keywords/match?input=suicide&filter=harm&version=v2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, true, resp["matched"])
	assert.Equal(t, "v2", resp["version"])
}

func TestMatchQueryEndpoint_MissingInput(t *testing.T) {
	_, r := setupRouter(nil)

	req, _ := http.NewRequest("GET", "/api/v1/keywords/match?filter=harm", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
