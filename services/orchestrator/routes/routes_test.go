// Copyright (C) 2025 Finsight AI (engineering@finsight.ai)
// Tests for route registration

package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestRouter() *gin.Engine {
	router := gin.New()
	// nil backends: handlers validate input before touching them.
	SetupRoutes(router, nil, nil)
	return router
}

func TestSetupRoutes_Health(t *testing.T) {
	router := setupTestRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRoutes_Metrics(t *testing.T) {
	router := setupTestRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/metrics", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_")
}

func TestSetupRoutes_RegisteredEndpoints(t *testing.T) {
	router := setupTestRouter()

	// A registered route with a bad body returns 400, an unregistered one 404.
	cases := []struct {
		method string
		path   string
	}{
		{"POST", "/v1/query"},
		{"POST", "/v1/documents"},
		{"POST", "/v1/extract"},
		{"POST", "/v1/sessions"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(tc.method, tc.path, strings.NewReader(`{broken`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		assert.Equalf(t, http.StatusBadRequest, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestSetupRoutes_UnknownRouteIs404(t *testing.T) {
	router := setupTestRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/nope", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
