// Copyright (C) 2025 Finsight AI (engineering@finsight.ai)
// Tests for full-report extraction request handling

package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func extractRouter() *gin.Engine {
	router := gin.New()
	router.POST("/v1/extract", HandleExtract(nil, nil))
	return router
}

func TestHandleExtract_InvalidBody(t *testing.T) {
	w := postJSON(t, extractRouter(), "/v1/extract", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleExtract_MissingSource(t *testing.T) {
	w := postJSON(t, extractRouter(), "/v1/extract", `{"batch_token_budget": 1000}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleExtract_NegativeBudget(t *testing.T) {
	w := postJSON(t, extractRouter(), "/v1/extract", `{"source": "acme_fy2024.pdf", "batch_token_budget": -5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
