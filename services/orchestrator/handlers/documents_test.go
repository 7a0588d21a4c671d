// Copyright (C) 2025 Finsight AI (engineering@finsight.ai)
// Tests for report ingestion request handling

package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// Validation failures must be rejected before any Weaviate call, so a nil
// client is safe in these tests.

func ingestRouter() *gin.Engine {
	router := gin.New()
	router.POST("/v1/documents", IngestReport(nil))
	return router
}

func TestIngestReport_InvalidBody(t *testing.T) {
	w := postJSON(t, ingestRouter(), "/v1/documents", `{broken`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIngestReport_MissingContent(t *testing.T) {
	w := postJSON(t, ingestRouter(), "/v1/documents", `{"source": "acme_fy2024.pdf"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIngestReport_MissingSource(t *testing.T) {
	w := postJSON(t, ingestRouter(), "/v1/documents", `{"content": "Revenue was S$4.2m."}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIngestReport_MalformedUEN(t *testing.T) {
	w := postJSON(t, ingestRouter(), "/v1/documents",
		`{"content": "text", "source": "a.pdf", "uen": "not-a-uen"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIngestReport_MalformedFiscalPeriod(t *testing.T) {
	w := postJSON(t, ingestRouter(), "/v1/documents",
		`{"content": "text", "source": "a.pdf", "fiscal_period": "2024"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
