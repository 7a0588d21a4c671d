// Copyright (C) 2025 Finsight AI (engineering@finsight.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package routes

import (
	"github.com/finsightai/FinsightLocal/services/llm"
	"github.com/finsightai/FinsightLocal/services/orchestrator/handlers"
	"github.com/finsightai/FinsightLocal/services/retrieval"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
)

func SetupRoutes(router *gin.Engine, client *weaviate.Client, globalLLMClient llm.LLMClient) {
	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	runner := handlers.NewGraphRunner(globalLLMClient, retrieval.NewFactory(client))

	// API version 1 group
	v1 := router.Group("/v1")
	{
		v1.POST("/query", handlers.HandleQuery(runner))
		v1.POST("/documents", handlers.IngestReport(client))
		v1.GET("/documents", handlers.ListReports(client))
		v1.POST("/extract", handlers.HandleExtract(client, globalLLMClient))
		// Session administration routes
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", handlers.CreateSession(client))
			sessions.GET("", handlers.ListSessions(client))
			sessions.GET("/:sessionId", handlers.GetSession(client))
			sessions.DELETE("/:sessionId", handlers.DeleteSession(client))
		}
	}
}
