// Copyright (C) 2025 Finsight AI (engineering@finsight.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/finsightai/FinsightLocal/services/orchestrator/datatypes"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

// maxSessionsListed caps one sessions listing.
const maxSessionsListed = 200

// CreateSessionRequest is the payload for POST /v1/sessions.
type CreateSessionRequest struct {
	Summary string `json:"summary"`
}

// CreateSession registers a new extraction session and returns its id.
func CreateSession(client *weaviate.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSessionRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		session := datatypes.ExtractionSession{
			SessionId: uuid.New().String(),
			Summary:   req.Summary,
		}
		if err := session.Save(c.Request.Context(), client); err != nil {
			slog.Error("Failed to create session", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}

		c.JSON(http.StatusCreated, session)
	}
}

// ListSessions returns recent extraction sessions, newest first.
func ListSessions(client *weaviate.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		slog.Info("Received request to list sessions")

		sortBy := graphql.Sort{
			Path:  []string{"timestamp"},
			Order: graphql.Desc,
		}

		result, err := client.GraphQL().Get().
			WithClassName(datatypes.ClassExtractionSession).
			WithSort(sortBy).
			WithLimit(maxSessionsListed).
			WithFields(
				graphql.Field{Name: "session_id"},
				graphql.Field{Name: "summary"},
				graphql.Field{Name: "query_count"},
				graphql.Field{Name: "timestamp"},
			).
			Do(c.Request.Context())
		if err != nil {
			slog.Error("failed to query Weaviate for sessions", "error", err)
			c.JSON(http.StatusInternalServerError,
				gin.H{"error": "failed to query Weaviate for sessions"})
			return
		}
		if len(result.Errors) > 0 {
			slog.Error("failed to query Weaviate for sessions", "error", result.Errors[0].Message)
			c.JSON(http.StatusInternalServerError,
				gin.H{"error": "failed to query Weaviate for sessions"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"sessions": parseSessions(result.Data)})
	}
}

// GetSession returns one session's metadata by id.
func GetSession(client *weaviate.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("sessionId")
		if _, err := uuid.Parse(sessionID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
			return
		}

		whereFilter := filters.Where().
			WithPath([]string{"session_id"}).
			WithOperator(filters.Equal).
			WithValueString(sessionID)

		result, err := client.GraphQL().Get().
			WithClassName(datatypes.ClassExtractionSession).
			WithWhere(whereFilter).
			WithLimit(1).
			WithFields(
				graphql.Field{Name: "session_id"},
				graphql.Field{Name: "summary"},
				graphql.Field{Name: "query_count"},
				graphql.Field{Name: "timestamp"},
			).
			Do(c.Request.Context())
		if err != nil {
			slog.Error("failed to query Weaviate for session", "sessionId", sessionID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query session"})
			return
		}
		if len(result.Errors) > 0 {
			slog.Error("failed to query Weaviate for session", "sessionId", sessionID, "error", result.Errors[0].Message)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query session"})
			return
		}

		sessions := parseSessions(result.Data)
		if len(sessions) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.JSON(http.StatusOK, sessions[0])
	}
}

// DeleteSession removes one session's metadata objects.
func DeleteSession(client *weaviate.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("sessionId")
		if _, err := uuid.Parse(sessionID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
			return
		}
		slog.Info("Received a request to delete a session", "sessionId", sessionID)

		whereFilter := filters.Where().
			WithPath([]string{"session_id"}).
			WithOperator(filters.Equal).
			WithValueString(sessionID)

		_, err := client.Batch().ObjectsBatchDeleter().
			WithClassName(datatypes.ClassExtractionSession).
			WithOutput("minimal").
			WithWhere(whereFilter).
			Do(c.Request.Context())
		if err != nil {
			slog.Error("Failed to delete session", "sessionId", sessionID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "deleted", "session_id": sessionID})
	}
}

func parseSessions(data map[string]models.JSONObject) []datatypes.ExtractionSession {
	sessions := []datatypes.ExtractionSession{}

	get, ok := data["Get"].(map[string]interface{})
	if !ok {
		return sessions
	}
	objects, ok := get[datatypes.ClassExtractionSession].([]interface{})
	if !ok {
		return sessions
	}

	for _, obj := range objects {
		props, ok := obj.(map[string]interface{})
		if !ok {
			continue
		}
		session := datatypes.ExtractionSession{}
		if v, ok := props["session_id"].(string); ok {
			session.SessionId = v
		}
		if v, ok := props["summary"].(string); ok {
			session.Summary = v
		}
		if v, ok := props["query_count"].(float64); ok {
			session.QueryCount = int(v)
		}
		if v, ok := props["timestamp"].(float64); ok {
			session.Timestamp = int64(v)
		}
		sessions = append(sessions, session)
	}
	return sessions
}
