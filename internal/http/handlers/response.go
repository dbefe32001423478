// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response envelopes shared by all endpoints. The API
// speaks a compact success/error dialect:
//
//	HTTP/1.1 400 Bad Request
//	{ "success": false, "error": "Invalid JSON format" }
//
//	HTTP/1.1 200 OK
//	{ "success": true, "data": { ... } }
//
// fail() centralizes error formatting and makes sure 5xx responses are
// logged with request context; ok() keeps success responses uniform.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-content-backend/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	Success bool `json:"success" example:"false"`
	// Human-readable reason (safe to show to clients)
	Error string `json:"error" example:"Content not found"`
}

// StatusResponse is the envelope for the health/status endpoint.
type StatusResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Service is running and ready to accept requests"`
}

// DataResponse wraps a successful payload.
type DataResponse struct {
	Success bool `json:"success" example:"true"`
	Data    any  `json:"data"`
}

// fail aborts the request with the error envelope. Server errors (>=500) are
// logged through the request-scoped logger so they correlate with access
// logs by request id.
func fail(c *gin.Context, status int, msg string) {
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("message", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Success: false, Error: msg})
}

// Fail is the exported variant of fail(), used by router fallbacks.
func Fail(c *gin.Context, status int, msg string) { fail(c, status, msg) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
