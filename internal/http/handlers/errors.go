// Package handlers defines the user-facing error strings used across the
// API. The wire contract fixes these texts (clients branch on them), so they
// live in one place instead of being re-typed per handler.
package handlers

const (
	// msgInvalidJSON rejects a /store-llm payload that yields no parseable
	// JSON value.
	msgInvalidJSON = "Invalid JSON format"

	// msgNoContent is the empty-store response of the full listing.
	msgNoContent = "No content found"

	// msgContentNotFound covers a missing (or unparseable) content id.
	msgContentNotFound = "Content not found"

	// msgStatusReady is the /status banner.
	msgStatusReady = "Service is running and ready to accept requests"
)
