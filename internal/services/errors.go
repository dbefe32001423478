// Package services defines the application logic for ingesting and reading
// stored agent outputs. This file centralizes the service-level error values
// so handlers can map them to HTTP statuses consistently.
package services

import "errors"

var (
	// ErrNoContent indicates the store holds zero rows. The full listing
	// treats this as a distinct outcome from a successful empty result (the
	// summary listing does not; the asymmetry is part of the API contract).
	ErrNoContent = errors.New("no content found")

	// ErrContentNotFound indicates that no row has the requested id.
	ErrContentNotFound = errors.New("content not found")
)
