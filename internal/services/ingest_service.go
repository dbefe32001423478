// Package services – IngestService
//
// This file implements the ingestion pipeline: extract one JSON value from
// the submitted payload, normalize it into an ordered candidate batch, and
// persist the batch with best-effort, per-item outcomes. Items are processed
// strictly in sequence order so error indexes correlate deterministically
// with the submitted positions; each insert commits independently, with no
// transaction spanning the batch.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-content-backend/internal/ingest"
	"github.com/tbourn/go-content-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ItemError correlates one failed batch item with its submitted position.
type ItemError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// BatchResult is the aggregate outcome of one ingestion request. Inserted
// holds the assigned ids in processing order; Errors holds one entry per
// failed item. Both slices are always non-nil.
type BatchResult struct {
	Inserted []uint
	Errors   []ItemError
}

// Success reports the batch-level outcome: at least one item persisted.
func (r BatchResult) Success() bool { return len(r.Inserted) > 0 }

// insertFunc persists one accepted candidate and returns its assigned id.
type insertFunc func(ctx context.Context, c ingest.Candidate) (uint, error)

// IngestService owns the write path of the API.
type IngestService struct {
	DB *gorm.DB
}

// Store runs the full pipeline for one request body. An extraction failure
// (ingest.ErrInvalidJSON) rejects the request before any item is considered;
// every failure after that point is per-item and lands in the result's
// error list instead.
func (s *IngestService) Store(ctx context.Context, raw []byte) (BatchResult, error) {
	tr := otel.Tracer("services/IngestService")
	ctx, span := tr.Start(ctx, "Store",
		trace.WithAttributes(attribute.Int("payload.bytes", len(raw))),
	)
	defer span.End()

	doc, err := ingest.Extract(raw)
	if err != nil {
		return BatchResult{}, err
	}
	batch := ingest.Normalize(doc)
	span.SetAttributes(attribute.Int("batch.size", len(batch)))

	res := persistBatch(ctx, batch, func(ctx context.Context, c ingest.Candidate) (uint, error) {
		row, err := repo.InsertContent(ctx, s.DB, c.Heading, c.Summary, c.Keypoints, c.Tags)
		if err != nil {
			return 0, err
		}
		return row.ID, nil
	})

	span.SetAttributes(
		attribute.Int("batch.inserted", len(res.Inserted)),
		attribute.Int("batch.errors", len(res.Errors)),
	)
	return res, nil
}

// persistBatch folds the candidate sequence into a BatchResult. For each
// candidate in order: validate, then insert; either failure appends an
// indexed error and moves on. All persistence goes through insert, which
// keeps the partial-failure contract testable without a database.
func persistBatch(ctx context.Context, batch []ingest.Candidate, insert insertFunc) BatchResult {
	res := BatchResult{
		Inserted: []uint{},
		Errors:   []ItemError{},
	}
	for _, cand := range batch {
		if err := cand.Validate(); err != nil {
			res.Errors = append(res.Errors, ItemError{Index: cand.Index, Error: err.Error()})
			continue
		}
		id, err := insert(ctx, cand)
		if err != nil {
			res.Errors = append(res.Errors, ItemError{Index: cand.Index, Error: err.Error()})
			continue
		}
		res.Inserted = append(res.Inserted, id)
	}
	return res
}
