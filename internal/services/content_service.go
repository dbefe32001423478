// Package services – ContentService
//
// This file implements the read side of the API. Rows come back from the
// store with their list fields in whatever physical shape was written;
// decodeList re-decodes them defensively so callers always see a plain
// string slice. Malformed auxiliary data never fails a read; only store
// errors and genuinely missing records do.
package services

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tbourn/go-content-backend/internal/domain"
	"github.com/tbourn/go-content-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ContentService owns the read path of the API.
type ContentService struct {
	DB *gorm.DB
}

// ListAll returns every stored record, newest first. An empty store is
// reported as ErrNoContent rather than an empty success.
func (s *ContentService) ListAll(ctx context.Context) ([]domain.ContentRecord, error) {
	tr := otel.Tracer("services/ContentService")
	ctx, span := tr.Start(ctx, "ListAll")
	defer span.End()

	rows, err := repo.ListContents(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoContent
	}

	out := make([]domain.ContentRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, decodeContent(row))
	}
	span.SetAttributes(attribute.Int("content.count", len(out)))
	return out, nil
}

// ListSummaries returns the lightweight projection, newest first. Unlike
// ListAll, an empty store is a valid empty result here.
func (s *ContentService) ListSummaries(ctx context.Context) ([]domain.ContentSummary, error) {
	tr := otel.Tracer("services/ContentService")
	ctx, span := tr.Start(ctx, "ListSummaries")
	defer span.End()

	rows, err := repo.ListContentSummaries(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.ContentSummary{}
	}
	span.SetAttributes(attribute.Int("content.count", len(rows)))
	return rows, nil
}

// GetByID returns the record with the given id or ErrContentNotFound.
func (s *ContentService) GetByID(ctx context.Context, id uint) (*domain.ContentRecord, error) {
	tr := otel.Tracer("services/ContentService")
	ctx, span := tr.Start(ctx, "GetByID",
		trace.WithAttributes(attribute.Int("content.id", int(id))),
	)
	defer span.End()

	row, err := repo.GetContent(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	rec := decodeContent(*row)
	return &rec, nil
}

// decodeContent converts a stored row to its API view, re-decoding the
// serialized list fields.
func decodeContent(c domain.Content) domain.ContentRecord {
	return domain.ContentRecord{
		ID:        c.ID,
		Heading:   c.Heading,
		Summary:   c.Summary,
		Keypoints: decodeList(c.Keypoints),
		Tags:      decodeList(c.Tags),
		CreatedAt: c.CreatedAt,
	}
}

// decodeList recovers a string slice from a serialized list column. It
// accepts a JSON string array, a mixed-type JSON array (elements
// re-stringified), and a doubly-encoded array (a JSON string that itself
// holds an array). Anything else, malformed JSON included, degrades to an
// empty list; reads never fail because of a bad auxiliary field.
func decodeList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var strs []string
	if err := json.Unmarshal(raw, &strs); err == nil {
		if strs == nil {
			return []string{}
		}
		return strs
	}

	var vals []any
	if err := json.Unmarshal(raw, &vals); err == nil {
		out := make([]string, 0, len(vals))
		for _, v := range vals {
			b, err := json.Marshal(v)
			if err != nil {
				continue
			}
			s := string(b)
			// Plain strings lose their quotes; everything else keeps its
			// JSON form.
			_ = json.Unmarshal(b, &s)
			out = append(out, s)
		}
		return out
	}

	var inner string
	if err := json.Unmarshal(raw, &inner); err == nil {
		var nested []string
		if err := json.Unmarshal([]byte(inner), &nested); err == nil && nested != nil {
			return nested
		}
	}

	return []string{}
}
