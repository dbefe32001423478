// Package repo implements the data persistence layer for stored agent
// outputs, backed by GORM. This file provides the insert and read queries
// over the agent_outputs table.
package repo

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tbourn/go-content-backend/internal/domain"
)

// InsertContent appends one row. The store assigns id and creation time;
// keypoints and tags are serialized to JSON arrays (never null) before the
// write. Returns the persisted row so callers can read the assigned id.
func InsertContent(ctx context.Context, db *gorm.DB, heading, summary string, keypoints, tags []string) (*domain.Content, error) {
	c := &domain.Content{
		Heading:   heading,
		Summary:   summary,
		Keypoints: marshalList(keypoints),
		Tags:      marshalList(tags),
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// ListContents returns every row ordered descending by id (newest first).
func ListContents(ctx context.Context, db *gorm.DB) ([]domain.Content, error) {
	var out []domain.Content
	err := db.WithContext(ctx).Order("id DESC").Find(&out).Error
	return out, err
}

// ListContentSummaries returns the lightweight projection (id, heading,
// summary, created_at) ordered descending by id.
func ListContentSummaries(ctx context.Context, db *gorm.DB) ([]domain.ContentSummary, error) {
	var out []domain.ContentSummary
	err := db.WithContext(ctx).
		Model(&domain.Content{}).
		Select("id", "heading", "summary", "created_at").
		Order("id DESC").
		Find(&out).Error
	return out, err
}

// GetContent fetches a single row by id. Missing rows surface as
// gorm.ErrRecordNotFound.
func GetContent(ctx context.Context, db *gorm.DB, id uint) (*domain.Content, error) {
	var c domain.Content
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// CountContents reports the number of stored rows. Uses a raw COUNT so a
// missing table surfaces as an error.
func CountContents(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Raw("SELECT COUNT(*) FROM agent_outputs").Scan(&total).Error
	return total, err
}

// marshalList serializes a string slice to a JSON array column value. A nil
// slice is written as [] so the stored representation is always an array.
func marshalList(vals []string) datatypes.JSON {
	if vals == nil {
		vals = []string{}
	}
	b, err := json.Marshal(vals)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(b)
}
