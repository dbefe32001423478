// Package domain defines the persistence model for stored agent outputs and
// the read-side views derived from it. The Content type is mapped with GORM
// and forms the single append-only table of the application.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Content represents one persisted agent output. Rows are created once and
// never updated or deleted through the public API.
//
// Fields:
//   - ID: auto-assigned integer primary key; ordering key for all listings.
//   - Heading / Summary: required, non-empty text (enforced by validation
//     before insert and by NOT NULL at the schema level).
//   - Keypoints / Tags: list-valued fields stored as serialized JSON
//     (datatypes.JSON maps to jsonb on Postgres and a text column on SQLite).
//     They are always written as JSON arrays; reads re-decode them
//     defensively (see services.ContentService).
//   - CreatedAt: assigned at insertion time, never client-settable.
type Content struct {
	ID        uint           `json:"id"         gorm:"primaryKey;autoIncrement"`
	Heading   string         `json:"heading"    gorm:"type:text;not null"`
	Summary   string         `json:"summary"    gorm:"type:text;not null"`
	Keypoints datatypes.JSON `json:"keypoints"  gorm:"type:jsonb"`
	Tags      datatypes.JSON `json:"tags"       gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"created_at"`
}

// TableName returns the database table name for Content.
func (Content) TableName() string { return "agent_outputs" }

// ContentRecord is the API-facing view of a Content row with the list fields
// decoded to plain string slices. The retrieval layer guarantees Keypoints
// and Tags are non-nil, so they always serialize as JSON arrays.
type ContentRecord struct {
	ID        uint      `json:"id"`
	Heading   string    `json:"heading"`
	Summary   string    `json:"summary"`
	Keypoints []string  `json:"keypoints"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// ContentSummary is the lightweight listing projection: identity and the two
// required text fields only, keypoints/tags omitted.
type ContentSummary struct {
	ID        uint      `json:"id"`
	Heading   string    `json:"heading"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}
