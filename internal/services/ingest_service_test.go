package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-content-backend/internal/ingest"
	"github.com/tbourn/go-content-backend/internal/repo"
)

// test DB helper
func newServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("svc_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// --- persistBatch: the fold is testable without a store ---

func TestPersistBatch_AllValid(t *testing.T) {
	batch := []ingest.Candidate{
		{Index: 0, Heading: "a", Summary: "1"},
		{Index: 1, Heading: "b", Summary: "2"},
	}
	var next uint
	res := persistBatch(context.Background(), batch, func(_ context.Context, c ingest.Candidate) (uint, error) {
		next++
		return next, nil
	})

	if !res.Success() {
		t.Fatalf("expected success: %+v", res)
	}
	if len(res.Inserted) != 2 || res.Inserted[0] != 1 || res.Inserted[1] != 2 {
		t.Fatalf("inserted ids out of order: %+v", res.Inserted)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %+v", res.Errors)
	}
}

func TestPersistBatch_PartialFailureKeepsGoing(t *testing.T) {
	batch := []ingest.Candidate{
		{Index: 0, Heading: "a", Summary: "1"},
		{Index: 1 /* missing fields */},
		{Index: 2, Heading: "c", Summary: "3"},
		{Index: 3, Heading: "d", Summary: "4"},
	}
	var next uint
	res := persistBatch(context.Background(), batch, func(_ context.Context, c ingest.Candidate) (uint, error) {
		if c.Heading == "c" {
			return 0, errors.New("constraint violation")
		}
		next++
		return next, nil
	})

	if !res.Success() {
		t.Fatalf("a batch with any inserts reports success: %+v", res)
	}
	if len(res.Inserted) != 2 {
		t.Fatalf("expected 2 inserts, got %+v", res.Inserted)
	}
	if len(res.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %+v", res.Errors)
	}
	if res.Errors[0].Index != 1 || res.Errors[0].Error != ingest.ErrMissingFields.Error() {
		t.Fatalf("validation error not correlated: %+v", res.Errors[0])
	}
	if res.Errors[1].Index != 2 || res.Errors[1].Error != "constraint violation" {
		t.Fatalf("store error not correlated: %+v", res.Errors[1])
	}
}

func TestPersistBatch_AllFailIsStillAResult(t *testing.T) {
	batch := []ingest.Candidate{{Index: 0}, {Index: 1}}
	res := persistBatch(context.Background(), batch, func(_ context.Context, _ ingest.Candidate) (uint, error) {
		t.Fatalf("insert must not run for invalid candidates")
		return 0, nil
	})

	if res.Success() {
		t.Fatalf("zero inserts must report success=false")
	}
	if res.Inserted == nil || res.Errors == nil {
		t.Fatalf("result slices must be non-nil: %+v", res)
	}
	if len(res.Errors) != 2 || res.Errors[0].Index != 0 || res.Errors[1].Index != 1 {
		t.Fatalf("unexpected errors: %+v", res.Errors)
	}
}

func TestPersistBatch_ValidationSkipsStore(t *testing.T) {
	calls := 0
	batch := []ingest.Candidate{{Index: 0, Heading: "h"}} // no summary
	persistBatch(context.Background(), batch, func(_ context.Context, _ ingest.Candidate) (uint, error) {
		calls++
		return 1, nil
	})
	if calls != 0 {
		t.Fatalf("invalid candidate reached the store")
	}
}

// --- Store: end to end against SQLite ---

func TestStore_SingleObject(t *testing.T) {
	db := newServiceDB(t)
	svc := &IngestService{DB: db}

	res, err := svc.Store(context.Background(), []byte(`{"heading":"h","summary":"s","tags":["a","b"]}`))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if !res.Success() || len(res.Inserted) != 1 || len(res.Errors) != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}

	n, err := repo.CountContents(context.Background(), db)
	if err != nil || n != 1 {
		t.Fatalf("expected exactly one persisted row, got n=%d err=%v", n, err)
	}
}

func TestStore_BatchWithInvalidItems(t *testing.T) {
	db := newServiceDB(t)
	svc := &IngestService{DB: db}

	res, err := svc.Store(context.Background(), []byte(`[
		{"heading":"a","summary":"1"},
		{"heading":"only heading"},
		{"summary":"only summary"},
		{"heading":"d","summary":"4"}
	]`))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if len(res.Inserted) != 2 || len(res.Errors) != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Errors[0].Index != 1 || res.Errors[1].Index != 2 {
		t.Fatalf("error indexes must match submitted positions: %+v", res.Errors)
	}

	n, _ := repo.CountContents(context.Background(), db)
	if n != 2 {
		t.Fatalf("expected 2 persisted rows, got %d", n)
	}
}

func TestStore_InvalidPayloadRejectsWholeRequest(t *testing.T) {
	db := newServiceDB(t)
	svc := &IngestService{DB: db}

	_, err := svc.Store(context.Background(), []byte(`"neither fence nor json"`))
	if !errors.Is(err, ingest.ErrInvalidJSON) {
		t.Fatalf("expected ErrInvalidJSON, got %v", err)
	}
	n, _ := repo.CountContents(context.Background(), db)
	if n != 0 {
		t.Fatalf("no rows may persist on extraction failure, got %d", n)
	}
}

func TestStore_FencedStringEqualsDirectObject(t *testing.T) {
	db := newServiceDB(t)
	svc := &IngestService{DB: db}
	ctx := context.Background()

	direct, err := svc.Store(ctx, []byte(`{"heading":"h","summary":"s"}`))
	if err != nil {
		t.Fatalf("direct: %v", err)
	}
	fenced, err := svc.Store(ctx, []byte("\"```json\\n{\\\"heading\\\":\\\"h\\\",\\\"summary\\\":\\\"s\\\"}\\n```\""))
	if err != nil {
		t.Fatalf("fenced: %v", err)
	}
	if len(direct.Inserted) != 1 || len(fenced.Inserted) != 1 {
		t.Fatalf("both submissions must persist one record: %+v / %+v", direct, fenced)
	}

	a, err := repo.GetContent(ctx, db, direct.Inserted[0])
	if err != nil {
		t.Fatalf("get direct: %v", err)
	}
	b, err := repo.GetContent(ctx, db, fenced.Inserted[0])
	if err != nil {
		t.Fatalf("get fenced: %v", err)
	}
	if a.Heading != b.Heading || a.Summary != b.Summary {
		t.Fatalf("fenced and direct must produce the same record: %+v vs %+v", a, b)
	}
}
