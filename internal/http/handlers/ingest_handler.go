// Ingestion HTTP handlers.
//
// This file exposes the write surface of the API:
//   - GET  /status     (readiness banner)
//   - POST /store-llm  (ingest one value or a batch of generator output)
//
// Handlers are transport-thin: they read the body, delegate to the ingest
// service, and translate the outcome into the API's envelopes. Note that a
// batch where every item failed is still a 200; only an unparseable payload
// rejects the request.
package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-content-backend/internal/domain"
	"github.com/tbourn/go-content-backend/internal/ingest"
	"github.com/tbourn/go-content-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// IngestService defines the write operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type IngestService interface {
	// Store extracts, normalizes, and persists one request body with
	// per-item outcomes.
	Store(ctx context.Context, raw []byte) (services.BatchResult, error)
}

// ContentService defines the read operations consumed by HTTP handlers.
type ContentService interface {
	// ListAll returns every record, newest first; services.ErrNoContent on
	// an empty store.
	ListAll(ctx context.Context) ([]domain.ContentRecord, error)
	// ListSummaries returns the id/heading/summary/created_at projection,
	// newest first; empty is a valid result.
	ListSummaries(ctx context.Context) ([]domain.ContentSummary, error)
	// GetByID returns one record or services.ErrContentNotFound.
	GetByID(ctx context.Context, id uint) (*domain.ContentRecord, error)
}

// Handlers groups the HTTP endpoints. It depends on abstract service
// interfaces to keep transport concerns separate from application logic.
type Handlers struct {
	ingestSvc  IngestService
	contentSvc ContentService
}

// New constructs a Handlers instance bound to the given services.
func New(ingestSvc IngestService, contentSvc ContentService) *Handlers {
	return &Handlers{ingestSvc: ingestSvc, contentSvc: contentSvc}
}

//
// DTOs
//

// StoreResponse is the aggregate outcome of one ingestion request. Inserted
// lists the assigned ids in processing order; Errors carries one entry per
// failed item, keyed by the item's position in the submitted batch.
type StoreResponse struct {
	Success  bool                 `json:"success"`
	Inserted []uint               `json:"inserted"`
	Errors   []services.ItemError `json:"errors"`
}

//
// Handlers
//

// Status godoc
// @ID          getStatus
// @Summary     Service readiness
// @Description Reports that the service is up and accepting requests.
// @Tags        Health
// @Produce     json
// @Success     200 {object} handlers.StatusResponse
// @Router      /status [get]
func (h *Handlers) Status(c *gin.Context) {
	ok(c, http.StatusOK, StatusResponse{Success: true, Message: msgStatusReady})
}

// StoreLLM godoc
// @ID          storeLLM
// @Summary     Ingest generator output
// @Description Accepts a JSON object, an array of objects, or a string that
// @Description contains JSON (optionally inside a ```json fenced block), and
// @Description persists each extracted record independently. Item failures do
// @Description not abort the batch; they are reported per index.
// @Tags        Ingest
// @Accept      json
// @Produce     json
// @Param       body body any true "JSON value or string carrying a fenced JSON block"
// @Success     200 {object} handlers.StoreResponse
// @Failure     400 {object} handlers.ErrorResponse "Invalid JSON format"
// @Router      /store-llm [post]
func (h *Handlers) StoreLLM(c *gin.Context) {
	ctx := c.Request.Context()

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		// Body cap exceeded or client went away mid-read.
		fail(c, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	res, err := h.ingestSvc.Store(ctx, raw)
	if err != nil {
		if errors.Is(err, ingest.ErrInvalidJSON) {
			fail(c, http.StatusBadRequest, msgInvalidJSON)
			return
		}
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	ok(c, http.StatusOK, StoreResponse{
		Success:  res.Success(),
		Inserted: res.Inserted,
		Errors:   res.Errors,
	})
}
