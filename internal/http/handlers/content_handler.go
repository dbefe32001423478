// Content HTTP handlers.
//
// This file exposes the read surface of the API:
//   - GET /api/content/all   (full records, newest first; 404 when empty)
//   - GET /api/content       (summary projection, newest first; empty ok)
//   - GET /api/content/:id   (single record by id)
//
// The two listing endpoints deliberately disagree on the empty-store case:
// the full listing reports 404 while the summary listing returns an empty
// data list. Consumers depend on both behaviors.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-content-backend/internal/services"
	"github.com/tbourn/go-content-backend/internal/utils"
)

// ListAllContent godoc
// @ID          listAllContent
// @Summary     List all stored records
// @Description Returns every record with keypoints and tags, ordered
// @Description descending by id. Responds 404 when the store is empty.
// @Tags        Content
// @Produce     json
// @Success     200 {array}  domain.ContentRecord
// @Failure     404 {object} handlers.ErrorResponse "No content found"
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/content/all [get]
func (h *Handlers) ListAllContent(c *gin.Context) {
	records, err := h.contentSvc.ListAll(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoContent):
			fail(c, http.StatusNotFound, msgNoContent)
		default:
			fail(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	// Bare array, not enveloped: this endpoint predates the data envelope.
	ok(c, http.StatusOK, records)
}

// ListContentSummaries godoc
// @ID          listContentSummaries
// @Summary     List record summaries
// @Description Returns the id/heading/summary/created_at projection ordered
// @Description descending by id. An empty store yields an empty data list.
// @Tags        Content
// @Produce     json
// @Success     200 {object} handlers.DataResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/content [get]
func (h *Handlers) ListContentSummaries(c *gin.Context) {
	summaries, err := h.contentSvc.ListSummaries(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	ok(c, http.StatusOK, DataResponse{Success: true, Data: summaries})
}

// GetContent godoc
// @ID          getContent
// @Summary     Fetch one record by id
// @Tags        Content
// @Produce     json
// @Param       id path int true "Record id"
// @Success     200 {object} handlers.DataResponse
// @Failure     404 {object} handlers.ErrorResponse "Content not found"
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/content/{id} [get]
func (h *Handlers) GetContent(c *gin.Context) {
	id, okID := utils.ParseUintID(c.Param("id"))
	if !okID {
		// A malformed id names no record; same outcome as an absent one.
		fail(c, http.StatusNotFound, msgContentNotFound)
		return
	}

	rec, err := h.contentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrContentNotFound):
			fail(c, http.StatusNotFound, msgContentNotFound)
		default:
			fail(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, DataResponse{Success: true, Data: rec})
}
