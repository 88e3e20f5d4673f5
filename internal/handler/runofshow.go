package handler // handler package contains run-of-show import and export handlers

import (
	"context"       // context bounds DB calls
	"encoding/json" // json decodes stored payloads for rendering
	"io"            // io reads the raw pasted body
	"net/http"      // http defines status codes
	"strconv"       // strconv converts path params to integers
	"strings"       // strings normalizes the format token
	"time"          // time bounds DB calls

	"github.com/labstack/echo/v4" // echo provides the web context and JSON helpers

	"github.com/showdeck/showdeck/internal/export"     // export renders timelines to text and HTML
	"github.com/showdeck/showdeck/internal/queue"      // queue defines document activity events
	"github.com/showdeck/showdeck/internal/repository" // repository defines data models
	"github.com/showdeck/showdeck/internal/runofshow"  // runofshow normalizes pasted JSON
	"github.com/showdeck/showdeck/internal/service"    // service publishes events to the broker
)

// maxImportBytes caps the pasted body so a stray multi-megabyte paste cannot
// tie up the decoder.
const maxImportBytes = 2 << 20

// RunOfShowHandler bundles repositories for import and export endpoints.
type RunOfShowHandler struct {
	Docs *repository.DocumentRepo // Docs provides document persistence
}

// NewRunOfShowHandler constructs a new RunOfShowHandler and panics if the repo is nil.
func NewRunOfShowHandler(docs *repository.DocumentRepo) *RunOfShowHandler {
	if docs == nil {
		panic("nil repository passed to NewRunOfShowHandler")
	}
	return &RunOfShowHandler{Docs: docs}
}

// Import handles POST /v1/run-of-show/import.  The body is the raw pasted
// JSON, not a wrapper object.  Valid input comes back normalized as a new
// document owned by the caller; anything malformed is rejected whole with a
// message naming the first defect, never partially imported.
func (h *RunOfShowHandler) Import(c echo.Context) error { // begin Import handler
	ownerID, err := getUserID(c) // authenticate caller
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, maxImportBytes)) // read the pasted body
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not read request body"})
	}

	tl, err := runofshow.Import(raw) // validate and normalize
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	payload, err := json.Marshal(tl)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not encode document"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	doc := &repository.Document{
		OwnerID: ownerID,
		DocType: repository.TypeRunOfShow,
		Name:    tl.Name,
		Payload: payload,
	}
	if err := h.Docs.Create(ctx, doc); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create document"})
	}
	go service.PublishDocumentEvent(context.Background(), queue.DocumentEvent{
		Action: queue.ActionSaved, DocumentID: doc.ID, OwnerID: ownerID,
		DocType: doc.DocType, Name: doc.Name, OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusCreated, toDocumentResp(doc))
}

// Export handles GET /v1/documents/:id/export?format=text|html and renders a
// stored run of show for printing or pasting. Only run-of-show documents can
// be exported; other types have no tabular rendering.
func (h *RunOfShowHandler) Export(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	format := strings.ToLower(strings.TrimSpace(c.QueryParam("format")))
	if format == "" {
		format = "text"
	}
	if format != "text" && format != "html" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "format must be text or html"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	doc, err := h.Docs.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if err == repository.ErrDocumentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "document not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load document"})
	}
	if doc.DocType != repository.TypeRunOfShow {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "only run of show documents can be exported"})
	}

	var tl runofshow.ShowTimeline
	if err := json.Unmarshal(doc.Payload, &tl); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stored payload is corrupt"})
	}

	go service.PublishDocumentEvent(context.Background(), queue.DocumentEvent{
		Action: queue.ActionExported, DocumentID: doc.ID, OwnerID: ownerID,
		DocType: doc.DocType, Name: doc.Name, Format: format,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	if format == "html" {
		return c.HTML(http.StatusOK, export.RenderHTML(&tl))
	}
	return c.String(http.StatusOK, export.RenderText(&tl))
}
