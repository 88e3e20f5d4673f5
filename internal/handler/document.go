package handler // handler package contains document CRUD handlers

import (
    "context"       // context bounds DB calls
    "encoding/json" // json validates payloads crossing the persistence boundary
    "net/http"      // http defines status codes
    "strconv"       // strconv converts path params to integers
    "strings"       // strings helps with trimming whitespace
    "time"          // time bounds DB calls

    "github.com/labstack/echo/v4" // echo provides the web context and JSON helpers

    "github.com/showdeck/showdeck/internal/queue"      // queue defines document activity events
    "github.com/showdeck/showdeck/internal/repository" // repository defines data models
    "github.com/showdeck/showdeck/internal/runofshow"  // runofshow validates run-of-show payloads
    "github.com/showdeck/showdeck/internal/service"    // service publishes events to the broker
)

// DocumentHandler bundles repositories for document CRUD endpoints.
type DocumentHandler struct {
    Docs   *repository.DocumentRepo // Docs provides document persistence
    Shares *repository.ShareRepo    // Shares provides share grant persistence
}

// NewDocumentHandler constructs a new DocumentHandler and panics if any dependency is nil.
func NewDocumentHandler(docs *repository.DocumentRepo, shares *repository.ShareRepo) *DocumentHandler {
    if docs == nil || shares == nil {
        panic("nil repository passed to NewDocumentHandler")
    }
    return &DocumentHandler{Docs: docs, Shares: shares}
}

// documentResp is the wire shape of a document returned to clients.
type documentResp struct {
    ID         uint64          `json:"id"`
    DocType    string          `json:"doc_type"`
    Name       string          `json:"name"`
    Payload    json.RawMessage `json:"payload"`
    LastEdited time.Time       `json:"last_edited"`
    CreatedAt  time.Time       `json:"created_at"`
}

func toDocumentResp(d *repository.Document) documentResp {
    return documentResp{
        ID:         d.ID,
        DocType:    d.DocType,
        Name:       d.Name,
        Payload:    d.Payload,
        LastEdited: d.LastEdited,
        CreatedAt:  d.CreatedAt,
    }
}

// checkPayload validates a payload against its document type before it is
// persisted.  Run-of-show payloads are decoded into the timeline model and
// normalized in place: item numbers are rewritten but every other field the
// editor saved (column colors included) is stored exactly as sent, and a
// fresh show with no entries is a valid save.  Every other type only has to
// be a JSON document, since their aggregates are opaque to the server.  It
// returns the payload to store or a user-facing message.
func checkPayload(docType string, payload json.RawMessage) (json.RawMessage, string) {
    if len(payload) == 0 {
        return nil, "payload is required"
    }
    if docType != repository.TypeRunOfShow {
        if !json.Valid(payload) {
            return nil, "payload is not valid JSON"
        }
        return payload, ""
    }
    var tl runofshow.ShowTimeline
    if err := json.Unmarshal(payload, &tl); err != nil {
        return nil, "payload is not a valid run of show"
    }
    if err := tl.Normalize(); err != nil {
        return nil, err.Error()
    }
    normalized, err := json.Marshal(&tl)
    if err != nil {
        return nil, "payload could not be normalized"
    }
    return normalized, ""
}

// CreateDocument handles POST /v1/documents and stores a new document for the caller.
func (h *DocumentHandler) CreateDocument(c echo.Context) error { // begin CreateDocument handler
    ownerID, err := getUserID(c) // extract user ID from context
    if err != nil { // unauthorized when user ID is invalid
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body struct { // struct to bind JSON request body
        DocType string          `json:"doc_type"` // one of the four document types
        Name    string          `json:"name"`     // display name of the document
        Payload json.RawMessage `json:"payload"`  // whole serialized aggregate
    }
    if err := c.Bind(&body); err != nil { // bind incoming JSON
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    docType := strings.ToUpper(strings.TrimSpace(body.DocType)) // normalize the type token
    if !repository.ValidDocType(docType) { // reject unknown document types
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid doc_type"})
    }
    payload, msg := checkPayload(docType, body.Payload) // validate the aggregate at the boundary
    if msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    name := strings.TrimSpace(body.Name) // trim the display name
    if name == "" {                      // fall back to the aggregate's own name for run of show
        name = nameFromPayload(payload)
    }
    if name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    doc := &repository.Document{OwnerID: ownerID, DocType: docType, Name: name, Payload: payload}
    if err := h.Docs.Create(ctx, doc); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create document"})
    }
    go service.PublishDocumentEvent(context.Background(), queue.DocumentEvent{
        Action: queue.ActionSaved, DocumentID: doc.ID, OwnerID: ownerID,
        DocType: doc.DocType, Name: doc.Name, OccurredAt: time.Now().UTC().Format(time.RFC3339),
    })
    return c.JSON(http.StatusCreated, toDocumentResp(doc))
}

// ListDocuments handles GET /v1/documents and returns the caller's documents,
// optionally filtered with the ?type= query parameter.
func (h *DocumentHandler) ListDocuments(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    docType := strings.ToUpper(strings.TrimSpace(c.QueryParam("type")))
    if docType != "" && !repository.ValidDocType(docType) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid type filter"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    docs, err := h.Docs.ListByOwner(ctx, ownerID, docType)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load documents"})
    }
    items := make([]documentResp, 0, len(docs))
    for i := range docs {
        items = append(items, toDocumentResp(&docs[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetDocument handles GET /v1/documents/:id and returns one document owned by the caller.
func (h *DocumentHandler) GetDocument(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
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
    return c.JSON(http.StatusOK, toDocumentResp(doc))
}

// UpdateDocument handles PUT /v1/documents/:id.  The request carries the
// whole aggregate; the save rewrites the entire payload and refreshes
// last_edited without comparing it, so concurrent sessions resolve as last
// save wins.
func (h *DocumentHandler) UpdateDocument(c echo.Context) error { // begin UpdateDocument handler
    ownerID, err := getUserID(c) // authenticate caller
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64) // parse document ID from path
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    cur, err := h.Docs.GetByIDAndOwner(ctx, id, ownerID) // load the existing document
    if err != nil {
        if err == repository.ErrDocumentNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "document not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load document"})
    }

    var body struct {
        Name    string          `json:"name"`    // optional new display name
        Payload json.RawMessage `json:"payload"` // whole serialized aggregate
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    payload, msg := checkPayload(cur.DocType, body.Payload)
    if msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    name := strings.TrimSpace(body.Name)
    if name == "" {
        name = cur.Name // keep the current name when none is provided
    }

    cur.Name = name
    cur.Payload = payload
    if err := h.Docs.UpdateByIDAndOwner(ctx, cur, ownerID); err != nil {
        if err == repository.ErrDocumentNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "document not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save document"})
    }
    go service.PublishDocumentEvent(context.Background(), queue.DocumentEvent{
        Action: queue.ActionSaved, DocumentID: cur.ID, OwnerID: ownerID,
        DocType: cur.DocType, Name: cur.Name, OccurredAt: time.Now().UTC().Format(time.RFC3339),
    })
    return c.JSON(http.StatusOK, toDocumentResp(cur))
}

// DeleteDocument handles DELETE /v1/documents/:id and removes a document and
// its share grants.
func (h *DocumentHandler) DeleteDocument(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Docs.DeleteByIDAndOwner(ctx, id, ownerID); err != nil {
        switch err {
        case repository.ErrDocumentNotFound:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "document not found"})
        case repository.ErrForbidden:
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete document"})
        }
    }
    return c.NoContent(http.StatusNoContent)
}

// DuplicateDocument handles POST /v1/documents/:id/duplicate and copies a
// document into a fresh private row named "<name> (Copy)".
func (h *DocumentHandler) DuplicateDocument(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    dup, err := h.Docs.Duplicate(ctx, id, ownerID)
    if err != nil {
        if err == repository.ErrDocumentNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "document not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not duplicate document"})
    }
    return c.JSON(http.StatusCreated, toDocumentResp(dup))
}

// nameFromPayload pulls the aggregate's own name field out of a payload so a
// run of show saved without an explicit document name keeps its show name.
func nameFromPayload(payload json.RawMessage) string {
    var probe struct {
        Name string `json:"name"`
    }
    if err := json.Unmarshal(payload, &probe); err != nil {
        return ""
    }
    return strings.TrimSpace(probe.Name)
}
