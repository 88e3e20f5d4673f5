package handler // handler package contains share link handlers

import (
	"context"       // context bounds DB calls
	"encoding/json" // json validates payloads arriving through shared edits
	"net/http"      // http defines status codes
	"strconv"       // strconv converts path params to integers
	"strings"       // strings helps with trimming and case folding
	"time"          // time bounds DB calls

	"github.com/labstack/echo/v4" // echo provides the web context and JSON helpers

	"github.com/showdeck/showdeck/internal/queue"      // queue defines document activity events
	"github.com/showdeck/showdeck/internal/repository" // repository defines data models
	"github.com/showdeck/showdeck/internal/service"    // service publishes events to the broker
)

// ShareHandler bundles repositories for share management and shared access.
type ShareHandler struct {
	Docs   *repository.DocumentRepo // Docs provides document persistence
	Shares *repository.ShareRepo    // Shares provides share grant persistence
}

// NewShareHandler constructs a new ShareHandler and panics if any dependency is nil.
func NewShareHandler(docs *repository.DocumentRepo, shares *repository.ShareRepo) *ShareHandler {
	if docs == nil || shares == nil {
		panic("nil repository passed to NewShareHandler")
	}
	return &ShareHandler{Docs: docs, Shares: shares}
}

// shareResp is the wire shape of a share grant returned to owners.
type shareResp struct {
	Code      string `json:"code"`
	Mode      string `json:"mode"`
	Revoked   bool   `json:"revoked"`
	CreatedAt string `json:"created_at"`
}

func toShareResp(s *repository.Share) shareResp {
	return shareResp{
		Code:      s.Code,
		Mode:      s.Mode,
		Revoked:   s.RevokedAt.Valid,
		CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// CreateShare handles POST /v1/documents/:id/share.  Only the owner may mint
// codes; anyone later presenting the code skips the owner check entirely, so
// the mode recorded here is the only thing limiting what the code can do.
func (h *ShareHandler) CreateShare(c echo.Context) error { // begin CreateShare handler
	ownerID, err := getUserID(c) // authenticate caller
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	docID, err := strconv.ParseUint(c.Param("id"), 10, 64) // parse document ID from path
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct { // struct to bind JSON request body
		Mode string `json:"mode"` // VIEW or EDIT
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	mode := strings.ToUpper(strings.TrimSpace(body.Mode)) // normalize the mode token
	if mode != repository.ShareModeView && mode != repository.ShareModeEdit {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "mode must be VIEW or EDIT"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	share, err := h.Shares.Create(ctx, docID, ownerID, mode)
	if err != nil {
		if err == repository.ErrDocumentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "document not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create share"})
	}
	return c.JSON(http.StatusCreated, toShareResp(share))
}

// ListShares handles GET /v1/documents/:id/shares and returns every share
// grant ever minted for a document the caller owns, revoked ones included.
func (h *ShareHandler) ListShares(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	docID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	shares, err := h.Shares.ListByDocument(ctx, docID, ownerID)
	if err != nil {
		if err == repository.ErrDocumentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "document not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load shares"})
	}
	items := make([]shareResp, 0, len(shares))
	for i := range shares {
		items = append(items, toShareResp(&shares[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// RevokeShare handles DELETE /v1/shares/:code and deactivates a share code.
// Once revoked the code reads as not found to anyone presenting it.
func (h *ShareHandler) RevokeShare(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	code := c.Param("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid code"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Shares.RevokeByCode(ctx, code, ownerID); err != nil {
		switch err {
		case repository.ErrShareNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "share not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "share already revoked"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not revoke share"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// GetShared handles GET /v1/shared/:code.  The ShareGrant middleware already
// resolved the code, so the handler loads the document by id with no owner
// check: possession of an active code is the whole credential.
func (h *ShareHandler) GetShared(c echo.Context) error {
	docID, err := getShareDocumentID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "share not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	doc, err := h.Docs.GetByID(ctx, docID)
	if err != nil {
		if err == repository.ErrDocumentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "document not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load document"})
	}
	mode, _ := c.Get("share_mode").(string)
	return c.JSON(http.StatusOK, echo.Map{
		"mode":     mode,
		"document": toDocumentResp(doc),
	})
}

// UpdateShared handles PUT /v1/shared/:code.  The route is gated by
// RequireShareMode(EDIT), so a view-only code never reaches this handler.
// Saves follow the same whole-aggregate, last-save-wins rules as owner saves.
func (h *ShareHandler) UpdateShared(c echo.Context) error { // begin UpdateShared handler
	docID, err := getShareDocumentID(c) // document resolved by ShareGrant
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "share not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cur, err := h.Docs.GetByID(ctx, docID) // load current row for its doc_type
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
		name = cur.Name
	}

	cur.Name = name
	cur.Payload = payload
	if err := h.Docs.UpdateByID(ctx, cur); err != nil {
		if err == repository.ErrDocumentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "document not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save document"})
	}
	go service.PublishDocumentEvent(context.Background(), queue.DocumentEvent{
		Action: queue.ActionSaved, DocumentID: cur.ID, OwnerID: cur.OwnerID,
		DocType: cur.DocType, Name: cur.Name, OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusOK, toDocumentResp(cur))
}
