// Package repository contains data access logic for production documents.
// A Document is one saved production artifact (a patch sheet, stage plot,
// run of show or production schedule) stored as a whole-aggregate JSON
// payload owned by a user. Saves always rewrite the entire payload; the
// last_edited timestamp is refreshed on every save and never compared, so
// concurrent sessions resolve as last save wins.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// Document types stored in documents.doc_type.
const (
	TypeRunOfShow          = "RUN_OF_SHOW"
	TypePatchSheet         = "PATCH_SHEET"
	TypeStagePlot          = "STAGE_PLOT"
	TypeProductionSchedule = "PRODUCTION_SCHEDULE"
)

// ValidDocType reports whether t is one of the known document types.
func ValidDocType(t string) bool {
	switch t {
	case TypeRunOfShow, TypePatchSheet, TypeStagePlot, TypeProductionSchedule:
		return true
	}
	return false
}

// Document mirrors the 'documents' table. Payload holds the serialized
// aggregate exactly as the editor saved it.
type Document struct {
	ID         uint64          // documents.id
	OwnerID    uint64          // documents.owner_id
	DocType    string          // documents.doc_type
	Name       string          // documents.name
	Payload    json.RawMessage // documents.payload (whole aggregate)
	LastEdited time.Time       // documents.last_edited, rewritten on every save
	CreatedAt  time.Time       // documents.created_at
}

// DocumentRepo manages persistence for production documents.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo constructs a DocumentRepo with the given DB handle.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// DB exposes the underlying sql.DB. It allows callers to begin
// transactions spanning multiple repositories.
func (r *DocumentRepo) DB() *sql.DB {
	return r.db
}

// Create inserts a new document and assigns the generated ID and DB-default
// timestamps back onto the struct.
func (r *DocumentRepo) Create(ctx context.Context, d *Document) error {
	const q = `INSERT INTO documents (owner_id, doc_type, name, payload) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, d.OwnerID, d.DocType, d.Name, []byte(d.Payload))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	const sel = `SELECT id, owner_id, doc_type, name, payload, last_edited, created_at
                 FROM documents WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, d.ID).Scan(
		&d.ID, &d.OwnerID, &d.DocType, &d.Name, (*[]byte)(&d.Payload), &d.LastEdited, &d.CreatedAt,
	)
}

// GetByID retrieves a document regardless of owner. It returns
// ErrDocumentNotFound if there is no matching row. Callers that act on
// behalf of a user must check ownership themselves or use GetByIDAndOwner.
func (r *DocumentRepo) GetByID(ctx context.Context, id uint64) (*Document, error) {
	const q = `SELECT id, owner_id, doc_type, name, payload, last_edited, created_at
               FROM documents WHERE id = ?`
	var d Document
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.OwnerID, &d.DocType, &d.Name, (*[]byte)(&d.Payload), &d.LastEdited, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &d, nil
}

// GetByIDAndOwner retrieves a document only when it belongs to the given
// owner. A row owned by someone else reads the same as a missing row so the
// API never confirms the existence of another user's documents.
func (r *DocumentRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*Document, error) {
	const q = `SELECT id, owner_id, doc_type, name, payload, last_edited, created_at
               FROM documents WHERE id = ? AND owner_id = ?`
	var d Document
	err := r.db.QueryRowContext(ctx, q, id, ownerID).Scan(
		&d.ID, &d.OwnerID, &d.DocType, &d.Name, (*[]byte)(&d.Payload), &d.LastEdited, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &d, nil
}

// ListByOwner returns all documents for an owner, optionally filtered by
// doc_type, ordered by most recently edited first. Payloads are included so
// list pages can show previews without a second round trip. When no
// documents exist it returns an empty slice and nil error.
func (r *DocumentRepo) ListByOwner(ctx context.Context, ownerID uint64, docType string) ([]Document, error) {
	q := `SELECT id, owner_id, doc_type, name, payload, last_edited, created_at
          FROM documents WHERE owner_id = ?`
	args := []any{ownerID}
	if docType != "" {
		q += ` AND doc_type = ?`
		args = append(args, docType)
	}
	q += ` ORDER BY last_edited DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(
			&d.ID, &d.OwnerID, &d.DocType, &d.Name, (*[]byte)(&d.Payload), &d.LastEdited, &d.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateByIDAndOwner overwrites a document's name and payload and refreshes
// last_edited. The previous last_edited value is not compared: concurrent
// editing sessions resolve as last save wins. Returns ErrDocumentNotFound
// when the row does not exist or belongs to another owner.
func (r *DocumentRepo) UpdateByIDAndOwner(ctx context.Context, d *Document, ownerID uint64) error {
	const q = `UPDATE documents
               SET name = ?, payload = ?, last_edited = CURRENT_TIMESTAMP
               WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, d.Name, []byte(d.Payload), d.ID, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish missing/foreign rows from a save of identical bytes,
		// which MySQL reports as zero affected rows.
		var one int
		err := r.db.QueryRowContext(ctx,
			`SELECT 1 FROM documents WHERE id = ? AND owner_id = ? LIMIT 1`,
			d.ID, ownerID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrDocumentNotFound
		}
		if err != nil {
			return err
		}
	}
	const sel = `SELECT last_edited FROM documents WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, d.ID).Scan(&d.LastEdited)
}

// UpdateByID overwrites name and payload without an owner check. It backs
// shared-edit sessions where authorization was already established through a
// verified share grant rather than ownership.
func (r *DocumentRepo) UpdateByID(ctx context.Context, d *Document) error {
	const q = `UPDATE documents
               SET name = ?, payload = ?, last_edited = CURRENT_TIMESTAMP
               WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, d.Name, []byte(d.Payload), d.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		err := r.db.QueryRowContext(ctx,
			`SELECT 1 FROM documents WHERE id = ? LIMIT 1`, d.ID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrDocumentNotFound
		}
		if err != nil {
			return err
		}
	}
	const sel = `SELECT last_edited FROM documents WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, d.ID).Scan(&d.LastEdited)
}

// DeleteByIDAndOwner removes a document and its share grants. The deletion
// runs in a transaction so no orphaned shares survive. ErrDocumentNotFound
// is returned when the row does not exist; ErrForbidden when it is owned by
// another user.
func (r *DocumentRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	var dbOwnerID uint64
	err = tx.QueryRowContext(ctx, `SELECT owner_id FROM documents WHERE id = ?`, id).Scan(&dbOwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrDocumentNotFound
		}
		return err
	}
	if dbOwnerID != ownerID {
		err = ErrForbidden
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM document_shares WHERE document_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}

// Duplicate copies a document owned by ownerID into a fresh row named
// "<name> (Copy)" and returns the copy. Share grants are not copied: a
// duplicate starts private.
func (r *DocumentRepo) Duplicate(ctx context.Context, id, ownerID uint64) (*Document, error) {
	src, err := r.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	dup := &Document{
		OwnerID: ownerID,
		DocType: src.DocType,
		Name:    src.Name + " (Copy)",
		Payload: src.Payload,
	}
	if err := r.Create(ctx, dup); err != nil {
		return nil, err
	}
	return dup, nil
}
