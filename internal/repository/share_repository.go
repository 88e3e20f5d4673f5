// Package repository contains data access logic for share grants. A share
// grant attaches an opaque code to a document; whoever presents the code may
// read the document, and codes issued in EDIT mode may also save it. The
// grant bypasses the owner check entirely, so revocation is the only way to
// take a code back.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Share modes stored in document_shares.mode.
const (
	ShareModeView = "VIEW"
	ShareModeEdit = "EDIT"
)

// Share mirrors the 'document_shares' table.
type Share struct {
	Code       string       // document_shares.code, the opaque share code
	DocumentID uint64       // document_shares.document_id
	Mode       string       // document_shares.mode (VIEW or EDIT)
	RevokedAt  sql.NullTime // document_shares.revoked_at, set when withdrawn
	CreatedAt  time.Time    // document_shares.created_at
}

// ShareRepo manages persistence for share grants.
type ShareRepo struct {
	db *sql.DB
}

// NewShareRepo constructs a ShareRepo with the given DB handle.
func NewShareRepo(db *sql.DB) *ShareRepo {
	return &ShareRepo{db: db}
}

// Create issues a fresh share code for a document owned by ownerID. The
// ownership check happens here so handlers cannot mint codes for foreign
// documents. Returns ErrDocumentNotFound when the document is missing or
// owned by someone else.
func (r *ShareRepo) Create(ctx context.Context, documentID, ownerID uint64, mode string) (*Share, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM documents WHERE id = ? AND owner_id = ? LIMIT 1`,
		documentID, ownerID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	s := &Share{Code: uuid.NewString(), DocumentID: documentID, Mode: mode}
	const q = `INSERT INTO document_shares (code, document_id, mode) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, s.Code, s.DocumentID, s.Mode); err != nil {
		return nil, err
	}
	const sel = `SELECT code, document_id, mode, revoked_at, created_at
                 FROM document_shares WHERE code = ?`
	err = r.db.QueryRowContext(ctx, sel, s.Code).Scan(
		&s.Code, &s.DocumentID, &s.Mode, &s.RevokedAt, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetActiveByCode returns the share grant for a code when it has not been
// revoked. Unknown and revoked codes both read as ErrShareNotFound.
func (r *ShareRepo) GetActiveByCode(ctx context.Context, code string) (*Share, error) {
	const q = `SELECT code, document_id, mode, revoked_at, created_at
               FROM document_shares WHERE code = ? LIMIT 1`
	var s Share
	err := r.db.QueryRowContext(ctx, q, code).Scan(
		&s.Code, &s.DocumentID, &s.Mode, &s.RevokedAt, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShareNotFound
		}
		return nil, err
	}
	if s.RevokedAt.Valid {
		return nil, ErrShareNotFound
	}
	return &s, nil
}

// ListByDocument returns all share grants (including revoked ones, so the
// owner can see history) for a document they own.  Returns
// ErrDocumentNotFound when the document is missing or owned by someone
// else, so a foreign id cannot be told apart from a nonexistent one.
func (r *ShareRepo) ListByDocument(ctx context.Context, documentID, ownerID uint64) ([]Share, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM documents WHERE id = ? AND owner_id = ? LIMIT 1`,
		documentID, ownerID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	const q = `SELECT s.code, s.document_id, s.mode, s.revoked_at, s.created_at
               FROM document_shares s
               WHERE s.document_id = ?
               ORDER BY s.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Share
	for rows.Next() {
		var s Share
		if err := rows.Scan(&s.Code, &s.DocumentID, &s.Mode, &s.RevokedAt, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// RevokeByCode withdraws a share code on a document owned by ownerID.
// Returns ErrShareNotFound for unknown codes or codes on foreign documents,
// and ErrConflict when the code was already revoked.
func (r *ShareRepo) RevokeByCode(ctx context.Context, code string, ownerID uint64) error {
	const q = `UPDATE document_shares s
               JOIN documents d ON d.id = s.document_id
               SET s.revoked_at = NOW()
               WHERE s.code = ? AND d.owner_id = ? AND s.revoked_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, code, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	const qExists = `SELECT 1 FROM document_shares s
                     JOIN documents d ON d.id = s.document_id
                     WHERE s.code = ? AND d.owner_id = ? LIMIT 1`
	var one int
	if err := r.db.QueryRowContext(ctx, qExists, code, ownerID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrShareNotFound
		}
		return err
	}
	return ErrConflict // row exists but was already revoked
}
