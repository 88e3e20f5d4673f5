package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListByDocumentUnknownDocument(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewShareRepo(db)

	// the ownership probe finds nothing, so the list query must never run
	mock.ExpectQuery(`SELECT 1 FROM documents`).
		WithArgs(uint64(7), uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	_, err = repo.ListByDocument(context.Background(), 7, 9)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByDocumentNoSharesYet(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewShareRepo(db)

	mock.ExpectQuery(`SELECT 1 FROM documents`).
		WithArgs(uint64(7), uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(`SELECT s.code`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"code", "document_id", "mode", "revoked_at", "created_at"}))

	shares, err := repo.ListByDocument(context.Background(), 7, 9)
	require.NoError(t, err)
	// an owned document with no grants lists as empty, not as an error
	assert.Empty(t, shares)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByDocumentReturnsGrants(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewShareRepo(db)

	created := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT 1 FROM documents`).
		WithArgs(uint64(7), uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(`SELECT s.code`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"code", "document_id", "mode", "revoked_at", "created_at"}).
			AddRow("code-b", 7, ShareModeEdit, nil, created).
			AddRow("code-a", 7, ShareModeView, created, created))

	shares, err := repo.ListByDocument(context.Background(), 7, 9)
	require.NoError(t, err)
	require.Len(t, shares, 2)
	assert.Equal(t, "code-b", shares[0].Code)
	assert.False(t, shares[0].RevokedAt.Valid)
	assert.True(t, shares[1].RevokedAt.Valid, "revoked grants stay listed for the owner")
	assert.NoError(t, mock.ExpectationsWereMet())
}
