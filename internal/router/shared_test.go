package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showdeck/showdeck/internal/handler"
	"github.com/showdeck/showdeck/internal/repository"
)

// The token bucket must sit outside ShareGrant: once a client is throttled,
// its requests may not reach the share lookup and hammer the database.
func TestRegisterSharedThrottlesBeforeShareLookup(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "1")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "1h")
	t.Setenv("CACHE_ENABLED", "false")

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	docs := repository.NewDocumentRepo(db)
	shares := repository.NewShareRepo(db)

	e := echo.New()
	RegisterShared(e, handler.NewShareHandler(docs, shares), shares, rdb)

	// exactly one share lookup is allowed through before the bucket empties
	mock.ExpectQuery(`SELECT code, document_id`).
		WithArgs("abc").
		WillReturnRows(sqlmock.NewRows(
			[]string{"code", "document_id", "mode", "revoked_at", "created_at"}))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/shared/abc", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/shared/abc", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	assert.NoError(t, mock.ExpectationsWereMet(), "throttled request must not reach the database")
}
