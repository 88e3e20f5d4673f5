package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showdeck/showdeck/internal/repository"
)

func invokeShareMode(t *testing.T, mode interface{}, allowed ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/v1/shared/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if mode != nil {
		c.Set("share_mode", mode)
	}
	h := RequireShareMode(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec
}

func TestRequireShareModeAllowsListedMode(t *testing.T) {
	t.Parallel()
	rec := invokeShareMode(t, repository.ShareModeEdit, repository.ShareModeEdit)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireShareModeRejectsViewOnEdit(t *testing.T) {
	t.Parallel()
	rec := invokeShareMode(t, repository.ShareModeView, repository.ShareModeEdit)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireShareModeRejectsMissingGrant(t *testing.T) {
	t.Parallel()
	rec := invokeShareMode(t, nil, repository.ShareModeEdit)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireShareModeRejectsWrongType(t *testing.T) {
	t.Parallel()
	rec := invokeShareMode(t, 42, repository.ShareModeEdit, repository.ShareModeView)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
