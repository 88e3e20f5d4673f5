package middleware // middleware provides shared request processing for handlers

import (
    "context"  // context bounds the share lookup
    "net/http" // http package defines standard HTTP status codes
    "time"     // time provides the lookup timeout

    "github.com/labstack/echo/v4" // echo provides middleware chaining and context

    "github.com/showdeck/showdeck/internal/repository"
)

// ShareGrant returns a middleware that resolves the :code path parameter
// into an active share grant.  Unknown and revoked codes read identically as
// 404 so a prober learns nothing about which codes ever existed.  On success
// the grant's document id and mode are stored in the context under
// "share_document_id" and "share_mode" for handlers and the RequireShareMode
// gate downstream.
func ShareGrant(shares *repository.ShareRepo) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            code := c.Param("code")
            if code == "" {
                return c.JSON(http.StatusNotFound, echo.Map{"error": "share not found"})
            }
            ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
            defer cancel()
            s, err := shares.GetActiveByCode(ctx, code)
            if err != nil {
                if err == repository.ErrShareNotFound {
                    return c.JSON(http.StatusNotFound, echo.Map{"error": "share not found"})
                }
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify share"})
            }
            c.Set("share_document_id", s.DocumentID)
            c.Set("share_mode", s.Mode)
            return next(c)
        }
    }
}

// RequireShareMode returns a middleware function that enforces that the
// resolved share grant carries one of the specified modes.  It assumes
// ShareGrant ran earlier in the chain and stored the mode in the context
// under "share_mode".  A view-only code presented to an edit endpoint is
// aborted with a 403 Forbidden response.
func RequireShareMode(modes ...string) echo.MiddlewareFunc {
    // Build a set of allowed modes for constant‑time lookups.  The map
    // value is a boolean and is always true when present.
    allowed := make(map[string]bool, len(modes))
    for _, m := range modes {
        allowed[m] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // Retrieve the mode from context.  It should have been stored
            // by the ShareGrant middleware as a string.  If not present or
            // of wrong type, treat as missing.
            v := c.Get("share_mode")
            mode, ok := v.(string)
            if !ok || !allowed[mode] {
                // If the mode is missing or not allowed, return 403
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            // Otherwise call the next handler in the chain
            return next(c)
        }
    }
}
