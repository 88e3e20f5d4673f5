package router

import (
	"github.com/showdeck/showdeck/internal/handler"
	"github.com/showdeck/showdeck/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterDocuments registers owner-scoped document endpoints under /v1.  All
// routes require a valid JWT; ownership is enforced per query in the
// repository layer, so a caller can only ever see or touch their own rows.
func RegisterDocuments(e *echo.Echo, d *handler.DocumentHandler, s *handler.ShareHandler, r *handler.RunOfShowHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
	)

	// ---- Documents ----
	g.POST("/documents", d.CreateDocument)
	g.GET("/documents", d.ListDocuments) // supports ?type= filtering
	g.GET("/documents/:id", d.GetDocument)
	g.PUT("/documents/:id", d.UpdateDocument)
	g.PATCH("/documents/:id", d.UpdateDocument) // allow whole-aggregate saves via PATCH as well
	g.DELETE("/documents/:id", d.DeleteDocument)
	g.POST("/documents/:id/duplicate", d.DuplicateDocument)

	// ---- Shares (owner side) ----
	g.POST("/documents/:id/share", s.CreateShare)
	g.GET("/documents/:id/shares", s.ListShares)
	g.DELETE("/shares/:code", s.RevokeShare)

	// ---- Run of show ----
	g.POST("/run-of-show/import", r.Import)
	g.GET("/documents/:id/export", r.Export) // supports ?format=text|html
}
