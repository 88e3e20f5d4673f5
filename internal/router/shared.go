package router

// This file registers the share-code routes.  These endpoints carry no JWT:
// possession of an active code is the credential, resolved by the ShareGrant
// middleware before any handler runs.  Reads sit behind the Redis response
// cache because shared links get pasted into group chats and hammered by
// many viewers at once; writes are gated on the EDIT mode.

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/showdeck/showdeck/internal/config"
	"github.com/showdeck/showdeck/internal/handler"
	"github.com/showdeck/showdeck/internal/middleware"
	"github.com/showdeck/showdeck/internal/repository"
)

// RegisterShared registers the guest-facing /v1/shared routes.  A nil Redis
// client disables the response cache and rate limiter but leaves the routes
// functional.  Middleware order matters here: the token bucket and the
// response cache run before ShareGrant so a throttled or cached request
// never touches the database.
func RegisterShared(e *echo.Echo, s *handler.ShareHandler, shares *repository.ShareRepo, rdb *redis.Client) {
	g := e.Group("/v1/shared")
	if rdb != nil {
		g.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
		g.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	}
	g.Use(middleware.ShareGrant(shares))

	// Read the shared document with either mode
	g.GET("/:code", s.GetShared)
	// Save through the share link; only EDIT codes may write
	g.PUT("/:code", s.UpdateShared, middleware.RequireShareMode(repository.ShareModeEdit))
}
