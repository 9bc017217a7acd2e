package http

import (
	"net/http"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/labstack/echo/v4"
)

const (
	actorIDKey   = "actor_id"
	actorRoleKey = "actor_role"
)

// RateLimiter bounds request rates per actor.
type RateLimiter interface {
	Allow(actorKey string) bool
}

// authMiddleware resolves the bearer token into an authenticated actor and
// stores it on the request context. Requests without a valid token get 401.
func authMiddleware(identity ports.IdentityProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			credential, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || credential == "" {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Missing bearer token",
				})
			}

			actorID, role, err := identity.Authenticate(credential)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Invalid credential",
				})
			}

			ctx.Set(actorIDKey, actorID)
			ctx.Set(actorRoleKey, role)
			return next(ctx)
		}
	}
}

// rateLimitMiddleware rejects actors exceeding their request budget with 429.
// Keys on the actor id, falling back to the role for anonymous system
// callers.
func rateLimitMiddleware(limiter RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			key := actorRole(ctx).String()
			if id := actorID(ctx); id.Validate() == nil {
				key = id.String()
			}

			if !limiter.Allow(key) {
				return ctx.JSON(http.StatusTooManyRequests, ErrorResponse{
					Code:    http.StatusTooManyRequests,
					Message: "Too many requests",
				})
			}
			return next(ctx)
		}
	}
}

// actorID returns the authenticated actor's id, zero for anonymous system
// callers or unauthenticated routes.
func actorID(ctx echo.Context) kernel.UUID {
	if id, ok := ctx.Get(actorIDKey).(kernel.UUID); ok {
		return id
	}
	return kernel.UUID{}
}

// actorRole returns the authenticated actor's role.
func actorRole(ctx echo.Context) order.ActorRole {
	if role, ok := ctx.Get(actorRoleKey).(order.ActorRole); ok {
		return role
	}
	return order.RoleUnknown
}
