package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// actorIDKey is the key used to store the acting user's ID in the request context.
const actorIDKey = contextKey("actorID")

// SystemActorID is used when no caller identity was supplied.
const SystemActorID = "system"

// ActorMiddleware reads the X-Actor-ID header and stores it in the request
// context for audit attribution. Missing headers fall back to the system actor.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader("X-Actor-ID")
		if actorID == "" {
			actorID = SystemActorID
		}
		ctx := context.WithValue(c.Request.Context(), actorIDKey, actorID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetActorIDFromCtx retrieves the acting user ID from the request context.
func GetActorIDFromCtx(ctx context.Context) string {
	actorID, ok := ctx.Value(actorIDKey).(string)
	if !ok || actorID == "" {
		return SystemActorID
	}
	return actorID
}
