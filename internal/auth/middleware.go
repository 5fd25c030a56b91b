package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tteslee/fundamental/internal"
	"github.com/tteslee/fundamental/internal/config"
	"github.com/tteslee/fundamental/internal/storage"
)

// Middleware authenticates every request from its bearer token and stores
// the resolved user on the context. The user row is upserted so that a
// first-time authentication creates it.
func Middleware(provider Provider, users storage.UserRepository, cfg *config.Config, logger internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			var user *internal.User
			var err error
			if cfg.Env == "development" {
				user, err = provider.ValidateTokenLocal(token)
			} else {
				user, err = provider.ValidateTokenRemote(c.Request.Context(), token)
			}
			if err == nil {
				user.UpdatedAt = time.Now()
				if user.CreatedAt.IsZero() {
					user.CreatedAt = user.UpdatedAt
				}
				if err := users.UpsertUser(c.Request.Context(), user); err != nil {
					logger.Warnf("failed to upsert user %s: %v", user.ID, err)
				}
				c.Set("user", user)
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
}
