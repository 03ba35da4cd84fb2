package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	dealerRepo "fleetrent/database/repository/dealer"
	"fleetrent/models"
	"fleetrent/utils"
)

// DealerIDKey is the gin context key every protected handler reads its
// tenant from.
const DealerIDKey = "dealerID"

// JWTAuthMiddleware authenticates a dealer bearer token. The token hash is
// checked against the auth cache first, falling back to the dealer document
// on a miss so a cold cache never locks dealers out.
func JWTAuthMiddleware(dealers dealerRepo.DealerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Missing or invalid Authorization header",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		dealerID, err := utils.ExtractDealerIDFromToken(tokenString)
		if err != nil || dealerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid token",
			})
			return
		}

		computedHash := utils.HashToken(tokenString)
		ctx := c.Request.Context()
		cacheKey := utils.AuthCachePrefix + dealerID

		authCache := utils.GetAuthCacheClient()
		if authCache != nil {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil {
				if cachedHash != computedHash {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
						"success": false,
						"message": "Token mismatch",
					})
					return
				}
				_ = authCache.Expire(ctx, cacheKey, time.Hour).Err()
				c.Set(DealerIDKey, models.DealerID(dealerID))
				c.Next()
				return
			}
			if err != redis.Nil {
				utils.GetLogger().Warn("Auth cache lookup failed, falling back to DB", zap.Error(err))
			}
		}

		d, err := dealers.GetByDealerID(ctx, models.DealerID(dealerID))
		if err != nil || d == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication error",
			})
			return
		}
		if d.TokenHash == "" || d.TokenHash != computedHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Token mismatch",
			})
			return
		}

		if authCache != nil {
			_ = authCache.Set(ctx, cacheKey, computedHash, time.Hour).Err()
		}

		c.Set(DealerIDKey, models.DealerID(dealerID))
		c.Next()
	}
}

// DealerFromContext extracts the authenticated tenant from the gin context.
func DealerFromContext(c *gin.Context) (models.DealerID, bool) {
	v, exists := c.Get(DealerIDKey)
	if !exists {
		return "", false
	}
	dealer, ok := v.(models.DealerID)
	return dealer, ok && dealer != ""
}
