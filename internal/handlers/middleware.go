package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"forum-app/post-service/internal/domain"
	services "forum-app/post-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AuthMiddleware verifies the bearer token and stashes the access details
// for the handlers.
func AuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Invalid authorization header format"})
			return
		}

		accessDetails, err := authService.VerifyAccessToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Invalid access token"})
			return
		}

		c.Set("access_details", accessDetails)
		c.Next()
	}
}

// GetUserID returns the acting user's id established by AuthMiddleware.
func GetUserID(c *gin.Context) (string, error) {
	accessDetails, exists := c.Get("access_details")
	if !exists {
		return "", fmt.Errorf("access details not found in context")
	}

	accessDetailsPtr, ok := accessDetails.(*domain.AccessDetails)
	if !ok {
		return "", fmt.Errorf("invalid access details format")
	}

	return accessDetailsPtr.UserID, nil
}

// RequestLogger tags every request with an id and writes one structured
// line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Header("X-Request-Id", requestID)

		start := time.Now()
		c.Next()

		log.Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}
