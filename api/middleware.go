package api

import (
	"errors"
	"net/http"
	"strings"

	"foodgram-api/service"

	"github.com/gin-gonic/gin"
)

const userIDKey = "user_id"

// RequireAuth validates the Bearer access token and stores the user id on
// the request context.
func RequireAuth(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			RespondError(
				c,
				http.StatusUnauthorized,
				"unauthorized",
				errors.New("missing bearer token"),
			)
			c.Abort()

			return
		}

		userID, err := svc.Authenticate(token)
		if err != nil {
			respondServiceError(c, err)
			c.Abort()

			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// currentUserID returns the authenticated user id set by RequireAuth.
func currentUserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}
