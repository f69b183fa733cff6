package response

import (
	"errors"
	"fmt"
	"net/http"

	"anoa.com/inkblog/pkg/apperror"
	"anoa.com/inkblog/pkg/ratelimiter"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	idStr, ok := userIDStr.(string)
	if !ok {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

// ParamUUID parses a uuid path parameter; the error maps to 400.
func ParamUUID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.Invalid(name, "invalid "+name)
	}
	return id, nil
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	var rateLimitErr *ratelimiter.RateLimitError
	if errors.As(err, &rateLimitErr) {
		c.Header("Retry-After", fmt.Sprintf("%.0f", rateLimitErr.RetryAfter.Seconds()))
		c.JSON(http.StatusTooManyRequests, gin.H{"error": rateLimitErr.Message})
		return
	}

	code := apperror.MapErrorToStatus(err)

	// Log internal errors, never leak them
	if code == http.StatusInternalServerError {
		log.WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Errorf("[response] internal error: %v", err)
		c.JSON(code, gin.H{"error": "server error"})
		return
	}

	var vErr *apperror.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(code, gin.H{"error": vErr.Error(), "fields": vErr.Fields})
		return
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
