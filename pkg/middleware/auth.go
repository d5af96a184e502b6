package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"traveldesk/travel-api/internal/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const claimsKey = "claims"

// Authenticate extracts and validates the bearer token. On success the
// resulting claims become the request identity for everything downstream.
func Authenticate(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Authentication required",
				"requestID": requestID,
			})
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Authentication required",
				"requestID": requestID,
			})
			return
		}

		claims, err := tokens.Validate(strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Invalid or expired token",
				"requestID": requestID,
			})

			zap.L().Warn("Rejected invalid token", zap.String("requestID", requestID))
			return
		}

		c.Set(claimsKey, claims)
		c.Set("userID", claims.UserID)
		c.Next()
	}
}

// ClaimsFrom returns the identity Authenticate stored on the context.
func ClaimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}

	claims, _ := v.(*auth.Claims)
	return claims
}

// Require gates a route with a policy that needs no resource target.
func Require(p auth.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		decide(c, p, auth.Target{})
	}
}

// RequireOwnerParam gates a route whose target user id sits directly in
// the named route parameter.
func RequireOwnerParam(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param(param))
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid user ID",
				"requestID": c.MustGet("requestID").(string),
			})
			return
		}

		decide(c, auth.ResourceOwner, auth.Target{UserID: id})
	}
}

// RequireResourceOwner gates a route addressing a resource by its own id.
// The owning user is resolved through the lookup before the decision.
func RequireResourceOwner(owners auth.OwnerLookup, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param(param))
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid resource ID",
				"requestID": c.MustGet("requestID").(string),
			})
			return
		}

		decide(c, auth.ResourceOwner, auth.Target{ResourceID: id, Owners: owners})
	}
}

func decide(c *gin.Context, p auth.Policy, t auth.Target) {
	requestID := c.MustGet("requestID").(string)

	err := auth.Authorize(c.Request.Context(), ClaimsFrom(c), p, t)
	if err == nil {
		c.Next()
		return
	}

	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":     "Authentication required",
			"requestID": requestID,
		})
	case errors.Is(err, auth.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     "Access denied",
			"requestID": requestID,
		})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Authorization check failed", zap.Error(err), zap.String("requestID", requestID))
	}
}
