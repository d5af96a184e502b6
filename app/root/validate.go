package root

import (
	"net/http"
	"traveldesk/travel-api/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// Validate lets clients check whether their token is still good. The
// auth middleware has already done the work by the time this runs.
func Validate(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	c.JSON(http.StatusOK, gin.H{
		"userID": claims.UserID,
		"email":  claims.Email,
		"role":   claims.Role,
	})
}
