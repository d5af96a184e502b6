package user

import (
	"net/http"
	"traveldesk/travel-api/internal"
	"traveldesk/travel-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func UserFetchByEmail(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	email := c.Param("email")
	if err := validators.EmailValidator(email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	u, err := d.Users.FindByEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user by email", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "User not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, u)
}
