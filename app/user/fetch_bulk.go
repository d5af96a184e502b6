package user

import (
	"net/http"
	"traveldesk/travel-api/internal"
	"traveldesk/travel-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func UserFetchBulk(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var role *model.Role
	if raw, ok := c.GetQuery("role"); ok {
		r := model.Role(raw)
		if !r.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid role filter",
				"requestID": requestID,
			})
			return
		}

		role = &r
	}

	users, err := d.Users.List(c.Request.Context(), role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, users)
}
