package travel

import (
	"net/http"
	"strconv"
	"traveldesk/travel-api/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TravelDelete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid travel request ID",
			"requestID": requestID,
		})
		return
	}

	removed, err := d.Travel.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete travel request", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !removed {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Travel request not found",
			"requestID": requestID,
		})
		return
	}

	c.Status(http.StatusNoContent)
}
