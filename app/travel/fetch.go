package travel

import (
	"net/http"
	"strconv"
	"traveldesk/travel-api/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TravelFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid travel request ID",
			"requestID": requestID,
		})
		return
	}

	tr, err := d.Travel.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch travel request", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if tr == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Travel request not found",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, tr)
}
