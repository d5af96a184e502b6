package travel

import (
	"net/http"
	"strconv"
	"traveldesk/travel-api/internal"
	"traveldesk/travel-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type updateStatusBody struct {
	Status model.RequestStatus `json:"status"`
}

func TravelUpdateStatus(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid travel request ID",
			"requestID": requestID,
		})
		return
	}

	var data updateStatusBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !data.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid status provided",
			"requestID": requestID,
		})
		return
	}

	tr, err := d.Travel.UpdateStatus(c.Request.Context(), id, data.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update travel request status", zap.Error(err), zap.String("requestID", requestID))
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
