package travel

import (
	"net/http"
	"traveldesk/travel-api/internal"
	"traveldesk/travel-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TravelFetchBulk(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var status *model.RequestStatus
	if raw, ok := c.GetQuery("status"); ok {
		s := model.RequestStatus(raw)
		if !s.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid status filter",
				"requestID": requestID,
			})
			return
		}

		status = &s
	}

	requests, err := d.Travel.List(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch travel requests", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, requests)
}
