package travel

import (
	"net/http"
	"strconv"
	"time"
	"traveldesk/travel-api/internal"
	"traveldesk/travel-api/internal/model"
	"traveldesk/travel-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type createBody struct {
	OriginCity      string    `json:"origin_city"`
	DestinationCity string    `json:"destination_city"`
	DepartureDate   time.Time `json:"departure_date"`
	ReturnDate      time.Time `json:"return_date"`
	Justification   string    `json:"justification"`
}

func TravelCreate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	userID, err := strconv.Atoi(c.Param("userID"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid user ID",
			"requestID": requestID,
		})
		return
	}

	var data createBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	for _, err := range []error{
		validators.TravelCitiesValidator(data.OriginCity, data.DestinationCity),
		validators.TravelDatesValidator(data.DepartureDate, data.ReturnDate),
		validators.JustificationValidator(data.Justification),
	} {
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}
	}

	u, err := d.Users.FindByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "User not found",
			"requestID": requestID,
		})
		return
	}

	tr := &model.TravelRequest{
		UserID:          userID,
		OriginCity:      data.OriginCity,
		DestinationCity: data.DestinationCity,
		DepartureDate:   data.DepartureDate,
		ReturnDate:      data.ReturnDate,
		Justification:   data.Justification,
		Status:          model.StatusPending,
		CreatedAt:       time.Now(),
	}

	if err := d.Travel.Create(c.Request.Context(), tr); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create travel request", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, tr)
}
