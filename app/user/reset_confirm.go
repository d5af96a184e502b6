package user

import (
	"errors"
	"net/http"
	"traveldesk/travel-api/internal"
	"traveldesk/travel-api/internal/service"
	"traveldesk/travel-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type resetConfirmBody struct {
	Code        string `json:"code"`
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

func UserResetConfirm(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data resetConfirmBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	if err := validators.PasswordValidator(data.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	err := d.Resets.ConsumeReset(c.Request.Context(), data.Code, data.Email, data.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCode):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid verification code or email mismatch",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrCodeUsed):
			c.JSON(http.StatusConflict, gin.H{
				"error":     "Verification code has already been used",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrCodeExpired):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Verification code has expired",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrAccountUnavailable):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "User not found or account disabled",
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to consume reset code", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password has been reset successfully",
	})
}
