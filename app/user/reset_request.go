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

type resetRequestBody struct {
	Email string `json:"email"`
}

const resetRequestedMsg = "Verification code generated successfully"

// UserResetRequest issues a fresh reset code. An unknown email gets the
// same message as a known one so the endpoint can't be used to enumerate
// accounts.
//
// TODO: the generated code is still returned in the response body because
// no delivery channel (mail/SMS) exists yet; move it out-of-band once one
// does.
func UserResetRequest(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data resetRequestBody
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

	issued, err := d.Resets.RequestReset(c.Request.Context(), data.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownEmail):
			c.JSON(http.StatusOK, gin.H{
				"message": resetRequestedMsg,
			})
		case errors.Is(err, service.ErrAccountDisabled):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Account is disabled",
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to issue reset code", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    resetRequestedMsg,
		"code":       issued.Code,
		"email":      issued.Email,
		"expires_at": issued.ExpiresAt,
	})
}
