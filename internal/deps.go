package internal

import (
	"traveldesk/travel-api/internal/auth"
	"traveldesk/travel-api/internal/service"
	"traveldesk/travel-api/internal/store"
	"traveldesk/travel-api/pkg/security"

	"gorm.io/gorm"
)

type Deps struct {
	DB     *gorm.DB
	Argon  *security.ArgonHash
	Tokens *auth.TokenService
	Users  *store.Users
	Travel *store.TravelRequests
	Resets *service.ResetService
}
