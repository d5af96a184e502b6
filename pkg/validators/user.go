package validators

import (
	"errors"
	"traveldesk/travel-api/internal/model"
)

var (
	ErrNameEmpty   = errors.New("no name provided")
	ErrNameTooLong = errors.New("name can't exceed 100 characters")
	ErrRoleInvalid = errors.New("invalid role provided")
)

func NameValidator(n string) error {
	if n == "" {
		return ErrNameEmpty
	}

	if len(n) > 100 {
		return ErrNameTooLong
	}

	return nil
}

func RoleValidator(r model.Role) error {
	if !r.Valid() {
		return ErrRoleInvalid
	}

	return nil
}
