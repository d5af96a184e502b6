package validators

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrCityEmpty            = errors.New("origin and destination cities are required")
	ErrCityTooLong          = errors.New("city name can't exceed 100 characters")
	ErrCitiesEqual          = errors.New("origin city must differ from destination city")
	ErrReturnNotAfter       = errors.New("return date must be after the departure date")
	ErrJustificationEmpty   = errors.New("no justification provided")
	ErrJustificationTooLong = errors.New("justification can't exceed 500 characters")
)

func TravelDatesValidator(departure, ret time.Time) error {
	if !ret.After(departure) {
		return ErrReturnNotAfter
	}

	return nil
}

func TravelCitiesValidator(origin, destination string) error {
	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return ErrCityEmpty
	}

	if len(origin) > 100 || len(destination) > 100 {
		return ErrCityTooLong
	}

	if strings.EqualFold(strings.TrimSpace(origin), strings.TrimSpace(destination)) {
		return ErrCitiesEqual
	}

	return nil
}

func JustificationValidator(j string) error {
	if strings.TrimSpace(j) == "" {
		return ErrJustificationEmpty
	}

	if len(j) > 500 {
		return ErrJustificationTooLong
	}

	return nil
}
