package model

import "time"

type RequestStatus string

const (
	StatusPending  RequestStatus = "Pending"
	StatusApproved RequestStatus = "Approved"
	StatusRejected RequestStatus = "Rejected"
)

func (s RequestStatus) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

type TravelRequest struct {
	ID              int           `gorm:"primaryKey" json:"id"`
	UserID          int           `gorm:"index;not null" json:"user_id"`
	OriginCity      string        `gorm:"not null" json:"origin_city"`
	DestinationCity string        `gorm:"not null" json:"destination_city"`
	DepartureDate   time.Time     `json:"departure_date"`
	ReturnDate      time.Time     `json:"return_date"`
	Justification   string        `json:"justification"`
	Status          RequestStatus `gorm:"default:Pending" json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       *time.Time    `json:"updated_at,omitempty"`
}
