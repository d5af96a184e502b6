package store

import (
	"context"
	"errors"
	"time"
	"traveldesk/travel-api/internal/model"

	"gorm.io/gorm"
)

type TravelRequests struct {
	db *gorm.DB
}

func NewTravelRequests(db *gorm.DB) *TravelRequests {
	return &TravelRequests{db: db}
}

// OwnerOf resolves the owning user of a travel request. It satisfies
// auth.OwnerLookup for owner-guarded routes.
func (s *TravelRequests) OwnerOf(ctx context.Context, resourceID int) (int, bool, error) {
	var row struct{ UserID int }

	err := s.db.WithContext(ctx).
		Model(&model.TravelRequest{}).
		Select("user_id").
		Where("id = ?", resourceID).
		Take(&row).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	return row.UserID, true, nil
}

func (s *TravelRequests) FindByID(ctx context.Context, id int) (*model.TravelRequest, error) {
	var tr model.TravelRequest

	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&tr).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &tr, nil
}

func (s *TravelRequests) List(ctx context.Context, status *model.RequestStatus) ([]model.TravelRequest, error) {
	q := s.db.WithContext(ctx).Order("created_at desc")

	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var requests []model.TravelRequest
	if err := q.Find(&requests).Error; err != nil {
		return nil, err
	}

	return requests, nil
}

func (s *TravelRequests) ListByUser(ctx context.Context, userID int) ([]model.TravelRequest, error) {
	var requests []model.TravelRequest

	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&requests).
		Error
	if err != nil {
		return nil, err
	}

	return requests, nil
}

func (s *TravelRequests) Create(ctx context.Context, tr *model.TravelRequest) error {
	return s.db.WithContext(ctx).Create(tr).Error
}

func (s *TravelRequests) UpdateStatus(ctx context.Context, id int, status model.RequestStatus) (*model.TravelRequest, error) {
	tr, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tr == nil {
		return nil, nil
	}

	now := time.Now()
	tr.Status = status
	tr.UpdatedAt = &now

	if err := s.db.WithContext(ctx).Save(tr).Error; err != nil {
		return nil, err
	}

	return tr, nil
}

func (s *TravelRequests) Delete(ctx context.Context, id int) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&model.TravelRequest{}, id)
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}
