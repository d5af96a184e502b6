// Package store contains the gorm-backed implementations of the narrow
// persistence interfaces the services and the authorization gate consume.
package store

import (
	"context"
	"errors"
	"time"
	"traveldesk/travel-api/internal/model"

	"gorm.io/gorm"
)

type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (s *Users) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User

	err := s.db.WithContext(ctx).
		Where("email = ?", email).
		Take(&user).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *Users) FindByID(ctx context.Context, id int) (*model.User, error) {
	var user model.User

	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&user).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *Users) UpdatePasswordHash(ctx context.Context, id int, hash string) error {
	now := time.Now()

	return s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"password_hash": hash,
			"updated_at":    &now,
		}).
		Error
}

// List returns all users, optionally filtered down to a single role.
func (s *Users) List(ctx context.Context, role *model.Role) ([]model.User, error) {
	q := s.db.WithContext(ctx).Order("id")

	if role != nil {
		q = q.Where("role = ?", *role)
	}

	var users []model.User
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (s *Users) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var found bool

	err := s.db.WithContext(ctx).
		Model(&model.User{}).
		Select("count(*) > 0").
		Where("email = ?", email).
		Find(&found).
		Error

	return found, err
}

func (s *Users) Create(ctx context.Context, u *model.User) error {
	return s.db.WithContext(ctx).Create(u).Error
}

func (s *Users) Update(ctx context.Context, u *model.User) error {
	return s.db.WithContext(ctx).Save(u).Error
}

// Delete removes a user by id and reports whether a row actually went away.
func (s *Users) Delete(ctx context.Context, id int) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}
