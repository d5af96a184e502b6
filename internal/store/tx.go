package store

import (
	"context"
	"traveldesk/travel-api/internal/service"

	"gorm.io/gorm"
)

// Tx runs multi-store operations inside a single database transaction.
type Tx struct {
	db *gorm.DB
}

func NewTx(db *gorm.DB) *Tx {
	return &Tx{db: db}
}

func (t *Tx) InTx(ctx context.Context, fn func(users service.UserDirectory, codes service.ResetCodeStore) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewUsers(tx), NewResetCodes(tx))
	})
}
