package service

import (
	"context"
	"traveldesk/travel-api/internal/model"
)

// UserDirectory is the narrow slice of the user store the reset
// lifecycle needs. Lookups return (nil, nil) when no row matches.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	UpdatePasswordHash(ctx context.Context, id int, hash string) error
}

// ResetCodeStore persists reset codes. MarkUsed must be a conditional
// update: it flips used only if it was false and reports whether this
// caller won. Concurrent consumers of the same code are arbitrated by
// that result, never by a preceding read.
type ResetCodeStore interface {
	Create(ctx context.Context, rc *model.PasswordResetCode) error
	FindActive(ctx context.Context, code, email string) (*model.PasswordResetCode, error)
	InvalidateAllForUser(ctx context.Context, userID int) error
	MarkUsed(ctx context.Context, id int) (won bool, err error)
	PurgeExpired(ctx context.Context) (removed int64, err error)
}

// PasswordHasher produces the one-way hash stored for a credential.
type PasswordHasher interface {
	GenerateFromPassword(p string) (string, error)
}

// TxRunner executes fn atomically. Everything fn does through the stores
// it receives commits or rolls back as one unit.
type TxRunner interface {
	InTx(ctx context.Context, fn func(users UserDirectory, codes ResetCodeStore) error) error
}
