package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"
	"traveldesk/travel-api/internal/model"

	"go.uber.org/zap"
)

// resetTTL is how long an issued code stays consumable.
const resetTTL = time.Minute * 5

var (
	ErrUnknownEmail       = errors.New("no user with this email")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidCode        = errors.New("invalid verification code or email mismatch")
	ErrCodeUsed           = errors.New("verification code already used")
	ErrCodeExpired        = errors.New("verification code expired")
	ErrAccountUnavailable = errors.New("user not found or account disabled")
)

// IssuedCode is what RequestReset hands back to the caller.
type IssuedCode struct {
	Code      string    `json:"code"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ResetService owns the reset-code lifecycle: issue, consume, invalidate.
// It guarantees at most one active code per user at rest and exactly-once
// consumption of any given code.
type ResetService struct {
	Users  UserDirectory
	Codes  ResetCodeStore
	Hasher PasswordHasher
	Tx     TxRunner

	now func() time.Time
}

func NewResetService(users UserDirectory, codes ResetCodeStore, hasher PasswordHasher, tx TxRunner) *ResetService {
	return &ResetService{
		Users:  users,
		Codes:  codes,
		Hasher: hasher,
		Tx:     tx,
		now:    time.Now,
	}
}

// RequestReset issues a fresh 6-digit code for the user behind email.
// Every unused code the user still has is invalidated first, so only the
// newest code can ever be consumed. Callers decide how much of the
// ErrUnknownEmail outcome they surface to the outside world.
func (s *ResetService) RequestReset(ctx context.Context, email string) (*IssuedCode, error) {
	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user, %w", err)
	}

	if user == nil {
		return nil, ErrUnknownEmail
	}

	if !user.Active {
		return nil, ErrAccountDisabled
	}

	if err := s.Codes.InvalidateAllForUser(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to invalidate previous codes, %w", err)
	}

	// Best effort. A failed purge never blocks issuing a new code,
	// the cleanup worker will get to it on its next tick.
	if _, err := s.Codes.PurgeExpired(ctx); err != nil {
		zap.L().Warn("Failed to purge expired reset codes", zap.Error(err))
	}

	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reset code, %w", err)
	}

	now := s.now()
	rc := &model.PasswordResetCode{
		UserID:    user.ID,
		Code:      code,
		Email:     user.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(resetTTL),
	}

	if err := s.Codes.Create(ctx, rc); err != nil {
		return nil, fmt.Errorf("failed to persist reset code, %w", err)
	}

	return &IssuedCode{
		Code:      code,
		Email:     user.Email,
		ExpiresAt: rc.ExpiresAt,
	}, nil
}

// ConsumeReset redeems a code for a password change. The conditional
// MarkUsed is what decides the winner between concurrent consumers
// presenting the same code - the lookup before it is only a filter.
func (s *ResetService) ConsumeReset(ctx context.Context, code, email, newPassword string) error {
	rc, err := s.Codes.FindActive(ctx, code, email)
	if err != nil {
		return fmt.Errorf("failed to look up reset code, %w", err)
	}

	if rc == nil {
		return ErrInvalidCode
	}

	if rc.Used {
		return ErrCodeUsed
	}

	if rc.ExpiresAt.Before(s.now()) {
		return ErrCodeExpired
	}

	user, err := s.Users.FindByID(ctx, rc.UserID)
	if err != nil {
		return fmt.Errorf("failed to look up user, %w", err)
	}

	if user == nil || !user.Active {
		return ErrAccountUnavailable
	}

	hash, err := s.Hasher.GenerateFromPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password, %w", err)
	}

	// Marking the code used and changing the password commit together.
	// A failure anywhere rolls both back, so a burned code always means
	// the password actually changed.
	return s.Tx.InTx(ctx, func(users UserDirectory, codes ResetCodeStore) error {
		won, err := codes.MarkUsed(ctx, rc.ID)
		if err != nil {
			return fmt.Errorf("failed to mark reset code used, %w", err)
		}

		if !won {
			return ErrCodeUsed
		}

		if err := users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
			return fmt.Errorf("failed to update password, %w", err)
		}

		// Re-assert the single-active-code invariant in case a concurrent
		// RequestReset slipped a new code in while we were consuming.
		if err := codes.InvalidateAllForUser(ctx, user.ID); err != nil {
			return fmt.Errorf("failed to invalidate remaining codes, %w", err)
		}

		return nil
	})
}

// generateCode draws a uniformly distributed 6-digit code in
// [100000, 999999]. crypto/rand.Int is bias free over the span.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
