package auth

import (
	"context"
	"errors"
	"fmt"
)

// Policy is attached to a route at registration time and evaluated by
// Authorize for every request hitting that route.
type Policy int

const (
	// AnyAuthenticated passes every valid identity.
	AnyAuthenticated Policy = iota

	// ApproverOnly passes identities carrying the approver role.
	ApproverOnly

	// ResourceOwner passes approvers unconditionally, and otherwise only
	// the user owning the targeted resource.
	ResourceOwner
)

var (
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden is deliberately uniform. It also covers "resource does
	// not exist" on owner-guarded routes so unauthorized callers can't
	// probe which ids are taken.
	ErrForbidden = errors.New("access denied")
)

// OwnerLookup resolves the owning user of a resource addressed by its
// own id rather than by a user id in the route.
type OwnerLookup interface {
	OwnerOf(ctx context.Context, resourceID int) (userID int, found bool, err error)
}

// Target identifies whose resource a ResourceOwner policy protects.
// Either UserID is set directly (route addresses a user-owned collection)
// or ResourceID plus Owners is set (route addresses the resource itself).
type Target struct {
	UserID     int
	ResourceID int
	Owners     OwnerLookup
}

// Authorize is the single decision point for route access. A nil error
// means the request may proceed; any non-nil error is terminal and the
// protected handler must not run.
func Authorize(ctx context.Context, claims *Claims, p Policy, t Target) error {
	if claims == nil {
		return ErrUnauthenticated
	}

	switch p {
	case AnyAuthenticated:
		return nil

	case ApproverOnly:
		if !claims.IsApprover() {
			return ErrForbidden
		}
		return nil

	case ResourceOwner:
		if claims.IsApprover() {
			return nil
		}

		owner := t.UserID
		if owner == 0 {
			if t.Owners == nil {
				return ErrForbidden
			}

			id, found, err := t.Owners.OwnerOf(ctx, t.ResourceID)
			if err != nil {
				return fmt.Errorf("failed to resolve resource owner, %w", err)
			}

			if !found {
				return ErrForbidden
			}

			owner = id
		}

		if owner != claims.UserID {
			return ErrForbidden
		}
		return nil
	}

	return ErrForbidden
}
