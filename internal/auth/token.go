// Package auth holds the token issuer/validator and the authorization
// gate that every protected route goes through.
package auth

import (
	"errors"
	"time"
	"traveldesk/travel-api/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// tokenTTL is fixed. Tokens always live exactly 24 hours, there is
// no per-token override.
const tokenTTL = time.Hour * 24

// ErrInvalidToken is the only error Validate ever returns. Bad signature,
// wrong issuer or audience, expired, not yet valid - callers get no detail
// about which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenService mints and verifies signed identity tokens. The signing
// material is read from config exactly once at construction and never
// re-read per call.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string

	now func() time.Time
}

func NewTokenService() *TokenService {
	return &TokenService{
		secret:   []byte(viper.GetString("jwt.secret")),
		issuer:   viper.GetString("jwt.issuer"),
		audience: viper.GetString("jwt.audience"),
		now:      time.Now,
	}
}

// Issue signs a token asserting the given user's identity. The returned
// time is the moment the token stops being valid.
func (s *TokenService) Issue(u *model.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(tokenTTL)

	claims := &Claims{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Validate verifies signature, issuer, audience and the time window with
// zero clock skew tolerance. Any failure yields ErrInvalidToken.
func (s *TokenService) Validate(raw string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(0),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		zap.L().Warn("Token validation failed", zap.Error(err))
		return nil, ErrInvalidToken
	}

	if !token.Valid || claims.UserID <= 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
