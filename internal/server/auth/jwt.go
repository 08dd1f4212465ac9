// Package auth implements the session-token side of the Authenticator
// contract: minting HS256 JWTs at login and decoding them back into an
// account identity on each request.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/recordkeeper/recordkeeper/internal/common"
)

// Identity is what a valid session token decodes to.
type Identity struct {
	AccountID string
	Email     string
	Name      string
}

// Claims carries the registered claims plus the account identity.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
}

// GenerateToken mints a signed session token for the given identity. Each
// token carries a random jti so two logins in the same second still produce
// distinct tokens.
func GenerateToken(id Identity, secretKey []byte, validityDuration time.Duration) (string, error) {
	jti, err := common.MakeRandHexString(16)
	if err != nil {
		return "", fmt.Errorf("%w: generating token id: %v", common.ErrInternal, err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		AccountID: id.AccountID,
		Email:     id.Email,
		Name:      id.Name,
	})

	return token.SignedString(secretKey)
}

// IdentityFromToken verifies the token signature and expiry and returns the
// embedded identity. Expired tokens yield common.ErrTokenExpired, anything
// else malformed yields common.ErrInvalidToken.
func IdentityFromToken(tokenString string, secretKey []byte) (Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, common.ErrTokenExpired
		}
		return Identity{}, common.ErrInvalidToken
	}

	if !token.Valid || claims.AccountID == "" {
		return Identity{}, common.ErrInvalidToken
	}

	return Identity{AccountID: claims.AccountID, Email: claims.Email, Name: claims.Name}, nil
}
