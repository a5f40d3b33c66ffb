package authn

import (
	"errors"

	"github.com/golang-jwt/jwt"
)

var ErrInvalidJWT = errors.New("invalid jwt token")
var ErrInvalidClaims = errors.New("invalid claims")

// Claims are the JWT claims carried by access tokens issued by this service.
// The jwt Id is the session uuid backing the token; revoking the session
// invalidates the token before its expiry.
type Claims struct {
	jwt.StandardClaims
	Username string   `json:"preferred_username"`
	UserUUID string   `json:"user_uuid"`
	ACL      []string `json:"acl"`
}

// SignToken produces a signed HS256 token for the given claims.
func SignToken(claims Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseClaims verifies the token signature and expiry and returns its claims.
func ParseClaims(token string, secret []byte) (Claims, error) {
	claims := Claims{}
	t, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidJWT
		}
		return secret, nil
	})
	if err != nil {
		return claims, ErrInvalidJWT
	}
	if t == nil || !t.Valid {
		return claims, ErrInvalidClaims
	}
	return claims, nil
}
