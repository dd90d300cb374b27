package identity

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// embedClaims is the payload of an embed token. The subject claim carries
// the identity; UID is accepted for older embedders.
type embedClaims struct {
	UID string `json:"uid,omitempty"`
	jwtlib.RegisteredClaims
}

// ParseEmbedToken validates a signed embed token and returns the identity
// it carries.
func ParseEmbedToken(tokenStr, secret string) (string, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &embedClaims{}, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*embedClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	if claims.Subject != "" {
		return claims.Subject, nil
	}
	if claims.UID != "" {
		return claims.UID, nil
	}
	return "", fmt.Errorf("token carries no identity")
}

// SignEmbedToken creates a signed embed token for the given identity.
// Used by embedding environments and tests.
func SignEmbedToken(id, secret string, ttl time.Duration) (string, error) {
	claims := embedClaims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   id,
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
