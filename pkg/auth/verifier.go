package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingExpiration rejects tokens that never expire.
var ErrMissingExpiration = errors.New("token has no expiration")

// Claims are the identity provider claims the API relies on.
type Claims struct {
	Subject string
	Email   string
}

// Verifier accepts HS256 tokens signed with a shared secret and RS256 tokens
// signed by a key in the JWKS.
type Verifier struct {
	secret []byte
	jwks   *Provider
}

func NewVerifier(secret string, jwks *Provider) *Verifier {
	return &Verifier{secret: []byte(secret), jwks: jwks}
}

func (v *Verifier) Verify(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, v.keyFunc,
		jwt.WithValidMethods([]string{"HS256", "RS256"}),
	)
	if err != nil {
		return Claims{}, err
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Claims{}, errors.New("invalid claims")
	}
	if exp, err := mc.GetExpirationTime(); err != nil || exp == nil {
		return Claims{}, ErrMissingExpiration
	}

	sub, _ := mc["sub"].(string)
	if sub == "" {
		return Claims{}, errors.New("token has no subject")
	}
	email, _ := mc["email"].(string)
	return Claims{Subject: sub, Email: email}, nil
}

func (v *Verifier) keyFunc(token *jwt.Token) (interface{}, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodHMAC:
		if len(v.secret) == 0 {
			return nil, errors.New("HS256 token received but JWT_SECRET is not configured")
		}
		return v.secret, nil
	case *jwt.SigningMethodRSA:
		if v.jwks == nil {
			return nil, errors.New("RS256 token received but JWKS_URL is not configured")
		}
		return v.jwks.KeyFunc(token)
	default:
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
}
