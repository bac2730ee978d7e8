package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IdentityClaims - то, что провайдер идентификации передает в callback
type IdentityClaims struct {
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	ProfileImageURL string `json:"profile_image_url"`
	EmailVerified   bool   `json:"email_verified"`
	jwt.RegisteredClaims
}

// IdentityVerifier проверяет токены внешнего провайдера
type IdentityVerifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewIdentityVerifier(secret, issuer string) *IdentityVerifier {
	return &IdentityVerifier{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
}

func (v *IdentityVerifier) Verify(tokenStr string) (*IdentityClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &IdentityClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIdentity, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: empty subject", ErrInvalidIdentity)
	}
	return claims, nil
}

// SignIdentity подписывает токен так же, как это делает провайдер.
// Используется в тестах и в dev-режиме consultctl.
func SignIdentity(secret string, claims IdentityClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
