package authentication

import (
	"Keyo/utils"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ParseProfileToken validates an HS256 bearer token and returns the profile in its subject.
func ParseProfileToken(tokenString string, signingKey string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return []byte(signingKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing token: %w", utils.ErrHttpUnauthorized)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("reading subject: %w", utils.ErrHttpUnauthorized)
	}

	profileId, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing subject: %w", utils.ErrHttpUnauthorized)
	}

	return profileId, nil
}

// IssueProfileToken signs a token the platform would hand to a profile.
func IssueProfileToken(profileId uuid.UUID, signingKey string, now time.Time, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   profileId.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	signed, err := token.SignedString([]byte(signingKey))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}
