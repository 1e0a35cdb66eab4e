// Package auth implements the token service: issuing and verifying the
// signed, time-limited bearer tokens that carry a user identity claim.
package auth

import (
	"fmt"
	"time"

	"devconnect/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Issuer signs and verifies identity tokens. The signing key is process-wide
// configuration loaded once at startup and treated as immutable.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an Issuer with the given signing secret and token lifetime.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token embedding the user id. There is no revocation
// list; tokens die only by expiry or by the client discarding them.
func (i *Issuer) Issue(userID primitive.ObjectID) (string, error) {
	if len(i.secret) == 0 {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.Hex(),          // Subject (user ID as hex string)
		"iss": "devconnect-api",      // Issuer
		"exp": now.Add(i.ttl).Unix(), // Expiration
		"iat": now.Unix(),            // Issued at
		"nbf": now.Unix(),            // Not before
		"jti": generateJTI(),         // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify parses and validates a token and returns the embedded user id.
// Signature mismatch, malformed structure and expiry all collapse into the
// same TOKEN_INVALID error.
func (i *Issuer) Verify(tokenString string) (primitive.ObjectID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return primitive.NilObjectID, models.NewTokenInvalidError("Token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return primitive.NilObjectID, models.NewTokenInvalidError("Token is not valid")
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return primitive.NilObjectID, models.NewTokenInvalidError("Token is not valid")
	}

	userID, err := primitive.ObjectIDFromHex(subStr)
	if err != nil {
		return primitive.NilObjectID, models.NewTokenInvalidError("Token is not valid")
	}

	return userID, nil
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
