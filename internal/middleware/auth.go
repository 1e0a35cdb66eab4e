// Package middleware provides authentication, logging and rate-limiting
// middleware for the application.
package middleware

import (
	"context"

	"devconnect/internal/auth"
	"devconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

// TokenHeader is the literal request header carrying the raw bearer token.
// The legacy API never used the Authorization/Bearer scheme and clients still
// send the token bare.
const TokenHeader = "x-auth-token"

// AuthRequired enforces authentication for protected routes. It is a pure
// gate: on success it attaches the resolved user id to the request and
// forwards; it never fetches the user record itself.
func AuthRequired(issuer *auth.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Get(TokenHeader)
		if tokenString == "" {
			return models.RespondWithError(c,
				models.NewUnauthenticatedError("No token, authorization denied"))
		}

		userID, err := issuer.Verify(tokenString)
		if err != nil {
			return models.RespondWithError(c, err)
		}

		// Store user ID in locals and in the request context so the
		// context-aware logger picks it up in deep layers.
		c.Locals("userID", userID)
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID.Hex()))

		return c.Next()
	}
}
