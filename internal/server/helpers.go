package server

import (
	"time"

	"devconnect/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUserID reads the user id the auth middleware attached. Routes behind
// AuthRequired always have it; the zero id on a misconfigured route fails the
// downstream ownership checks rather than panicking.
func currentUserID(c *fiber.Ctx) primitive.ObjectID {
	if id, ok := c.Locals("userID").(primitive.ObjectID); ok {
		return id
	}
	return primitive.NilObjectID
}

// parseDate accepts the two wire formats clients send for from/to dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// badBody is the uniform response for an unparseable JSON body.
func badBody(c *fiber.Ctx) error {
	return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
}
