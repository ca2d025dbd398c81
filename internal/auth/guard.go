package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// RejectionStatus is the status text sent to unauthenticated callers.
const RejectionStatus = "Authentication required"

// Rejection is the body returned by RequireAuth. It is identical for every
// failure cause.
type Rejection struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

// RequireAuth rejects requests the Gate did not authenticate. It must be
// mounted after Gate.Handle; a request without a recorded decision is rejected.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, ok := FromLocals(c)
		if !ok || !authCtx.IsAuthenticated() {
			return c.Status(http.StatusUnauthorized).JSON(Rejection{Success: false, Status: RejectionStatus})
		}
		return c.Next()
	}
}
