package handlers

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/session-gate/pkg/util"
)

// SecretChecker reports whether token verification has a secret to work with.
type SecretChecker interface {
	Configured() bool
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	verifier    SecretChecker
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, verifier SecretChecker) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, verifier: verifier}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports whether the service can authenticate anyone. Without a secret
// every session is rejected, so the instance should not take traffic.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	depStatus := fiber.Map{}

	if h.verifier == nil || !h.verifier.Configured() {
		depStatus["auth"] = "secret not configured"
		return apperrors.NewServiceUnavailable("one or more dependencies unavailable", depStatus)
	}
	depStatus["auth"] = "ok"

	return c.JSON(fiber.Map{
		"status":       "ready",
		"dependencies": depStatus,
	})
}
