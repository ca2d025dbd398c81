package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/session-gate/internal/auth"
)

// SessionResponse describes the caller's session as seen by the gate.
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"userId,omitempty"`
}

// MeResponse is returned to authenticated callers of GET /api/me.
type MeResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId"`
}

// SessionHandler exposes the authentication decision to clients.
type SessionHandler struct{}

// NewSessionHandler constructs handler.
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Current handles GET /api/session. Public; reports best-effort identity.
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	resp := SessionResponse{}
	if authCtx, ok := auth.FromLocals(c); ok {
		resp.UserID, resp.Authenticated = authCtx.SubjectID()
	}
	return c.JSON(resp)
}

// Me handles GET /api/me. Mounted behind auth.RequireAuth.
func (h *SessionHandler) Me(c *fiber.Ctx) error {
	authCtx, _ := auth.FromLocals(c)
	userID, ok := authCtx.SubjectID()
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, auth.RejectionStatus)
	}
	return c.JSON(MeResponse{Success: true, UserID: userID})
}
