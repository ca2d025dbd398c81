package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type contextKey struct{}

// Context is the per-request authentication decision. Only the Gate creates
// values; readers see an immutable snapshot.
type Context struct {
	authenticated bool
	subjectID     string
}

func unauthenticated() *Context {
	return &Context{}
}

func authenticatedAs(subjectID string) *Context {
	if subjectID == "" {
		return unauthenticated()
	}
	return &Context{authenticated: true, subjectID: subjectID}
}

// IsAuthenticated reports whether a verified token accompanied the request.
func (a *Context) IsAuthenticated() bool {
	return a != nil && a.authenticated
}

// SubjectID returns the verified identity, if any.
func (a *Context) SubjectID() (string, bool) {
	if !a.IsAuthenticated() {
		return "", false
	}
	return a.subjectID, true
}

// FromLocals retrieves the decision recorded by the Gate for this request.
// Calling it before the Gate has run is a programming error; ok is false then.
func FromLocals(c *fiber.Ctx) (*Context, bool) {
	authCtx, ok := c.Locals(contextKey{}).(*Context)
	return authCtx, ok && authCtx != nil
}

// FromContext is FromLocals for code that only holds c.UserContext().
func FromContext(ctx context.Context) (*Context, bool) {
	authCtx, ok := ctx.Value(contextKey{}).(*Context)
	return authCtx, ok && authCtx != nil
}

func attach(c *fiber.Ctx, authCtx *Context) {
	c.Locals(contextKey{}, authCtx)
	c.SetUserContext(context.WithValue(c.UserContext(), contextKey{}, authCtx))
}

// LogFields describes the decision for request logs.
func LogFields(c *fiber.Ctx) []zap.Field {
	authCtx, ok := FromLocals(c)
	if !ok {
		return nil
	}
	fields := []zap.Field{zap.Bool("authenticated", authCtx.IsAuthenticated())}
	if subjectID, ok := authCtx.SubjectID(); ok {
		fields = append(fields, zap.String("user_id", subjectID))
	}
	return fields
}
