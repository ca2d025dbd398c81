package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/session-gate/internal/observability"
)

// Outcome labels recorded for every request that passes the Gate.
const (
	OutcomeAuthenticated = "authenticated"
	OutcomeAbsent        = "absent"
)

// OutcomeRecorder receives one outcome per request, either an Outcome constant
// or the ErrorKind of a failed verification.
type OutcomeRecorder interface {
	RecordAuthOutcome(outcome string)
}

// Gate authenticates requests on a best-effort basis. It never rejects: the
// decision is recorded for later stages and the pipeline always continues.
type Gate struct {
	verifier   TokenVerifier
	cookieName string
	logger     *zap.Logger
	recorder   OutcomeRecorder
}

// NewGate constructs the middleware. logger and recorder may be nil.
func NewGate(verifier TokenVerifier, cookieName string, logger *zap.Logger, recorder OutcomeRecorder) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{verifier: verifier, cookieName: cookieName, logger: logger, recorder: recorder}
}

// Handle records the authentication decision for c and continues.
func (g *Gate) Handle(c *fiber.Ctx) error {
	attach(c, g.Resolve(c))
	return c.Next()
}

// Resolve computes the decision for c without touching the request.
func (g *Gate) Resolve(c *fiber.Ctx) *Context {
	raw, ok := CredentialFromRequest(c, g.cookieName)
	if !ok {
		g.record(OutcomeAbsent)
		return unauthenticated()
	}

	claims, err := g.verifier.Verify(raw)
	if err != nil {
		kind, ok := KindOf(err)
		if !ok {
			kind = KindMalformed
		}
		g.logger.Warn("session token rejected",
			zap.String("reason", string(kind)),
			zap.String("path", c.Path()),
			zap.String("request_id", observability.RequestID(c)),
			zap.Error(err),
		)
		g.record(string(kind))
		return unauthenticated()
	}

	subjectID := claims.SubjectID()
	if subjectID == "" {
		g.record(string(KindMalformed))
		return unauthenticated()
	}

	g.record(OutcomeAuthenticated)
	return authenticatedAs(subjectID)
}

func (g *Gate) record(outcome string) {
	if g.recorder != nil {
		g.recorder.RecordAuthOutcome(outcome)
	}
}
