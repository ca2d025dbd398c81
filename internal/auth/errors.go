package auth

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a token failed verification.
// Values double as log field and metric label values.
type ErrorKind string

const (
	KindMalformed            ErrorKind = "malformed"
	KindSignatureMismatch    ErrorKind = "signature_mismatch"
	KindExpired              ErrorKind = "expired"
	KindConfigurationMissing ErrorKind = "configuration_missing"
)

// Sentinels matched by errors.Is against a *VerificationError of the same kind.
var (
	ErrTokenMalformed       = errors.New("token malformed")
	ErrSignatureMismatch    = errors.New("token signature mismatch")
	ErrTokenExpired         = errors.New("token expired")
	ErrConfigurationMissing = errors.New("verification secret not configured")
)

// VerificationError is returned by Verifier.Verify for every rejected token.
type VerificationError struct {
	Kind ErrorKind
	Err  error
}

func (e *VerificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.sentinel(), e.Err)
	}
	return e.sentinel().Error()
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}

// Is lets callers test the kind with errors.Is(err, ErrTokenExpired) and friends.
func (e *VerificationError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *VerificationError) sentinel() error {
	switch e.Kind {
	case KindSignatureMismatch:
		return ErrSignatureMismatch
	case KindExpired:
		return ErrTokenExpired
	case KindConfigurationMissing:
		return ErrConfigurationMissing
	default:
		return ErrTokenMalformed
	}
}

// KindOf reports the verification failure kind carried by err.
func KindOf(err error) (ErrorKind, bool) {
	var verr *VerificationError
	if errors.As(err, &verr) {
		return verr.Kind, true
	}
	return "", false
}

func newVerificationError(kind ErrorKind, err error) error {
	return &VerificationError{Kind: kind, Err: err}
}
