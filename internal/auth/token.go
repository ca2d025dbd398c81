package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// maxTokenLength bounds the work spent on a single cookie value.
const maxTokenLength = 8 << 10

// Claims describes the session token payload. UserID is the field the login
// flow writes; the registered "sub" claim is accepted as a fallback.
type Claims struct {
	UserID string `json:"userId,omitempty"`
	jwt.RegisteredClaims
}

// SubjectID returns the identity the token was issued for.
func (c *Claims) SubjectID() string {
	if c == nil {
		return ""
	}
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

// TokenVerifier checks a raw token and decodes its claims.
type TokenVerifier interface {
	Verify(rawToken string) (*Claims, error)
}

// VerifierOption customises a Verifier.
type VerifierOption func(*Verifier)

// WithClock overrides the trusted clock used for expiry checks.
func WithClock(now func() time.Time) VerifierOption {
	return func(v *Verifier) {
		if now != nil {
			v.now = now
		}
	}
}

// WithLeeway tolerates clock drift between issuer and verifier.
func WithLeeway(d time.Duration) VerifierOption {
	return func(v *Verifier) {
		if d > 0 {
			v.leeway = d
		}
	}
}

// Verifier validates HS256 session tokens against the server secret.
// It holds no mutable state and is safe for concurrent use.
type Verifier struct {
	secret []byte
	now    func() time.Time
	leeway time.Duration
}

// NewVerifier builds a verifier bound to secret. An empty secret is accepted
// here; every Verify call then fails with KindConfigurationMissing.
func NewVerifier(secret string, opts ...VerifierOption) *Verifier {
	v := &Verifier{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Configured reports whether the verifier has a secret to check against.
func (v *Verifier) Configured() bool {
	return len(v.secret) > 0
}

// Verify validates the signature and expiry of rawToken and returns its claims.
// Every failure is a *VerificationError.
func (v *Verifier) Verify(rawToken string) (*Claims, error) {
	if !v.Configured() {
		return nil, newVerificationError(KindConfigurationMissing, nil)
	}
	if rawToken == "" {
		return nil, newVerificationError(KindMalformed, errors.New("empty token"))
	}
	if len(rawToken) > maxTokenLength {
		return nil, newVerificationError(KindMalformed, fmt.Errorf("token exceeds %d bytes", maxTokenLength))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
		jwt.WithLeeway(v.leeway),
	)
	if err != nil {
		return nil, classify(err)
	}
	if !parsed.Valid {
		return nil, newVerificationError(KindMalformed, errors.New("token not valid"))
	}
	if claims.SubjectID() == "" {
		return nil, newVerificationError(KindMalformed, errors.New("missing subject claim"))
	}
	return claims, nil
}

// classify maps jwt parser errors onto the verification taxonomy. The parser
// checks the signature before any time-based claim.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return newVerificationError(KindMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return newVerificationError(KindSignatureMismatch, err)
	case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenNotValidYet):
		return newVerificationError(KindExpired, err)
	default:
		return newVerificationError(KindMalformed, err)
	}
}

// Signer mints tokens in the schema Verifier expects. Login lives outside this
// service; the signer keeps both sides of the claim contract in one place.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

// NewSigner builds a signer. A non-positive ttl defaults to one hour.
func NewSigner(secret string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Signer{secret: []byte(secret), ttl: ttl}
}

// GenerateToken signs a token for userID valid from now.
func (s *Signer) GenerateToken(userID string) (string, time.Time, error) {
	return s.GenerateTokenAt(userID, time.Now())
}

// GenerateTokenAt signs a token for userID issued at issuedAt.
func (s *Signer) GenerateTokenAt(userID string, issuedAt time.Time) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, ErrConfigurationMissing
	}
	if userID == "" {
		return "", time.Time{}, errors.New("user id required")
	}

	expiresAt := issuedAt.Add(s.ttl)
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}
