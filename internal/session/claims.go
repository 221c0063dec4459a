package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken reports a credential that cannot be decoded into a
// complete set of claims.
var ErrMalformedToken = errors.New("malformed token")

// Claims are the identity and expiry fields carried by a credential.
type Claims struct {
	SubjectID string
	FirstName string
	LastName  string
	ExpiresAt int64 // epoch seconds
}

// ValidAt reports whether the claims are unexpired at now. Expiry is
// compared in milliseconds and a token expiring exactly at now is expired.
func (c Claims) ValidAt(now time.Time) bool {
	return c.ExpiresAt*1000 > now.UnixMilli()
}

// Expiry returns the expiry instant.
func (c Claims) Expiry() time.Time {
	return time.Unix(c.ExpiresAt, 0)
}

// DisplayName joins first and last name, falling back to the subject.
func (c Claims) DisplayName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return c.SubjectID
	}
	return name
}

// Decoder turns a bearer credential into claims.
type Decoder interface {
	Decode(token string) (Claims, error)
}

// JWTDecoder reads the payload of a JWT without verifying its signature.
type JWTDecoder struct {
	parser *jwt.Parser
}

func NewJWTDecoder() *JWTDecoder {
	return &JWTDecoder{parser: jwt.NewParser()}
}

type tokenClaims struct {
	jwt.RegisteredClaims
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (d *JWTDecoder) Decode(token string) (Claims, error) {
	var tc tokenClaims
	if _, _, err := d.parser.ParseUnverified(strings.TrimSpace(token), &tc); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if tc.Subject == "" {
		return Claims{}, fmt.Errorf("%w: missing sub claim", ErrMalformedToken)
	}
	if tc.ExpiresAt == nil {
		return Claims{}, fmt.Errorf("%w: missing exp claim", ErrMalformedToken)
	}
	return Claims{
		SubjectID: tc.Subject,
		FirstName: tc.FirstName,
		LastName:  tc.LastName,
		ExpiresAt: tc.ExpiresAt.Unix(),
	}, nil
}
