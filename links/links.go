// Package links signs and verifies invitation acceptance links.
//
// A link carries a short HS256 token in its "signature" query parameter whose
// subject is the invitation id; holding a valid link is what lets someone
// accept the invitation.
package links

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	SignatureParam = "signature"
	audience       = "company-invitation"
)

var ErrInvalidSignature = errors.New("invalid signature")

type Signer struct {
	key     []byte
	ttl     time.Duration
	baseURL string
	now     func() time.Time
}

func NewSigner(key, baseURL string, ttl time.Duration) *Signer {
	return &Signer{key: []byte(key), ttl: ttl, baseURL: strings.TrimRight(baseURL, "/"), now: time.Now}
}

// Enabled is false when no key is configured; links are then unsigned.
func (s *Signer) Enabled() bool { return s != nil && len(s.key) > 0 }

func (s *Signer) Sign(invitationID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   invitationID,
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// AcceptURL 生成 /company-invitations/{id}?signature=...
func (s *Signer) AcceptURL(invitationID string) (string, error) {
	u := fmt.Sprintf("%s/company-invitations/%s", s.baseURL, url.PathEscape(invitationID))
	if !s.Enabled() {
		return u, nil
	}
	sig, err := s.Sign(invitationID)
	if err != nil {
		return "", err
	}
	return u + "?" + url.Values{SignatureParam: {sig}}.Encode(), nil
}

func (s *Signer) Verify(token, invitationID string) error {
	if token == "" {
		return ErrInvalidSignature
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if claims.Subject != invitationID {
		return ErrInvalidSignature
	}
	return nil
}
