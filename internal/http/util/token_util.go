package util

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrMissingSecret = errors.New("staff token secret is not configured")
)

const sigLen = 16

// TokenSigner issues and checks the compact HMAC bearer tokens used by staff.
// A token is subject.payload.signature, each part base64url without padding.
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenSigner returns a signer whose tokens expire after ttl.
func NewTokenSigner(secret []byte, ttl time.Duration) *TokenSigner {
	return &TokenSigner{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue mints a token for subject (the staff username).
func (s *TokenSigner) Issue(subject string) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, ErrMissingSecret
	}

	expiresAt := s.now().Add(s.ttl)
	payload := make([]byte, 16) // 8 bytes expiry + 8 random bytes
	binary.BigEndian.PutUint64(payload[:8], uint64(expiresAt.Unix()))
	if _, err := rand.Read(payload[8:]); err != nil {
		return "", time.Time{}, err
	}

	subj := []byte(subject)
	sig := s.sign(subj, payload)
	token := strings.Join([]string{
		base64.RawURLEncoding.EncodeToString(subj),
		base64.RawURLEncoding.EncodeToString(payload),
		base64.RawURLEncoding.EncodeToString(sig[:sigLen]),
	}, ".")
	return token, expiresAt, nil
}

// Validate checks signature and expiry and returns the token's subject.
func (s *TokenSigner) Validate(token string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrMissingSecret
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", ErrInvalidToken
	}

	subj, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil || len(subj) == 0 {
		return "", ErrInvalidToken
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil || len(payload) < 8 {
		return "", ErrInvalidToken
	}
	sigProvided, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil || len(sigProvided) != sigLen {
		return "", ErrInvalidToken
	}

	expected := s.sign(subj, payload)
	if !hmac.Equal(sigProvided, expected[:sigLen]) {
		return "", ErrInvalidToken
	}

	expires := int64(binary.BigEndian.Uint64(payload[:8]))
	if s.now().Unix() > expires {
		return "", ErrInvalidToken
	}

	return string(subj), nil
}

func (s *TokenSigner) sign(subject, payload []byte) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(subject)
	mac.Write([]byte("|"))
	mac.Write(payload)
	return mac.Sum(nil)
}
