// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/David01mc/CarnavalWEB-sub000/models"
)

var (
	ErrInvalidToken = errors.New("invalid token format")
	ErrBadSignature = errors.New("invalid token signature")
	ErrTokenExpired = errors.New("token expired")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

type claims struct {
	Subject string `json:"sub"`
	Role    string `json:"role"`
	Expires int64  `json:"exp"`
}

// IssueToken signs an identity token valid for ttl.
// Format: base64url(payload) "." base64url(HMAC-SHA256(secret, payload))
func IssueToken(id models.Identity, secret string, ttl time.Duration, now time.Time) (string, error) {
	if id.UserID == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}
	role := id.Role
	if role == "" {
		role = models.RoleUser
	}

	payload, err := json.Marshal(claims{
		Subject: id.UserID,
		Role:    role,
		Expires: now.Add(ttl).Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode claims: %w", err)
	}

	body := encode(payload)
	return body + "." + sign(body, secret), nil
}

// ParseIdentity reads "user" or "user:role". The role defaults to user and
// must be one of the known roles.
func ParseIdentity(s string) (models.Identity, error) {
	userID, role, _ := strings.Cut(strings.TrimSpace(s), ":")
	if userID == "" {
		return models.Identity{}, errors.New("user id is required")
	}
	switch role {
	case "":
		role = models.RoleUser
	case models.RoleUser, models.RoleAdmin:
	default:
		return models.Identity{}, fmt.Errorf("unknown role %q", role)
	}
	return models.Identity{UserID: userID, Role: role}, nil
}

// ParseToken validates the signature and expiry and returns the identity.
func ParseToken(token, secret string, now time.Time) (models.Identity, error) {
	body, sig, ok := strings.Cut(token, ".")
	if !ok || body == "" || sig == "" {
		return models.Identity{}, ErrInvalidToken
	}

	if !hmac.Equal([]byte(sig), []byte(sign(body, secret))) {
		return models.Identity{}, ErrBadSignature
	}

	payload, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return models.Identity{}, ErrInvalidToken
	}

	var c claims
	if err := json.Unmarshal(payload, &c); err != nil || c.Subject == "" {
		return models.Identity{}, ErrInvalidToken
	}
	if now.Unix() >= c.Expires {
		return models.Identity{}, ErrTokenExpired
	}

	return models.Identity{UserID: c.Subject, Role: c.Role}, nil
}

func sign(body, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(body))
	return encode(h.Sum(nil))
}

// URL-safe base64 without padding
func encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}
