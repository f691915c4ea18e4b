// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/David01mc/CarnavalWEB-sub000/auth"
	"github.com/David01mc/CarnavalWEB-sub000/cliparse"
	"github.com/David01mc/CarnavalWEB-sub000/models"
)

func TestIssueToken_RoundTrip(t *testing.T) {
	now := time.Date(2026, 2, 14, 20, 0, 0, 0, time.UTC)
	cfg := cliparse.Config{TokenSecret: "s1", TokenTTL: time.Hour, IssueToken: "root:admin"}

	var out bytes.Buffer
	require.NoError(t, issueToken(&out, cfg, now))

	token := strings.TrimSpace(out.String())
	id, err := auth.ParseToken(token, "s1", now.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, models.Identity{UserID: "root", Role: models.RoleAdmin}, id)

	// Expires with the configured lifetime
	_, err = auth.ParseToken(token, "s1", now.Add(2*time.Hour))
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestIssueToken_DefaultsToUser(t *testing.T) {
	now := time.Now()
	cfg := cliparse.Config{TokenSecret: "s1", TokenTTL: time.Hour, IssueToken: "ana"}

	var out bytes.Buffer
	require.NoError(t, issueToken(&out, cfg, now))

	id, err := auth.ParseToken(strings.TrimSpace(out.String()), "s1", now)
	require.NoError(t, err)
	assert.False(t, id.IsAdmin())
	assert.Equal(t, "ana", id.UserID)
}

func TestIssueToken_RejectsUnknownRole(t *testing.T) {
	cfg := cliparse.Config{TokenSecret: "s1", TokenTTL: time.Hour, IssueToken: "ana:owner"}

	var out bytes.Buffer
	assert.Error(t, issueToken(&out, cfg, time.Now()))
	assert.Zero(t, out.Len())
}
