// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/David01mc/CarnavalWEB-sub000/models"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int // hex encoded length = byteLen * 2
	}{
		{"8 bytes", 8, 16},
		{"16 bytes", 16, 32},
		{"24 bytes", 24, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateID() error = %v", err)
			}
			if len(id) != tt.wantLen {
				t.Errorf("GenerateID() length = %d, want %d", len(id), tt.wantLen)
			}
			// Verify it's valid hex
			for _, c := range id {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("GenerateID() contains invalid hex char: %c", c)
				}
			}
		})
	}

	// Test randomness - two IDs should be different
	id1, _ := GenerateID(16)
	id2, _ := GenerateID(16)
	if id1 == id2 {
		t.Error("GenerateID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestIssueAndParseToken(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	secret := "test-secret"

	tests := []struct {
		name     string
		identity models.Identity
		wantRole string
	}{
		{"user", models.Identity{UserID: "ana", Role: models.RoleUser}, models.RoleUser},
		{"admin", models.Identity{UserID: "root", Role: models.RoleAdmin}, models.RoleAdmin},
		{"role defaults to user", models.Identity{UserID: "bob"}, models.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := IssueToken(tt.identity, secret, time.Hour, now)
			if err != nil {
				t.Fatalf("IssueToken() error = %v", err)
			}
			if strings.Count(token, ".") != 1 {
				t.Errorf("IssueToken() = %q, want two segments", token)
			}
			if strings.ContainsAny(token, "+/=") {
				t.Errorf("IssueToken() = %q, want URL-safe unpadded base64", token)
			}

			id, err := ParseToken(token, secret, now.Add(59*time.Minute))
			if err != nil {
				t.Fatalf("ParseToken() error = %v", err)
			}
			if id.UserID != tt.identity.UserID {
				t.Errorf("ParseToken() user = %q, want %q", id.UserID, tt.identity.UserID)
			}
			if id.Role != tt.wantRole {
				t.Errorf("ParseToken() role = %q, want %q", id.Role, tt.wantRole)
			}
		})
	}
}

func TestIssueToken_EmptySubject(t *testing.T) {
	_, err := IssueToken(models.Identity{}, "s", time.Hour, time.Now())
	if err == nil {
		t.Error("IssueToken() with empty user id should fail")
	}
}

func TestParseToken_Rejects(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	token, err := IssueToken(models.Identity{UserID: "ana"}, "secret", time.Hour, now)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	body, sig, _ := strings.Cut(token, ".")

	// same signature over a payload claiming admin
	forged := encode([]byte(`{"sub":"ana","role":"admin","exp":9999999999}`)) + "." + sig

	tests := []struct {
		name   string
		token  string
		secret string
		at     time.Time
		want   error
	}{
		{"wrong secret", token, "other", now, ErrBadSignature},
		{"forged payload", forged, "secret", now, ErrBadSignature},
		{"truncated signature", body + "." + sig[:len(sig)-2], "secret", now, ErrBadSignature},
		{"expired", token, "secret", now.Add(time.Hour), ErrTokenExpired},
		{"no dot", body, "secret", now, ErrInvalidToken},
		{"empty", "", "secret", now, ErrInvalidToken},
		{"empty signature", body + ".", "secret", now, ErrInvalidToken},
		{"signed garbage", "bm90LWpzb24." + sign("bm90LWpzb24", "secret"), "secret", now, ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.token, tt.secret, tt.at)
			if err != tt.want {
				t.Errorf("ParseToken() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseIdentity(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    models.Identity
		wantErr bool
	}{
		{"bare user", "ana", models.Identity{UserID: "ana", Role: models.RoleUser}, false},
		{"explicit user", "ana:user", models.Identity{UserID: "ana", Role: models.RoleUser}, false},
		{"admin", "root:admin", models.Identity{UserID: "root", Role: models.RoleAdmin}, false},
		{"empty", "", models.Identity{}, true},
		{"missing user", ":admin", models.Identity{}, true},
		{"unknown role", "ana:owner", models.Identity{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIdentity(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseIdentity(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseIdentity(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

// Benchmark tests
func BenchmarkGenerateID(b *testing.B) {
	for i := 0; i < b.N; i++ {
		GenerateID(16)
	}
}

func BenchmarkParseToken(b *testing.B) {
	now := time.Now()
	token, _ := IssueToken(models.Identity{UserID: "ana"}, "secret", time.Hour, now)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ParseToken(token, "secret", now)
	}
}
