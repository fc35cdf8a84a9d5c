package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Diarra45/projet-Nan/internal/domain"
)

func testManager() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestIssuePairRoundTrip(t *testing.T) {
	m := testManager()
	pair, err := m.IssuePair(42, "alice@example.com", "alice", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatalf("access and refresh tokens must differ")
	}

	claims, err := m.VerifyAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "alice@example.com" || claims.Username != "alice" || claims.Role != domain.RoleUser {
		t.Fatalf("claims = %+v", claims)
	}

	claims, err = m.VerifyRefresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("verify refresh: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("refresh claims id = %d", claims.UserID)
	}
}

func TestTokenClassesAreNotInterchangeable(t *testing.T) {
	m := testManager()
	pair, err := m.IssuePair(1, "a@b.c", "a", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := m.VerifyRefresh(pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("access token accepted as refresh: %v", err)
	}
	if _, err := m.VerifyAccess(pair.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh token accepted as access: %v", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	m := NewTokenManager("s1", "s2", -time.Minute, 7*24*time.Hour)
	// Constructor clamps non-positive TTLs, so sign directly.
	token, err := m.sign(1, "a@b.c", "a", domain.RoleUser, m.accessSecret, -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := m.VerifyAccess(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token accepted: %v", err)
	}
}

func TestVerifyRejectsTampered(t *testing.T) {
	m := testManager()
	pair, err := m.IssuePair(1, "a@b.c", "a", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	parts := strings.Split(pair.AccessToken, ".")
	if len(parts) != 3 {
		t.Fatalf("not a JWS: %q", pair.AccessToken)
	}
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))
	if _, err := m.VerifyAccess(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("tampered token accepted: %v", err)
	}
	if _, err := m.VerifyAccess("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage accepted: %v", err)
	}
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	other := NewTokenManager("other-access", "other-refresh", time.Minute, time.Hour)
	pair, err := other.IssuePair(1, "a@b.c", "a", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	m := testManager()
	if _, err := m.VerifyAccess(pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("foreign-secret token accepted: %v", err)
	}
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	m := testManager()
	token, err := m.sign(1, "a@b.c", "a", domain.Role("superuser"), m.accessSecret, time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := m.VerifyAccess(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("unknown role accepted: %v", err)
	}
}
