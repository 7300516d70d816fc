package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-123", "alice", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	id, err := ExtractIDFromToken(token)
	if err != nil {
		t.Fatalf("ExtractIDFromToken failed: %v", err)
	}
	if id != "user-123" {
		t.Errorf("Expected subject user-123, got %q", id)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-123", "alice", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := ExtractIDFromToken(token); err == nil {
		t.Fatal("Expected an expired token to be rejected")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	for _, token := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		if _, err := ExtractIDFromToken(token); err == nil {
			t.Errorf("Expected rejection for %q", token)
		}
	}
}
