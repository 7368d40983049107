package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestTokenStore_DegradesWithoutRedis(t *testing.T) {
	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	store := NewTokenStore()
	err := store.Revoke(context.Background(), "jti-1", time.Minute)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if store.IsRevoked(context.Background(), "jti-1") {
		t.Fatalf("nothing can be revoked without redis")
	}
	if IsHealthy() {
		t.Fatalf("expected unhealthy without a client")
	}
}

func TestInit_EmptyAddress(t *testing.T) {
	if err := Init("", "", 0); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if GetClient() != nil {
		t.Fatalf("client must stay nil")
	}
}
