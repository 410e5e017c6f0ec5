package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestRepo(t *testing.T) (*miniredis.Miniredis, Repository) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, NewRepository(client)
}

func TestSessionRoundTrip(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SetSession(ctx, "jti-1", 42, time.Hour); err != nil {
		t.Fatalf("SetSession: %v", err)
	}

	userID, err := repo.GetSession(ctx, "jti-1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if userID != 42 {
		t.Fatalf("GetSession = %d, want 42", userID)
	}

	if err := repo.DeleteSession(ctx, "jti-1"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := repo.GetSession(ctx, "jti-1"); err == nil {
		t.Fatal("expected error for deleted session")
	}
}

func TestOTPLifecycle(t *testing.T) {
	mr, repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SetOTP(ctx, "register", "+380501234567", "123456", 5*time.Minute); err != nil {
		t.Fatalf("SetOTP: %v", err)
	}

	code, err := repo.GetOTP(ctx, "register", "+380501234567")
	if err != nil {
		t.Fatalf("GetOTP: %v", err)
	}
	if code != "123456" {
		t.Fatalf("GetOTP = %q, want 123456", code)
	}

	// Intents namespace independently.
	code, err = repo.GetOTP(ctx, "restore", "+380501234567")
	if err != nil {
		t.Fatalf("GetOTP restore: %v", err)
	}
	if code != "" {
		t.Fatalf("expected no restore code, got %q", code)
	}

	mr.FastForward(6 * time.Minute)
	code, err = repo.GetOTP(ctx, "register", "+380501234567")
	if err != nil {
		t.Fatalf("GetOTP after expiry: %v", err)
	}
	if code != "" {
		t.Fatalf("expected expired code gone, got %q", code)
	}
}

func TestCooldown(t *testing.T) {
	mr, repo := newTestRepo(t)
	ctx := context.Background()

	ttl, err := repo.CooldownTTL(ctx, "register", "+380501234567")
	if err != nil {
		t.Fatalf("CooldownTTL: %v", err)
	}
	if ttl != 0 {
		t.Fatalf("expected no cooldown, got %v", ttl)
	}

	if err := repo.SetCooldown(ctx, "register", "+380501234567", time.Minute); err != nil {
		t.Fatalf("SetCooldown: %v", err)
	}

	ttl, err = repo.CooldownTTL(ctx, "register", "+380501234567")
	if err != nil {
		t.Fatalf("CooldownTTL: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Fatalf("unexpected cooldown ttl %v", ttl)
	}

	mr.FastForward(2 * time.Minute)
	ttl, err = repo.CooldownTTL(ctx, "register", "+380501234567")
	if err != nil {
		t.Fatalf("CooldownTTL after expiry: %v", err)
	}
	if ttl != 0 {
		t.Fatalf("expected cooldown cleared, got %v", ttl)
	}
}

func TestBlacklistCache(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	_, ok, err := repo.GetBlacklistedIPs(ctx)
	if err != nil {
		t.Fatalf("GetBlacklistedIPs: %v", err)
	}
	if ok {
		t.Fatal("expected cache miss on empty store")
	}

	if err := repo.SetBlacklistedIPs(ctx, []string{"10.0.0.1", "10.0.0.2"}, time.Minute); err != nil {
		t.Fatalf("SetBlacklistedIPs: %v", err)
	}

	ips, ok, err := repo.GetBlacklistedIPs(ctx)
	if err != nil {
		t.Fatalf("GetBlacklistedIPs: %v", err)
	}
	if !ok || len(ips) != 2 {
		t.Fatalf("cache hit = %v, ips = %v", ok, ips)
	}

	// A cached empty list is a hit, not a miss.
	if err := repo.SetBlacklistedIPs(ctx, nil, time.Minute); err != nil {
		t.Fatalf("SetBlacklistedIPs empty: %v", err)
	}
	ips, ok, err = repo.GetBlacklistedIPs(ctx)
	if err != nil {
		t.Fatalf("GetBlacklistedIPs empty: %v", err)
	}
	if !ok || len(ips) != 0 {
		t.Fatalf("empty cache hit = %v, ips = %v", ok, ips)
	}
}
