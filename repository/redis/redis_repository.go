package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Repository defines Redis-backed state: auth sessions, one-time codes with
// resend cooldowns, and the IP blacklist cache.
type Repository interface {
	SetSession(ctx context.Context, sessionID string, userID uint64, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (uint64, error)
	DeleteSession(ctx context.Context, sessionID string) error

	SetOTP(ctx context.Context, intent, phone, code string, ttl time.Duration) error
	GetOTP(ctx context.Context, intent, phone string) (string, error)
	DeleteOTP(ctx context.Context, intent, phone string) error

	// SetCooldown arms the resend cooldown for a phone+intent pair.
	SetCooldown(ctx context.Context, intent, phone string, ttl time.Duration) error
	// CooldownTTL returns the remaining cooldown, zero when none is armed.
	CooldownTTL(ctx context.Context, intent, phone string) (time.Duration, error)

	SetBlacklistedIPs(ctx context.Context, ips []string, ttl time.Duration) error
	GetBlacklistedIPs(ctx context.Context) ([]string, bool, error)
}

type repo struct {
	client *goredis.Client
}

// NewRepository returns a Redis Repository bound to the given client. A nil
// client degrades every operation to a no-op, matching a disabled cache.
func NewRepository(client *goredis.Client) Repository {
	return &repo{client: client}
}

const (
	sessionPrefix   = "session:"
	otpPrefix       = "otp:"
	cooldownPrefix  = "otp_cooldown:"
	blacklistSetKey = "ip_blacklist"
)

func (r *repo) SetSession(ctx context.Context, sessionID string, userID uint64, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	return r.client.Set(ctx, sessionPrefix+sessionID, userID, ttl).Err()
}

func (r *repo) GetSession(ctx context.Context, sessionID string) (uint64, error) {
	if r.client == nil {
		return 0, nil
	}
	return r.client.Get(ctx, sessionPrefix+sessionID).Uint64()
}

func (r *repo) DeleteSession(ctx context.Context, sessionID string) error {
	if r.client == nil {
		return nil
	}
	return r.client.Del(ctx, sessionPrefix+sessionID).Err()
}

func (r *repo) SetOTP(ctx context.Context, intent, phone, code string, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	return r.client.Set(ctx, otpKey(intent, phone), code, ttl).Err()
}

func (r *repo) GetOTP(ctx context.Context, intent, phone string) (string, error) {
	if r.client == nil {
		return "", nil
	}
	val, err := r.client.Get(ctx, otpKey(intent, phone)).Result()
	if err == goredis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *repo) DeleteOTP(ctx context.Context, intent, phone string) error {
	if r.client == nil {
		return nil
	}
	return r.client.Del(ctx, otpKey(intent, phone)).Err()
}

func (r *repo) SetCooldown(ctx context.Context, intent, phone string, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	return r.client.Set(ctx, cooldownKey(intent, phone), 1, ttl).Err()
}

func (r *repo) CooldownTTL(ctx context.Context, intent, phone string) (time.Duration, error) {
	if r.client == nil {
		return 0, nil
	}
	ttl, err := r.client.TTL(ctx, cooldownKey(intent, phone)).Result()
	if err != nil {
		return 0, err
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

func (r *repo) SetBlacklistedIPs(ctx context.Context, ips []string, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, blacklistSetKey)
	if len(ips) > 0 {
		members := make([]interface{}, len(ips))
		for i, ip := range ips {
			members[i] = ip
		}
		pipe.SAdd(ctx, blacklistSetKey, members...)
	} else {
		// Keep an empty marker so a cached empty list is distinguishable
		// from a cache miss.
		pipe.SAdd(ctx, blacklistSetKey, "")
	}
	pipe.Expire(ctx, blacklistSetKey, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *repo) GetBlacklistedIPs(ctx context.Context) ([]string, bool, error) {
	if r.client == nil {
		return nil, false, nil
	}

	members, err := r.client.SMembers(ctx, blacklistSetKey).Result()
	if err != nil {
		return nil, false, err
	}
	if len(members) == 0 {
		return nil, false, nil
	}

	ips := make([]string, 0, len(members))
	for _, m := range members {
		if m != "" {
			ips = append(ips, m)
		}
	}
	return ips, true, nil
}

func otpKey(intent, phone string) string {
	return otpPrefix + intent + ":" + phone
}

func cooldownKey(intent, phone string) string {
	return cooldownPrefix + intent + ":" + phone
}
