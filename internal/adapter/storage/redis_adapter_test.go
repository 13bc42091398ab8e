package storage

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/retail/internal/core/domain"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestSession_RoundTrip(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client, time.Minute)
	token := "test-session-roundtrip"
	defer client.Del(ctx, sessionKeyPrefix+token)

	want := domain.Session{UserID: 12, Name: "mona", Role: domain.RoleManager}
	if err := adapter.SaveSession(ctx, token, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := adapter.LoadSession(ctx, token)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got == nil || *got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}

	ttl := client.TTL(ctx, sessionKeyPrefix+token).Val()
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("expected ttl within a minute, got %v", ttl)
	}

	if err := adapter.DeleteSession(ctx, token); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	got, err = adapter.LoadSession(ctx, token)
	if err != nil || got != nil {
		t.Errorf("expected no session after delete, got %+v (err %v)", got, err)
	}
}

func TestLoadSession_Unknown(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	adapter := NewRedisAdapter(client, time.Minute)
	got, err := adapter.LoadSession(context.Background(), "no-such-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestSetIdempotency(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client, time.Minute)

	key := "test-idempotency-key"
	client.Del(ctx, key)
	defer client.Del(ctx, key)

	ok, err := adapter.SetIdempotency(ctx, key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected first set to succeed")
	}

	ok, err = adapter.SetIdempotency(ctx, key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected second set to fail")
	}
}

func TestReleaseIdempotency(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client, time.Minute)

	key := "test-release-key"
	client.Del(ctx, key)
	defer client.Del(ctx, key)

	if ok, err := adapter.SetIdempotency(ctx, key); err != nil || !ok {
		t.Fatalf("expected first set to succeed, got ok=%v err=%v", ok, err)
	}
	if err := adapter.ReleaseIdempotency(ctx, key); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok, err := adapter.SetIdempotency(ctx, key); err != nil || !ok {
		t.Errorf("expected set after release to succeed, got ok=%v err=%v", ok, err)
	}
}

func TestSetIdempotency_Concurrent(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client, time.Minute)

	key := "test-idempotency-concurrent"
	client.Del(ctx, key)
	defer client.Del(ctx, key)

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := adapter.SetIdempotency(ctx, key)
			if err == nil && ok {
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("expected exactly 1 success, got %d", successCount.Load())
	}
}
