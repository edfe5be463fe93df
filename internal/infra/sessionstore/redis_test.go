package sessionstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	domain "github.com/BruksfildServices01/pet-sitting-booking/internal/domain/booking"
)

func newTestRedis(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client, ttl), mr
}

func TestRedisCreateAndGet(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t, time.Minute)

	s := domain.NewSession("s-1", time.Now())
	s.Service = domain.ServiceGrooming
	if err := r.Create(ctx, s); err != nil {
		t.Fatal(err)
	}
	if err := r.Create(ctx, domain.NewSession("s-1", time.Now())); err == nil {
		t.Fatal("duplicate create succeeded")
	}

	got, err := r.Get(ctx, "s-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Version != 1 || got.Service != domain.ServiceGrooming {
		t.Fatalf("got version %d service %q", got.Version, got.Service)
	}
	if ttl := mr.TTL(key("s-1")); ttl != time.Minute {
		t.Fatalf("ttl = %v", ttl)
	}

	if _, err := r.Get(ctx, "missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestRedisSaveVersionConflict(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRedis(t, time.Minute)

	if err := r.Create(ctx, domain.NewSession("s-1", time.Now())); err != nil {
		t.Fatal(err)
	}

	a, _ := r.Get(ctx, "s-1")
	b, _ := r.Get(ctx, "s-1")

	a.Service = domain.ServiceGrooming
	if err := r.Save(ctx, a); err != nil {
		t.Fatal(err)
	}
	if a.Version != 2 {
		t.Fatalf("version = %d, want 2", a.Version)
	}

	b.Service = domain.ServiceTransport
	if err := r.Save(ctx, b); !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("err = %v, want ErrVersionConflict", err)
	}
	if b.Version != 1 {
		t.Fatalf("rejected save bumped version to %d", b.Version)
	}

	got, _ := r.Get(ctx, "s-1")
	if got.Service != domain.ServiceGrooming || got.Version != 2 {
		t.Fatalf("stored service %q version %d", got.Service, got.Version)
	}

	// a writer that reloads wins
	b, _ = r.Get(ctx, "s-1")
	b.Service = domain.ServiceTransport
	if err := r.Save(ctx, b); err != nil {
		t.Fatal(err)
	}
	if b.Version != 3 {
		t.Fatalf("version = %d, want 3", b.Version)
	}
}

func TestRedisSaveRefreshesTTL(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t, time.Minute)

	if err := r.Create(ctx, domain.NewSession("s-1", time.Now())); err != nil {
		t.Fatal(err)
	}

	mr.FastForward(40 * time.Second)
	s, err := r.Get(ctx, "s-1")
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Save(ctx, s); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL(key("s-1")); ttl != time.Minute {
		t.Fatalf("ttl after save = %v, want %v", ttl, time.Minute)
	}

	// past the original deadline, still inside the refreshed one
	mr.FastForward(40 * time.Second)
	if _, err := r.Get(ctx, "s-1"); err != nil {
		t.Fatalf("session expired despite save: %v", err)
	}

	mr.FastForward(30 * time.Second)
	if _, err := r.Get(ctx, "s-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
	if err := r.Save(ctx, s); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("save after expiry: err = %v, want ErrSessionNotFound", err)
	}
}

func TestRedisDelete(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t, time.Minute)

	if err := r.Create(ctx, domain.NewSession("s-1", time.Now())); err != nil {
		t.Fatal(err)
	}
	if err := r.Delete(ctx, "s-1"); err != nil {
		t.Fatal(err)
	}
	if mr.Exists(key("s-1")) {
		t.Fatal("key still present")
	}
	if err := r.Delete(ctx, "s-1"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}
