package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get: hit=%v err=%v", hit, err)
	}
	if string(data) != "v" {
		t.Errorf("data = %q", data)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "k"); hit {
		t.Error("hit after delete")
	}
}

func TestFileCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), -time.Second); err != nil {
		t.Fatal(err)
	}
	// Negative ttl stores without expiration.
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Error("entry without ttl should not expire")
	}

	if err := c.Set(ctx, "short", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Errorf("Set: %v", err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get: hit=%v err=%v", hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("hash not deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("different inputs collide")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	d1 := k.DiagramKey("abc", DiagramKeyOpts{Dialect: "datafusion", ConfigHash: "c1"})
	d2 := k.DiagramKey("abc", DiagramKeyOpts{Dialect: "datafusion", ConfigHash: "c2"})
	if d1 == d2 {
		t.Error("different config hashes should produce different keys")
	}
	if d1 != k.DiagramKey("abc", DiagramKeyOpts{Dialect: "datafusion", ConfigHash: "c1"}) {
		t.Error("DiagramKey not deterministic")
	}

	a1 := k.ArtifactKey("doc1", ArtifactKeyOpts{Format: "svg"})
	a2 := k.ArtifactKey("doc1", ArtifactKeyOpts{Format: "png"})
	if a1 == a2 {
		t.Error("different formats should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "tenant:42:")
	key := scoped.DiagramKey("abc", DiagramKeyOpts{})
	if key[:10] != "tenant:42:" {
		t.Errorf("key not prefixed: %s", key)
	}

	// Nil inner falls back to the default keyer.
	fallback := NewScopedKeyer(nil, "p:")
	if fallback.DiagramKey("abc", DiagramKeyOpts{}) != "p:"+NewDefaultKeyer().DiagramKey("abc", DiagramKeyOpts{}) {
		t.Error("nil inner should use the default keyer")
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
	err := Retryable(ErrCacheMiss)
	if !IsRetryable(err) {
		t.Error("wrapped error should be retryable")
	}
	if err.Error() != ErrCacheMiss.Error() {
		t.Errorf("message not preserved: %s", err.Error())
	}
	if IsRetryable(ErrCacheMiss) {
		t.Error("unwrapped error should not be retryable")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	calls := 0
	if err := RetryWithBackoff(ctx, func() error { calls++; return nil }); err != nil {
		t.Errorf("want success: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d", calls)
	}

	calls = 0
	err := RetryWithBackoff(ctx, func() error { calls++; return ErrCacheMiss })
	if err != ErrCacheMiss || calls != 1 {
		t.Errorf("non-retryable: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrCacheMiss)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retryable: err=%v calls=%d", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error { return Retryable(ErrCacheMiss) })
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
