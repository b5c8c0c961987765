package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// idempotencyStore is the slice of the redis client the middleware
// needs. *redis.Client satisfies it.
type idempotencyStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Idempotency guards state-changing requests carrying an
// Idempotency-Key header. A key whose request succeeded is retained for
// a day and answered with 409 on replay, which keeps client retries of
// booking requests from double-submitting. A failed request releases
// the key so the client can retry with the same one.
func Idempotency(store idempotencyStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get("Idempotency-Key")
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			idemKey := fmt.Sprintf("idempotency:%s", key)
			ctx := r.Context()

			_, err := store.Get(ctx, idemKey).Result()
			if err == nil {
				w.Header().Set("X-Idempotency-Hit", "true")
				writeJSON(w, http.StatusConflict, errorResponse{Error: "request already processed"})
				return
			} else if err != redis.Nil {
				// Redis unavailable; serve the request rather than fail it.
				next.ServeHTTP(w, r)
				return
			}

			// Short-TTL lock so a crash mid-request does not pin the key.
			acquired, err := store.SetNX(ctx, idemKey, "PROCESSING", 10*time.Second).Result()
			if err != nil || !acquired {
				writeJSON(w, http.StatusConflict, errorResponse{Error: "concurrent request"})
				return
			}

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			// Only a successful response burns the key. A 4xx/5xx drops
			// the lock so the same key can be retried.
			if sw.status >= 200 && sw.status < 300 {
				store.Set(ctx, idemKey, "COMPLETED", 24*time.Hour)
			} else {
				store.Del(ctx, idemKey)
			}
		})
	}
}
