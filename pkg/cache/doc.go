// Package cache provides a generic Cache interface with in-memory and Redis
// implementations.
//
// The forecast summary is expensive to produce (an upstream fetch plus an LLM
// completion) and only changes once per hour, so it is stored under the
// truncated hour and read through [GetOrSet]:
//
//	summary, err := cache.GetOrSet(ctx, c, hour.Format(time.RFC3339),
//	    func(ctx context.Context) (Summary, time.Duration, error) {
//	        s, err := compute(ctx)
//	        return s, time.Hour, err
//	    })
//
// Concurrent misses for the same key call fn once. fn runs detached from the
// caller's cancellation so one impatient client cannot fail the computation
// for everyone waiting on it.
//
// TTL semantics for Set:
//   - Positive duration: item expires after this duration
//   - Zero: use the cache's configured default TTL (1 hour by default)
//   - Negative: item never expires
//
// Use [NewMemory] for a single process and [NewRedis] to share entries across
// instances. Redis values are JSON-encoded unless a [Marshaler] is supplied.
package cache
