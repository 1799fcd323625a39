// Copyright (c) 2026 TaskFlow. All rights reserved.
// Author: carljohntruya.art@gmail.com

/*
Package ratelimit implements the boundary rate-limit policy on Redis.

It uses a fixed-window counter per (scope, client) pair: the first request in
a window creates the key with a TTL, subsequent requests increment it, and the
request is denied once the counter exceeds the configured maximum.

Redis is the right home for these counters: the policy must hold across
process restarts and multiple replicas, while the authorization core itself
stays free of cross-request state.
*/
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter evaluates fixed-window rate limits backed by Redis.
type Limiter struct {
	client *redis.Client
	prefix string
}

// NewLimiter creates a Redis-backed fixed-window limiter.
// All keys are namespaced under the given prefix.
func NewLimiter(client *redis.Client, prefix string) *Limiter {
	return &Limiter{client: client, prefix: prefix}
}

// Result reports the outcome of a single rate-limit check.
type Result struct {
	// Allowed is true when the request is within the window budget.
	Allowed bool

	// Remaining is the number of requests left in the current window.
	Remaining int

	// RetryAfter is how long until the window resets. Only meaningful
	// when Allowed is false.
	RetryAfter time.Duration
}

/*
Allow records one request against the (scope, clientKey) counter and reports
whether it is within budget.

Parameters:
  - context: context.Context
  - scope: Logical endpoint group ("auth", "tasks")
  - clientKey: Client discriminator, normally the remote IP
  - max: Requests allowed per window
  - window: Fixed window length

Returns:
  - Result: Allow/deny decision with retry metadata
  - error: Redis connectivity failures
*/
func (limiter *Limiter) Allow(context context.Context, scope, clientKey string, max int, window time.Duration) (Result, error) {
	key := fmt.Sprintf("%s%s:%s", limiter.prefix, scope, clientKey)

	// INCR and EXPIRE run in one pipeline round-trip. NX keeps the TTL
	// anchored to the first request of the window.
	pipe := limiter.client.TxPipeline()
	count := pipe.Incr(context, key)
	pipe.ExpireNX(context, key, window)
	if _, err := pipe.Exec(context); err != nil {
		return Result{}, fmt.Errorf("ratelimit_allow_failed: %w", err)
	}

	used := int(count.Val())
	if used <= max {
		return Result{Allowed: true, Remaining: max - used}, nil
	}

	// Over budget: report when the window resets so clients can back off.
	ttl, err := limiter.client.TTL(context, key).Result()
	if err != nil || ttl < 0 {
		ttl = window
	}

	return Result{Allowed: false, Remaining: 0, RetryAfter: ttl}, nil
}
