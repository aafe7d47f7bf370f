// Copyright (c) 2026 Emoticam. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/emoticam/internal/platform/constants"
)

// RedisLoginThrottle implements [LoginThrottle] using Redis counters with TTL.
type RedisLoginThrottle struct {
	client *redis.Client
}

// NewLoginThrottle creates a new Redis-backed LoginThrottle.
func NewLoginThrottle(client *redis.Client) *RedisLoginThrottle {
	return &RedisLoginThrottle{client: client}
}

/*
RecordFailure increments the failure counter for an email.

Description: The counter expires after [constants.LoginFailureWindow] of
inactivity, so a forgotten password does not lock an account forever.

Parameters:
  - context: context.Context
  - email: string (normalized)

Returns:
  - error: Execution errors
*/
func (throttle *RedisLoginThrottle) RecordFailure(context context.Context, email string) error {
	key := constants.RedisPrefixLoginFailures + email

	// INCR then refresh the expiry window atomically via pipeline.
	pipe := throttle.client.TxPipeline()
	pipe.Incr(context, key)
	pipe.Expire(context, key, constants.LoginFailureWindow)

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_login_throttle_record_failed: %w", err)
	}

	return nil
}

/*
TooManyFailures reports whether the email exceeded its failed-attempt allowance.

Parameters:
  - context: context.Context
  - email: string (normalized)

Returns:
  - bool: true when the counter is at or over [constants.LoginFailureLimit]
  - error: Connectivity errors
*/
func (throttle *RedisLoginThrottle) TooManyFailures(context context.Context, email string) (bool, error) {
	key := constants.RedisPrefixLoginFailures + email

	count, err := throttle.client.Get(context, key).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis_login_throttle_get_failed: %w", err)
	}

	return count >= constants.LoginFailureLimit, nil
}

/*
Reset clears the failure counter after a successful login.

Parameters:
  - context: context.Context
  - email: string (normalized)

Returns:
  - error: Execution errors
*/
func (throttle *RedisLoginThrottle) Reset(context context.Context, email string) error {
	key := constants.RedisPrefixLoginFailures + email

	if err := throttle.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_login_throttle_reset_failed: %w", err)
	}

	return nil
}
