// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	stdctx "context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/text/cases"

	"github.com/taibuivan/recursos/internal/platform/constants"
	"github.com/taibuivan/recursos/pkg/objectid"
)

// ErrLocked is returned by [NameLock.Acquire] when another writer holds the name.
var ErrLocked = errors.New("redis: name is locked by another writer")

// Release frees a lock obtained from [NameLock.Acquire].
type Release func(stdctx.Context)

// NameLock serializes writers that claim the same case-insensitive name.
type NameLock interface {
	Acquire(ctx stdctx.Context, collection, name string) (Release, error)
}

// releaseScript deletes the key only if it still holds our token, so an
// expired lock taken over by another writer is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisNameLock implements [NameLock] with SET NX and a TTL.
type RedisNameLock struct {
	client redis.Cmdable
	ttl    time.Duration
	token  func() string
}

// NewNameLock builds a lock whose keys expire after ttl.
func NewNameLock(client redis.Cmdable, ttl time.Duration) *RedisNameLock {
	return &RedisNameLock{
		client: client,
		ttl:    ttl,
		token:  objectid.New,
	}
}

// Key returns the Redis key guarding name inside collection.
//
// A [cases.Caser] is stateful, so a fresh one is built per call.
func (l *RedisNameLock) Key(collection, name string) string {
	return constants.RedisPrefixNameLock + collection + ":" + cases.Fold().String(name)
}

// Acquire claims name or fails with [ErrLocked].
func (l *RedisNameLock) Acquire(ctx stdctx.Context, collection, name string) (Release, error) {
	key := l.Key(collection, name)
	token := l.token()

	acquired, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: acquire %s: %w", key, err)
	}
	if !acquired {
		return nil, ErrLocked
	}

	return func(ctx stdctx.Context) {
		// Best effort; the TTL reclaims the key if this fails.
		_ = releaseScript.Run(ctx, l.client, []string{key}, token).Err()
	}, nil
}

// NoopNameLock always grants the lock. It is used when Redis is not configured.
type NoopNameLock struct{}

// Acquire implements [NameLock].
func (NoopNameLock) Acquire(stdctx.Context, string, string) (Release, error) {
	return func(stdctx.Context) {}, nil
}
