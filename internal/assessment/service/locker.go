package service

import (
	"context"
	"sync"

	dErrors "ethicsaudit/pkg/domain-errors"
)

// Locker serializes writers of the same key. unlock is safe to call more
// than once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// numAuditShards bounds the number of semaphores; audits hashing to the same
// shard serialize with each other, all others proceed in parallel.
const numAuditShards = 128

// ShardedLocker is the in-process Locker: one buffered channel per shard acts
// as a context-aware mutex.
type ShardedLocker struct {
	shards [numAuditShards]chan struct{}
}

func NewShardedLocker() *ShardedLocker {
	l := &ShardedLocker{}
	for i := range l.shards {
		l.shards[i] = make(chan struct{}, 1)
	}
	return l
}

func (l *ShardedLocker) Lock(ctx context.Context, key string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "lock aborted: context cancelled")
	}
	shard := l.shards[hashKey(key)%numAuditShards]
	select {
	case shard <- struct{}{}:
	case <-ctx.Done():
		return nil, dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "lock aborted: context cancelled")
	}
	var once sync.Once
	return func() {
		once.Do(func() { <-shard })
	}, nil
}

// hashKey is 32-bit FNV-1a.
func hashKey(s string) uint32 {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)
	h := uint32(fnvOffset)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return h
}
