//go:build integration

package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"ethicsaudit/internal/assessment/service"
	"ethicsaudit/pkg/testutil/containers"

	"github.com/redis/go-redis/v9"
)

type RedisLockerSuite struct {
	suite.Suite
	client *redis.Client
}

func TestRedisLockerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisLockerSuite))
}

func (s *RedisLockerSuite) SetupSuite() {
	s.client = containers.NewRedisClient(s.T())
}

func (s *RedisLockerSuite) SetupTest() {
	s.Require().NoError(s.client.FlushDB(context.Background()).Err())
}

func (s *RedisLockerSuite) TestSecondHolderWaitsForRelease() {
	a := service.NewRedisLocker(s.client, service.WithLockRetryInterval(5*time.Millisecond))
	b := service.NewRedisLocker(s.client, service.WithLockRetryInterval(5*time.Millisecond))

	release, err := a.Lock(context.Background(), "audit-1")
	s.Require().NoError(err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = b.Lock(ctx, "audit-1")
	s.Require().Error(err, "lock is held by another instance")

	release()
	release()

	releaseB, err := b.Lock(context.Background(), "audit-1")
	s.Require().NoError(err)
	releaseB()
}

func (s *RedisLockerSuite) TestExpiredLockIsNotReleasedByOldOwner() {
	short := service.NewRedisLocker(s.client,
		service.WithLockTTL(50*time.Millisecond),
		service.WithLockRetryInterval(5*time.Millisecond),
	)
	other := service.NewRedisLocker(s.client, service.WithLockRetryInterval(5*time.Millisecond))

	staleRelease, err := short.Lock(context.Background(), "audit-2")
	s.Require().NoError(err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	release, err := other.Lock(ctx, "audit-2")
	s.Require().NoError(err, "lock frees itself after the ttl")
	defer release()

	staleRelease()

	exists, err := s.client.Exists(context.Background(), "ethicsaudit:lock:audit:audit-2").Result()
	s.Require().NoError(err)
	s.Equal(int64(1), exists, "stale release must not drop the new holder's lock")
}
