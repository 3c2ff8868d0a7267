package locker

import (
	"context"
	"pulsecheck-service/internal/app/contracts"
	"pulsecheck-service/internal/pkg/constvars"
	"pulsecheck-service/internal/pkg/exceptions"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type lockerService struct {
	Client *goredis.Client
	Log    *zap.Logger
}

var (
	instance contracts.LockerService
	once     sync.Once
)

func NewLockerService(client *goredis.Client, logger *zap.Logger) contracts.LockerService {
	once.Do(func() {
		instance = &lockerService{Client: client, Log: logger}
	})
	return instance
}

// TryLock acquires key with a random value so only the holder can release it. The
// returned value must be passed back to Unlock.
func (s *lockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	lockValue := uuid.NewString()
	acquired, err := s.Client.SetNX(ctx, key, lockValue, expiration).Result()
	if err != nil {
		return false, "", exceptions.ErrRedisSet(err)
	}
	if !acquired {
		return false, "", nil
	}

	s.Log.Debug("lock acquired",
		zap.String(constvars.LoggingRedisKey, key),
		zap.String(constvars.LoggingLockValueKey, lockValue),
		zap.Duration(constvars.LoggingLockExpirationTimeKey, expiration),
	)
	return true, lockValue, nil
}

// Unlock releases key only if it still holds lockValue, so an expired lock taken over
// by another holder is left alone.
func (s *lockerService) Unlock(ctx context.Context, key, lockValue string) error {
	const script = `
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("del", KEYS[1])
		else
			return 0
		end`

	if err := s.Client.Eval(ctx, script, []string{key}, lockValue).Err(); err != nil {
		return exceptions.ErrRedisUnlock(err)
	}
	return nil
}
