package helpers

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func carUsageKey(carID int64) string {
	return "car:usage:" + strconv.FormatInt(carID, 10)
}

// IncrCarUsage mirrors a car's usage counter into redis. The database column
// stays authoritative; this counter only feeds cheap reads, so the error is
// returned for logging and otherwise ignored.
func IncrCarUsage(ctx context.Context, rdb *redis.Client, carID int64) error {
	if rdb == nil {
		return nil
	}
	return rdb.Incr(ctx, carUsageKey(carID)).Err()
}
