package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"github.com/skynet2/conveyancing-inbox/pkg/database"
)

const defaultDuplicateTTL = 30 * 24 * time.Hour

// Redis keeps duplicate keys with an expiry, so retried webhooks are absorbed
// without the key set growing forever.
type Redis struct {
	cl  redis.Cmdable
	ttl time.Duration
}

func NewRedis(cl redis.Cmdable, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = defaultDuplicateTTL
	}

	return &Redis{
		cl:  cl,
		ttl: ttl,
	}
}

func (r *Redis) key(key string, channel database.Channel) string {
	return fmt.Sprintf("dedupe:%s:%s", channel, key)
}

// AddDuplicateKey sets the key only when absent, which makes the claim atomic.
func (r *Redis) AddDuplicateKey(
	ctx context.Context,
	key string,
	channel database.Channel,
) (bool, error) {
	created, err := r.cl.SetNX(ctx, r.key(key, channel), time.Now().UTC().Format(time.RFC3339), r.ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, "failed to store duplicate key")
	}

	return created, nil
}

func (r *Redis) RemoveDuplicateKey(
	ctx context.Context,
	key string,
	channel database.Channel,
) error {
	if err := r.cl.Del(ctx, r.key(key, channel)).Err(); err != nil {
		return errors.Wrap(err, "failed to remove duplicate key")
	}

	return nil
}
