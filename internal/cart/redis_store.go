package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const redisCartField = "cart"

// RedisStore keeps the cart as a JSON blob in a Redis hash, one key per
// buyer. Meant for shared-host setups where the cart should survive the
// machine the client runs on.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore accepts either a redis:// URL or a plain "host:port" address.
func NewRedisStore(addr string, buyerID int) *RedisStore {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{Addr: addr}
	}
	return &RedisStore{
		client: redis.NewClient(opts),
		key:    fmt.Sprintf("storefront:cart:%d", buyerID),
	}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Load(ctx context.Context) (*Cart, error) {
	val, err := s.client.HGet(ctx, s.key, redisCartField).Result()
	if err != nil {
		// redis.Nil (no cart yet) and transport errors both read as empty.
		return &Cart{}, nil
	}

	var c Cart
	if err := json.Unmarshal([]byte(val), &c); err != nil {
		return &Cart{}, nil
	}
	return &c, nil
}

func (s *RedisStore) Save(ctx context.Context, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: encode cart: %v", ErrStorage, err)
	}
	if err := s.client.HSet(ctx, s.key, redisCartField, data).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

func (s *RedisStore) Close() error { return s.client.Close() }
