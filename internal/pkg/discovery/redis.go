package discovery

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "discovery:"

// RedisRegistry stores discovery:<service>:<instanceID> = url with a TTL. An instance that
// stops renewing its registration disappears once the TTL runs out.
type RedisRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRegistry(client *redis.Client, ttl time.Duration) *RedisRegistry {
	return &RedisRegistry{client: client, ttl: ttl}
}

// Connect parses a redis:// URL and checks the server answers.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func (r *RedisRegistry) Register(ctx context.Context, instance Instance) error {
	return r.client.Set(ctx, instanceKey(instance), instance.URL, r.ttl).Err()
}

func (r *RedisRegistry) Deregister(ctx context.Context, instance Instance) error {
	return r.client.Del(ctx, instanceKey(instance)).Err()
}

// Resolve picks one live instance of service at random.
func (r *RedisRegistry) Resolve(ctx context.Context, service string) (string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, keyPrefix+service+":*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return "", err
	}

	rand.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	for _, key := range keys {
		url, err := r.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			// expired between SCAN and GET
			continue
		}
		if err != nil {
			return "", err
		}
		return url, nil
	}
	return "", notRegistered(service)
}

func instanceKey(instance Instance) string {
	return keyPrefix + instance.Service + ":" + instance.ID
}
