package database

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis opens the rate-limiter backend. Redis is optional:
// an empty address or a failed ping returns nil and the limiter
// becomes a pass-through.
func ConnectRedis(addr string) *redis.Client {
	if addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Println("redis unavailable, rate limiting disabled:", err)
		return nil
	}

	log.Println("connected to redis")
	return rdb
}
