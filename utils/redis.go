package utils

import (
	"Keyo/internal/config"
	"fmt"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(rc config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", rc.Host, rc.Port),
		Username: rc.Username,
		Password: rc.Password,
		DB:       rc.Database,
	})
}
