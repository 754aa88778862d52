package config

import (
	"os"
	"strconv"
	"time"
)

type RedisConfig struct {
	Enabled   bool
	DB        int
	Url       string
	Password  string
	ResultTTL time.Duration
}

func NewRedisConfig() *RedisConfig {
	db, err := strconv.Atoi(os.Getenv("REDIS_DB"))
	if err != nil {
		db = 0
	}
	ttlSec, err := strconv.Atoi(os.Getenv("RESULT_TTL_SEC"))
	if err != nil || ttlSec <= 0 {
		ttlSec = 3600
	}
	return &RedisConfig{
		Enabled:   os.Getenv("REDIS_ENABLED") == "true",
		DB:        db,
		Url:       getEnv("REDIS_ADDR", "localhost:6379"),
		Password:  os.Getenv("REDIS_PASSWORD"),
		ResultTTL: time.Duration(ttlSec) * time.Second,
	}
}
