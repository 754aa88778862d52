package config

import "os"

type AppConfig struct {
	DebugMode      bool
	HttpConfig     *HttpConfig
	CatalogConfig  *CatalogConfig
	ExecutorConfig *ExecutorConfig
	JudgeSvcCfg    *JudgeSvcCfg
	RedisConfig    *RedisConfig
	PostgresConfig *PostgresConfig
	JwtConfig      *JwtConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:      os.Getenv("DEBUG_MODE") == "true",
		HttpConfig:     NewHttpConfig(),
		CatalogConfig:  NewCatalogConfig(),
		ExecutorConfig: NewExecutorConfig(),
		JudgeSvcCfg:    NewJudgeSvcCfg(),
		RedisConfig:    NewRedisConfig(),
		PostgresConfig: NewPostgresConfig(),
		JwtConfig:      NewJwtConfig(),
	}
}

// getEnv gets an environment variable with a fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
