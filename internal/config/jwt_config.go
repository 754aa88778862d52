package config

import "os"

// JwtConfig guards the submission routes. An empty secret leaves them open.
type JwtConfig struct {
	Secret string
}

func NewJwtConfig() *JwtConfig {
	return &JwtConfig{
		Secret: os.Getenv("JWT_SECRET"),
	}
}
