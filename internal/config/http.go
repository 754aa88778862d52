package config

import (
	"os"
	"strconv"
)

type HttpConfig struct {
	Port              int
	ServiceName       string
	CorsAllowedOrigin string
}

func NewHttpConfig() *HttpConfig {
	port, err := strconv.Atoi(os.Getenv("HTTP_PORT"))
	if err != nil || port <= 0 {
		port = 3001
	}
	return &HttpConfig{
		Port:              port,
		ServiceName:       getEnv("SERVICE_NAME", "codejudge"),
		CorsAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),
	}
}
