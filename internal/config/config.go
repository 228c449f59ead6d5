package config

import "time"

type Config struct {
	DatabaseURL string `env:"DATABASE_URL" env-required:"true"`

	App      AppConfig      `env-prefix:"APP_"`
	HTTP     HTTPConfig     `env-prefix:"HTTP_"`
	GRPC     GRPCConfig     `env-prefix:"GRPC_"`
	Database DatabaseConfig `env-prefix:"DB_"`
}

type AppConfig struct {
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
	Pretty   bool   `env:"PRETTY" env-default:"false"`
}

type HTTPConfig struct {
	Addr           string   `env:"ADDR" env-default:":8000"`
	GinMode        string   `env:"GIN_MODE" env-default:"release"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" env-default:"*" env-separator:","`
}

type GRPCConfig struct {
	Addr                 string        `env:"ADDR" env-default:":50051"`
	KeepaliveTime        time.Duration `env:"KEEPALIVE_TIME" env-default:"60s"`
	KeepaliveTimeout     time.Duration `env:"KEEPALIVE_TIMEOUT" env-default:"30s"`
	MaxConcurrentStreams uint32        `env:"MAX_CONCURRENT_STREAMS" env-default:"50"`
}

type DatabaseConfig struct {
	MaxConns      int32 `env:"MAX_CONNS" env-default:"10"`
	RetryAttempts uint  `env:"RETRY_ATTEMPTS" env-default:"3"`
}
