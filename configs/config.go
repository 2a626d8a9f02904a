package configs

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config is loaded once at startup and injected where needed. Nothing reads
// the environment after this point.
type Config struct {
	Port         string
	DBSource     string
	JWTSecret    string
	JWTTTL       time.Duration
	QueryTimeout time.Duration

	// Optional: order events are skipped when RabbitURL is empty.
	RabbitURL      string
	RabbitExchange string

	StaffEmail    string
	StaffPassword string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "3030"),
		DBSource:       getEnv("DB_SOURCE", "canteen.db"),
		JWTSecret:      getEnv("JWT_SECRET", "changeme"),
		JWTTTL:         getEnvDuration("JWT_TTL", 10*time.Hour),
		QueryTimeout:   getEnvDuration("QUERY_TIMEOUT", 5*time.Second),
		RabbitURL:      os.Getenv("RABBIT_URL"),
		RabbitExchange: getEnv("RABBIT_EXCHANGE", "canteen.events"),
		StaffEmail:     os.Getenv("STAFF_EMAIL"),
		StaffPassword:  os.Getenv("STAFF_PASSWORD"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
