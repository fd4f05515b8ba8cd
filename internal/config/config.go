package config

import (
	"os"
	"strconv"
)

// AvailabilityPolicy selects which bookings feed the last/next aggregation.
// The legacy behaviour considers every booking regardless of status; the later
// revision narrows it to approved ones. Both are kept selectable.
const (
	AvailabilityAll      = "all"
	AvailabilityApproved = "approved"
)

// StartPolicy selects whether a booking may start at the present instant or
// must start strictly in the future. Enforced by the gateway only.
const (
	StartPresent = "present"
	StartFuture  = "future"
)

type Config struct {
	Port      string
	ServerURL string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisURL     string
	RateLimitRPM int

	LogLevel string

	AvailabilityPolicy string
	BookingStartPolicy string
}

func Load() Config {
	return Config{
		Port:               getenv("PORT", "8080"),
		ServerURL:          getenv("SERVER_URL", "http://localhost:9090"),
		DBHost:             getenv("DB_HOST", "localhost"),
		DBUser:             getenv("DB_USER", "postgres"),
		DBPassword:         getenv("DB_PASSWORD", "postgres"),
		DBName:             getenv("DB_NAME", "sharebox"),
		DBPort:             getenv("DB_PORT", "5432"),
		RedisURL:           os.Getenv("REDIS_URL"),
		RateLimitRPM:       getint("RATE_LIMIT_RPM", 120),
		LogLevel:           getenv("LOG_LEVEL", "info"),
		AvailabilityPolicy: getenv("AVAILABILITY_POLICY", AvailabilityAll),
		BookingStartPolicy: getenv("BOOKING_START_POLICY", StartPresent),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
