package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// JWTSecret signs the bearer tokens accepted by the API; JWTIssuer is
	// checked against the iss claim.
	JWTSecret string
	JWTIssuer string

	// RedisURL enables the tracking cache when set.
	RedisURL         string
	TrackingCacheTTL time.Duration

	// StatusGaugeSchedule uses the six field cron syntax.
	StatusGaugeSchedule string
}
