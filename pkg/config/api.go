package config

import "time"

// Balance policy modes for newly provisioned accounts.
const (
	BalanceModeRandom = "random"
	BalanceModeFixed  = "fixed"
)

// APIConfig holds runtime configuration for the wallet API service.
type APIConfig struct {
	Environment        string
	Addr               string
	DatabaseURL        string
	MigrationsDir      string
	JWTSecret          string
	AccessTokenTTL     time.Duration
	BcryptCost         int
	InitialBalanceMode string
	// Balance bounds and the fixed value are minor units (cents).
	InitialBalanceMinCents   int64
	InitialBalanceMaxCents   int64
	InitialBalanceFixedCents int64
	RateLimitRedisAddr       string
	RateLimitRedisPass       string
	RateLimitRedisDB         int
}

// LoadAPIConfig constructs an APIConfig from environment variables.
func LoadAPIConfig() APIConfig {
	return APIConfig{
		Environment:              GetString("APP_ENV", "development"),
		Addr:                     GetString("API_ADDR", ":3000"),
		DatabaseURL:              GetString("DATABASE_URL", "postgres://wallet:wallet@db:5432/wallet?sslmode=disable"),
		MigrationsDir:            GetString("DB_MIGRATIONS_DIR", "./db/migrations"),
		JWTSecret:                GetString("JWT_SECRET", "supersecuresecret"),
		AccessTokenTTL:           time.Duration(GetInt("ACCESS_TOKEN_TTL_MIN", 0)) * time.Minute,
		BcryptCost:               GetInt("BCRYPT_COST", 10),
		InitialBalanceMode:       GetString("INITIAL_BALANCE_MODE", BalanceModeRandom),
		InitialBalanceMinCents:   int64(GetInt("INITIAL_BALANCE_MIN_CENTS", 100)),
		InitialBalanceMaxCents:   int64(GetInt("INITIAL_BALANCE_MAX_CENTS", 1000100)),
		InitialBalanceFixedCents: int64(GetInt("INITIAL_BALANCE_FIXED_CENTS", 0)),
		RateLimitRedisAddr:       GetString("RATE_LIMIT_REDIS_ADDR", ""),
		RateLimitRedisPass:       GetString("RATE_LIMIT_REDIS_PASSWORD", ""),
		RateLimitRedisDB:         GetInt("RATE_LIMIT_REDIS_DB", 0),
	}
}
