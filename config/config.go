package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/yeremiapane/parlor-billing/utils"
)

// Config holds runtime settings read from the environment (and .env when
// present).
type Config struct {
	Port    string
	GinMode string

	DBDriver   string
	DBUser     string
	DBPass     string
	DBHost     string
	DBPort     string
	DBName     string
	SQLitePath string

	TxTimeout time.Duration

	DefaultTenantID   uint
	DefaultTenantName string

	CORSOrigin     string
	RateLimitRPS   float64
	RateLimitBurst int
	LogLevel       string
}

// Load reads .env (if any) and the process environment. Values that fail to
// parse fall back to their defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Warning: .env file not found")
	}

	return Config{
		Port:    envStr("APP_PORT", "8080"),
		GinMode: os.Getenv("GIN_MODE"),

		DBDriver:   envStr("DB_DRIVER", "mysql"),
		DBUser:     envStr("DB_USER", "root"),
		DBPass:     os.Getenv("DB_PASS"),
		DBHost:     envStr("DB_HOST", "127.0.0.1"),
		DBPort:     envStr("DB_PORT", "3306"),
		DBName:     envStr("DB_NAME", "parlor"),
		SQLitePath: envStr("SQLITE_PATH", "parlor.db"),

		TxTimeout: envDur("TX_TIMEOUT", 5*time.Second),

		DefaultTenantID:   uint(envInt("DEFAULT_TENANT_ID", 1)),
		DefaultTenantName: envStr("DEFAULT_TENANT_NAME", "default"),

		CORSOrigin:     envStr("CORS_ORIGIN", "*"),
		RateLimitRPS:   envFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: envInt("RATE_LIMIT_BURST", 40),
		LogLevel:       envStr("LOG_LEVEL", "info"),
	}
}

// MySQLDSN builds the DSN for the mysql driver. clientFoundRows makes
// conditional UPDATEs report matched rows rather than changed rows.
func (c Config) MySQLDSN() string {
	auth := c.DBUser
	if c.DBPass != "" {
		auth = fmt.Sprintf("%s:%s", c.DBUser, c.DBPass)
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true",
		auth, c.DBHost, c.DBPort, c.DBName)
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		utils.ErrorLogger.Printf("invalid int for %s: %q, using %d", k, v, d)
		return d
	}
	return n
}

func envFloat(k string, d float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		utils.ErrorLogger.Printf("invalid number for %s: %q, using %v", k, v, d)
		return d
	}
	return f
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	dur, err := time.ParseDuration(v)
	if err != nil {
		utils.ErrorLogger.Printf("invalid duration for %s: %q, using %s", k, v, d)
		return d
	}
	return dur
}
