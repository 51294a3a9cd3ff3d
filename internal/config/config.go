package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// Engine defaults; seed the singleton settings row on first boot.
	DayBasis           int
	InterestRateAnnual decimal.Decimal
	DefaultDueDays     int
	CreditLimitTotal   decimal.Decimal
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getenvDecimal(k, d string) decimal.Decimal {
	if v := os.Getenv(k); v != "" {
		if n, err := decimal.NewFromString(v); err == nil {
			return n
		}
	}
	out, _ := decimal.NewFromString(d)
	return out
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "creditline"),
		MySQLUser: getenv("MYSQL_USER", "creditline"),
		MySQLPass: getenv("MYSQL_PASS", "creditline"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:      getenvInt("REDIS_DB", 0),
		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),

		DayBasis:           getenvInt("DAY_BASIS", 360),
		InterestRateAnnual: getenvDecimal("INTEREST_RATE_ANNUAL", "12"),
		DefaultDueDays:     getenvInt("DEFAULT_DUE_DAYS", 90),
		CreditLimitTotal:   getenvDecimal("CREDIT_LIMIT_TOTAL", "1000000"),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.DayBasis != 360 && c.DayBasis != 365 {
		return fmt.Errorf("DAY_BASIS must be 360 or 365, got %d", c.DayBasis)
	}
	if c.InterestRateAnnual.IsNegative() {
		return errors.New("INTEREST_RATE_ANNUAL must not be negative")
	}
	if c.DefaultDueDays <= 0 {
		return errors.New("DEFAULT_DUE_DAYS must be positive")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
