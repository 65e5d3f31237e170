package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. It is read once at startup
// and treated as immutable for the process lifetime.
type Config struct {
	Strike    StrikeConfig    `mapstructure:"strike"`
	NWC       NWCConfig       `mapstructure:"nwc"`
	Wallet    WalletConfig    `mapstructure:"wallet"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
}

// StrikeConfig configures the payment processor client.
type StrikeConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	SourceCurrency string        `mapstructure:"source_currency"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// NWCConfig holds the relay endpoint and the keys of the wallet connection.
// All keys are 32-byte hex strings.
type NWCConfig struct {
	ServicePrivkey   string `mapstructure:"service_privkey"`
	ConnectionSecret string `mapstructure:"connection_secret"`
	AuthorizedPubkey string `mapstructure:"authorized_pubkey"`
	RelayURI         string `mapstructure:"relay_uri"`
}

type WalletConfig struct {
	MaxSendSats               int64  `mapstructure:"max_send_sats"`
	BalanceEnabled            bool   `mapstructure:"balance_enabled"`
	TransactionHistoryEnabled bool   `mapstructure:"transaction_history_enabled"`
	BalancePollInterval       string `mapstructure:"balance_poll_interval"` // 30s, 5m, 4h, 1d
}

// PollInterval parses BalancePollInterval.
func (w WalletConfig) PollInterval() (time.Duration, error) {
	return ParseInterval(w.BalancePollInterval)
}

type DashboardConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Hosts          string        `mapstructure:"hosts"` // comma separated
	Port           int           `mapstructure:"port"`
	BalanceDisplay string        `mapstructure:"balance_display"`
	PasswordHash   string        `mapstructure:"password_hash"` // argon2id, empty = open
	JWTSecret      string        `mapstructure:"jwt_secret"`
	JWTExpiry      time.Duration `mapstructure:"jwt_expiry"`
}

// HostList splits Hosts into trimmed, non-empty addresses.
func (d DashboardConfig) HostList() []string {
	var hosts []string
	for _, h := range strings.Split(d.Hosts, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

// AuthEnabled reports whether the dashboard API requires a login.
func (d DashboardConfig) AuthEnabled() bool {
	return d.PasswordHash != ""
}

type StorageConfig struct {
	InvoiceBackend    string        `mapstructure:"invoice_backend"` // memory, redis
	InvoiceTTL        time.Duration `mapstructure:"invoice_ttl"`
	InvoiceMaxEntries int           `mapstructure:"invoice_max_entries"`
	PaymentsPersist   bool          `mapstructure:"payments_persist"`
}

// UsesRedis reports whether a Redis connection is required.
func (s StorageConfig) UsesRedis() bool {
	return s.InvoiceBackend == "redis"
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LogConfig struct {
	Level      string `mapstructure:"level"`  // debug, info, warn, error
	Pretty     bool   `mapstructure:"pretty"` // human-readable output (dev only)
	BufferSize int    `mapstructure:"buffer_size"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: SC_ (strike-connect).
// Nested keys use underscore: SC_STRIKE_API_KEY, SC_NWC_RELAY_URI, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults. Every key needs one so AutomaticEnv can override it.
	v.SetDefault("strike.api_key", "")
	v.SetDefault("strike.base_url", "https://api.strike.me")
	v.SetDefault("strike.source_currency", "")
	v.SetDefault("strike.timeout", "30s")
	v.SetDefault("nwc.service_privkey", "")
	v.SetDefault("nwc.connection_secret", "")
	v.SetDefault("nwc.authorized_pubkey", "")
	v.SetDefault("nwc.relay_uri", "")
	v.SetDefault("wallet.max_send_sats", 10000)
	v.SetDefault("wallet.balance_enabled", false)
	v.SetDefault("wallet.transaction_history_enabled", false)
	v.SetDefault("wallet.balance_poll_interval", "4h")
	v.SetDefault("dashboard.enabled", false)
	v.SetDefault("dashboard.hosts", "127.0.0.1")
	v.SetDefault("dashboard.port", 2021)
	v.SetDefault("dashboard.balance_display", "sats")
	v.SetDefault("dashboard.password_hash", "")
	v.SetDefault("dashboard.jwt_secret", "")
	v.SetDefault("dashboard.jwt_expiry", "24h")
	v.SetDefault("storage.invoice_backend", "memory")
	v.SetDefault("storage.invoice_ttl", "0s")
	v.SetDefault("storage.invoice_max_entries", 0)
	v.SetDefault("storage.payments_persist", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "strike_connect")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 5)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("log.buffer_size", 1000)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: SC_STRIKE_API_KEY -> strike.api_key
	v.SetEnvPrefix("SC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the keys the bridge cannot start without.
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"strike.api_key", c.Strike.APIKey},
		{"strike.source_currency", c.Strike.SourceCurrency},
		{"nwc.service_privkey", c.NWC.ServicePrivkey},
		{"nwc.relay_uri", c.NWC.RelayURI},
		{"nwc.authorized_pubkey", c.NWC.AuthorizedPubkey},
		{"nwc.connection_secret", c.NWC.ConnectionSecret},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("missing required config %s", r.key)
		}
	}

	keys := []struct {
		key   string
		value string
	}{
		{"nwc.service_privkey", c.NWC.ServicePrivkey},
		{"nwc.connection_secret", c.NWC.ConnectionSecret},
		{"nwc.authorized_pubkey", c.NWC.AuthorizedPubkey},
	}
	for _, k := range keys {
		if err := checkKey(k.value); err != nil {
			return fmt.Errorf("invalid %s: %w", k.key, err)
		}
	}

	if c.Wallet.MaxSendSats < 0 {
		return errors.New("wallet.max_send_sats must not be negative")
	}
	if _, err := c.Wallet.PollInterval(); err != nil {
		return err
	}

	switch c.Storage.InvoiceBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown storage.invoice_backend %q", c.Storage.InvoiceBackend)
	}

	if c.Dashboard.AuthEnabled() && c.Dashboard.JWTSecret == "" {
		return errors.New("dashboard.jwt_secret is required when dashboard.password_hash is set")
	}
	return nil
}

var intervalPattern = regexp.MustCompile(`^(\d+)([smhd])$`)

// ParseInterval parses durations written as 30s, 5m, 2h or 1d.
func ParseInterval(s string) (time.Duration, error) {
	m := intervalPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid interval format: %s. Use format like '30s', '5m', '2h', '1d'", s)
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid interval value %q: %w", s, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("interval must be positive: %s", s)
	}

	unit := map[string]time.Duration{
		"s": time.Second,
		"m": time.Minute,
		"h": time.Hour,
		"d": 24 * time.Hour,
	}[m[2]]
	if n > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("interval too large: %s", s)
	}
	return time.Duration(n) * unit, nil
}

func checkKey(s string) error {
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("not hex: %w", err)
	}
	if len(b) != 32 {
		return fmt.Errorf("expected 32 bytes, got %d", len(b))
	}
	return nil
}
