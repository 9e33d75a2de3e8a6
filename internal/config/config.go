package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	errMissingSetting = errors.New("required setting not found")
	errInvalidSetting = errors.New("setting must be positive")
)

const envPrefix = "CHAINRELAY"

type App struct {
	Server            Server             `mapstructure:"app"`
	Database          Database           `mapstructure:"database"`
	NATS              NATS               `mapstructure:"nats"`
	Relays            []Relay            `mapstructure:"relays"`
	Endpoints         []Endpoint         `mapstructure:"endpoints"`
	Indexers          []Indexer          `mapstructure:"indexers"`
	SubstrateProfiles []SubstrateProfile `mapstructure:"substrate_profiles"`
	Reconcile         Reconcile          `mapstructure:"reconcile"`
	Resubmit          Resubmit           `mapstructure:"resubmit"`
	Outbox            Outbox             `mapstructure:"outbox"`
	Wallets           []Wallet           `mapstructure:"wallets"`
}

type Server struct {
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`
}

type Database struct {
	DSN    string `mapstructure:"dsn"`
	LogSQL bool   `mapstructure:"log_sql"`
}

type NATS struct {
	URL            string        `mapstructure:"url"`
	SubjectPrefix  string        `mapstructure:"subject_prefix"`
	JetStream      bool          `mapstructure:"jetstream"`
	CreditsSubject string        `mapstructure:"credits_subject"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
}

// Relay names a (chain, chain type) pair this process signs for.
type Relay struct {
	Chain     int    `mapstructure:"chain"`
	ChainType string `mapstructure:"chain_type"`
}

type Endpoint struct {
	Chain     int    `mapstructure:"chain"`
	ChainType string `mapstructure:"chain_type"`
	URL       string `mapstructure:"url"`
}

type Indexer struct {
	Chain         int           `mapstructure:"chain"`
	ChainType     string        `mapstructure:"chain_type"`
	URL           string        `mapstructure:"url"`
	Confirmations uint64        `mapstructure:"confirmations"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type SubstrateProfile struct {
	Chain      int    `mapstructure:"chain"`
	SS58Prefix uint16 `mapstructure:"ss58_prefix"`
	EraPeriod  uint64 `mapstructure:"era_period"`
}

type Reconcile struct {
	Concurrency           int    `mapstructure:"concurrency"`
	DefaultBlockParseSize uint64 `mapstructure:"default_block_parse_size"`
}

type Resubmit struct {
	GracePeriod time.Duration `mapstructure:"grace_period"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	BatchSize   int           `mapstructure:"batch_size"`
}

type Outbox struct {
	BatchSize int           `mapstructure:"batch_size"`
	Interval  time.Duration `mapstructure:"interval"`
}

// Wallet is a seed entry applied by the migrate command.
type Wallet struct {
	Chain           int    `mapstructure:"chain"`
	ChainType       string `mapstructure:"chain_type"`
	Address         string `mapstructure:"address"`
	Seed            string `mapstructure:"seed"`
	BlockParseSize  uint64 `mapstructure:"block_parse_size"`
	MinBalance      string `mapstructure:"min_balance"`
	LastParsedBlock uint64 `mapstructure:"last_parsed_block"`
	NextNonce       uint64 `mapstructure:"next_nonce"`
}

// NewApp loads configuration from the given file (or the default search
// paths when empty) layered under CHAINRELAY_* environment variables.
func NewApp(path string) (App, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/chainrelay")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return App{}, fmt.Errorf("read config: %w", err)
		}
	}

	var app App
	if err := v.Unmarshal(&app); err != nil {
		return App{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if app.Database.DSN == "" {
		return App{}, fmt.Errorf("%w: %s", errMissingSetting, "database.dsn")
	}
	if err := app.validate(); err != nil {
		return App{}, err
	}

	return app, nil
}

// validate rejects zero values the workers would spin or panic on.
func (a App) validate() error {
	positive := []struct {
		key string
		ok  bool
	}{
		{"reconcile.concurrency", a.Reconcile.Concurrency > 0},
		{"reconcile.default_block_parse_size", a.Reconcile.DefaultBlockParseSize > 0},
		{"resubmit.grace_period", a.Resubmit.GracePeriod > 0},
		{"resubmit.max_attempts", a.Resubmit.MaxAttempts > 0},
		{"resubmit.batch_size", a.Resubmit.BatchSize > 0},
		{"outbox.batch_size", a.Outbox.BatchSize > 0},
		{"outbox.interval", a.Outbox.Interval > 0},
	}

	var errs []error
	for _, p := range positive {
		if !p.ok {
			errs = append(errs, fmt.Errorf("%w: %s", errInvalidSetting, p.key))
		}
	}
	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("database.log_sql", false)

	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.subject_prefix", "chainrelay")
	v.SetDefault("nats.jetstream", true)
	v.SetDefault("nats.credits_subject", "credits.charge")
	v.SetDefault("nats.request_timeout", "5s")
	v.SetDefault("nats.connect_timeout", "10s")
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.max_reconnects", 5)

	v.SetDefault("reconcile.concurrency", 4)
	v.SetDefault("reconcile.default_block_parse_size", 50)

	v.SetDefault("resubmit.grace_period", "30s")
	v.SetDefault("resubmit.max_attempts", 5)
	v.SetDefault("resubmit.batch_size", 50)

	v.SetDefault("outbox.batch_size", 100)
	v.SetDefault("outbox.interval", "5s")

	// env-only deployments
	_ = v.BindEnv("database.dsn", envPrefix+"_DATABASE_DSN", "DB_CONNECTION_URL")
	_ = v.BindEnv("nats.url", envPrefix+"_NATS_URL", "NATS_URL")
}
