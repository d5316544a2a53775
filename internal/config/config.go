package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/mission-control/internal/domain"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "MC"
	configName = "config"
	configType = "toml"
	configDir  = ".mission-control"
)

// Keys understood in config.toml and as MC_* environment variables
// (dots become underscores, e.g. MC_UPSTREAM_URL).
const (
	KeyListen               = "listen"
	KeyAPIKey               = "api_key"
	KeyDBPath               = "db.path"
	KeyRosterPath           = "roster.path"
	KeySecretsDir           = "secrets.dir"
	KeyUpstreamURL          = "upstream.url"
	KeyUpstreamTokenRef     = "upstream.token_ref"
	KeyUpstreamSource       = "upstream.source"
	KeyUpstreamTimeout      = "upstream.timeout"
	KeyRecencyWindow        = "ingest.recency_window"
	KeyDefaultContextTokens = "ingest.default_context_tokens"
	KeyAlertThreshold       = "ingest.alert_threshold"
	KeyAlertPolicy          = "ingest.alert_policy"
	KeyCollectInterval      = "collect.interval"
	KeyLogLevel             = "log.level"
)

type Config struct {
	Listen     string
	APIKey     string
	DBPath     string
	RosterPath string
	SecretsDir string
	Upstream   UpstreamConfig
	Ingest     IngestConfig
	// CollectInterval enables the background upstream poll in serve when
	// positive.
	CollectInterval time.Duration
	LogLevel        slog.Level
}

type UpstreamConfig struct {
	URL      string
	TokenRef string
	Source   string
	Timeout  time.Duration
}

type IngestConfig struct {
	RecencyWindow        time.Duration
	DefaultContextTokens int64
	AlertThreshold       float64
	AlertPolicy          domain.AlertPolicy
}

// New returns a viper instance with defaults, env binding and the config
// search path set. configFile, when non-empty, replaces the search path.
func New(configFile string) (*viper.Viper, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	base := filepath.Join(homeDir, configDir)

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(base)
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, base)
	return v, nil
}

func setDefaults(v *viper.Viper, base string) {
	v.SetDefault(KeyListen, "127.0.0.1:8080")
	v.SetDefault(KeyAPIKey, "")
	v.SetDefault(KeyDBPath, filepath.Join(base, "mission-control.db"))
	v.SetDefault(KeyRosterPath, filepath.Join(base, "agents.toml"))
	v.SetDefault(KeySecretsDir, filepath.Join(base, "secrets"))
	v.SetDefault(KeyUpstreamURL, "https://api.scosta.io/sessions")
	v.SetDefault(KeyUpstreamTokenRef, "upstream/token")
	v.SetDefault(KeyUpstreamSource, "board-mission-control")
	v.SetDefault(KeyUpstreamTimeout, 15*time.Second)
	v.SetDefault(KeyRecencyWindow, domain.DefaultRecencyWindow)
	v.SetDefault(KeyDefaultContextTokens, domain.DefaultContextTokens)
	v.SetDefault(KeyAlertThreshold, domain.DefaultAlertThreshold)
	v.SetDefault(KeyAlertPolicy, string(domain.AlertEveryCycle))
	v.SetDefault(KeyCollectInterval, time.Duration(0))
	v.SetDefault(KeyLogLevel, "info")
}

// Load reads the config file when present and validates the result. A
// config file missing from the search path is not an error; an explicit one
// is.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	policy, err := domain.ParseAlertPolicy(v.GetString(KeyAlertPolicy))
	if err != nil {
		return Config{}, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyLogLevel, err)
	}

	cfg := Config{
		Listen:     strings.TrimSpace(v.GetString(KeyListen)),
		APIKey:     strings.TrimSpace(v.GetString(KeyAPIKey)),
		DBPath:     v.GetString(KeyDBPath),
		RosterPath: v.GetString(KeyRosterPath),
		SecretsDir: v.GetString(KeySecretsDir),
		Upstream: UpstreamConfig{
			URL:      strings.TrimSpace(v.GetString(KeyUpstreamURL)),
			TokenRef: v.GetString(KeyUpstreamTokenRef),
			Source:   v.GetString(KeyUpstreamSource),
			Timeout:  v.GetDuration(KeyUpstreamTimeout),
		},
		Ingest: IngestConfig{
			RecencyWindow:        v.GetDuration(KeyRecencyWindow),
			DefaultContextTokens: v.GetInt64(KeyDefaultContextTokens),
			AlertThreshold:       v.GetFloat64(KeyAlertThreshold),
			AlertPolicy:          policy,
		},
		CollectInterval: v.GetDuration(KeyCollectInterval),
		LogLevel:        level,
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Listen == "" {
		errs = append(errs, fmt.Errorf("%s is required", KeyListen))
	}
	if c.DBPath == "" {
		errs = append(errs, fmt.Errorf("%s is required", KeyDBPath))
	}
	if c.Ingest.RecencyWindow <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyRecencyWindow))
	}
	if c.Ingest.DefaultContextTokens <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyDefaultContextTokens))
	}
	if c.Ingest.AlertThreshold <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyAlertThreshold))
	}
	if c.Upstream.Timeout < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", KeyUpstreamTimeout))
	}
	if c.CollectInterval < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", KeyCollectInterval))
	}
	return errors.Join(errs...)
}

func (c Config) NormalizerConfig() domain.NormalizerConfig {
	return domain.NormalizerConfig{
		RecencyWindow:        c.Ingest.RecencyWindow,
		DefaultContextTokens: c.Ingest.DefaultContextTokens,
	}
}
