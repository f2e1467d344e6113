package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/fatflowers/motorvault/pkg/types"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type StorageConfig struct {
	// Path is the sqlite database file backing the key-value store.
	// ":memory:" is accepted for throwaway runs.
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	// TokenSecret signs the mock session tokens minted at login. There is no
	// real identity backend; the token only carries the local user id.
	TokenSecret   string `mapstructure:"token_secret"`
	TrialDays     int    `mapstructure:"trial_days"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours"`
}

type Env string

const (
	EnvDev  Env = "dev"
	EnvProd Env = "prod"
)

type Config struct {
	Env         Env                       `mapstructure:"env"`
	Server      ServerConfig              `mapstructure:"server"`
	Storage     StorageConfig             `mapstructure:"storage"`
	Auth        AuthConfig                `mapstructure:"auth"`
	Plans       []*types.SubscriptionPlan `mapstructure:"plans"`
	MetricsAddr string                    `mapstructure:"metrics_addr"`
}

func (c *Config) GetPlanByID(id string) *types.SubscriptionPlan {
	for _, plan := range c.Plans {
		if plan.ID == id {
			return plan
		}
	}
	return nil
}

func New() (*Config, error) {
	v := viper.New()
	// Allow overriding config file via env:
	// - APP_CONFIG_FILE: absolute or relative file path (e.g., /etc/app/prod.yaml)
	// - APP_CONFIG_NAME: config base name without extension (default: "config")
	if file := os.Getenv("APP_CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
	} else {
		cfgName := os.Getenv("APP_CONFIG_NAME")
		if cfgName == "" {
			cfgName = "config"
		}
		v.SetConfigName(cfgName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("env", "dev")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8888)
	v.SetDefault("storage.path", "motorvault.db")
	v.SetDefault("auth.token_secret", "dev-only-secret")
	v.SetDefault("auth.trial_days", 14)
	v.SetDefault("auth.token_ttl_hours", 24*30)
	v.SetDefault("metrics_addr", ":90")

	if err := v.ReadInConfig(); err != nil {
		_ = err
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if len(c.Plans) == 0 {
		c.Plans = DefaultPlans()
	}
	return &c, nil
}

// DefaultPlans is the built-in plan catalog used when none is configured.
func DefaultPlans() []*types.SubscriptionPlan {
	return []*types.SubscriptionPlan{
		{ID: "3-months", Name: "3 Months Plan", DurationMonths: 3, MonthlyPrice: 2500, TotalPrice: 7500},
		{ID: "6-months", Name: "6 Months Plan", DurationMonths: 6, MonthlyPrice: 2000, TotalPrice: 12000, Savings: "Save ₦3,000"},
		{ID: "12-months", Name: "12 Months Plan", DurationMonths: 12, MonthlyPrice: 1666.67, TotalPrice: 20000, Savings: "Save ₦10,000"},
	}
}

var Module = fx.Options(
	fx.Provide(New),
)
