package config

import (
	"fmt"
	"strings"
	"sync"

	"gclub-api/core/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Recruit  RecruitConfig  `mapstructure:"recruit"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	DBName         string `mapstructure:"dbname"`
	SSLMode        string `mapstructure:"sslmode"`
	MigrationsPath string `mapstructure:"migrations_path"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type RecruitConfig struct {
	GracePeriodMinutes int    `mapstructure:"grace_period_minutes"`
	PromoteDueCron     string `mapstructure:"promote_due_cron"`
	AdvancePostsCron   string `mapstructure:"advance_posts_cron"`
}

var (
	instance *Config
	once     sync.Once
)

// Load reads config.yaml plus environment overrides (GCLUB_ prefix) and
// memoizes the result. Missing .env is not an error.
func Load() (*Config, error) {
	var loadErr error
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			logger.Info("config: no .env file, using process environment")
		}

		v := viper.New()
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")

		v.SetEnvPrefix("GCLUB")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		v.SetDefault("server.host", "0.0.0.0")
		v.SetDefault("server.port", 7070)
		v.SetDefault("database.port", 5432)
		v.SetDefault("database.sslmode", "disable")
		v.SetDefault("database.migrations_path", "migrations")
		v.SetDefault("redis.addr", "localhost:6379")
		v.SetDefault("recruit.grace_period_minutes", 60)
		v.SetDefault("recruit.promote_due_cron", "@every 1m")
		v.SetDefault("recruit.advance_posts_cron", "@every 1m")

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				loadErr = fmt.Errorf("read config: %w", err)
				return
			}
			logger.Warn("config: no config file found, using env and defaults")
		}

		cfg := &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			loadErr = fmt.Errorf("unmarshal config: %w", err)
			return
		}
		instance = cfg
	})
	return instance, loadErr
}

// Get returns the loaded config; it panics when called before Load.
func Get() *Config {
	if instance == nil {
		panic("config: Get called before Load")
	}
	return instance
}

// GetSafe returns the config and whether it has been initialized.
func GetSafe() (*Config, bool) {
	return instance, instance != nil
}
