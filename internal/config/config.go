package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
)

const EnvPrefix = "DISCUSSION_"

// Config is read from DISCUSSION_* environment variables, e.g.
// DISCUSSION_DATABASE_HOST maps to database.host.
type Config struct {
	Database     DatabaseConfig     `koanf:"database"`
	Cache        CacheConfig        `koanf:"cache"`
	Server       ServerConfig       `koanf:"server"`
	Lock         LockConfig         `koanf:"lock"`
	Notification NotificationConfig `koanf:"notification"`
	Log          LogConfig          `koanf:"log"`
}

type DatabaseConfig struct {
	Host string `koanf:"host"`
	Port string `koanf:"port"`
	User string `koanf:"user"`
	Pass string `koanf:"pass"`
	Name string `koanf:"name"`
}

// DSN is the go-sql-driver/mysql connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=1&loc=UTC", c.User, c.Pass, c.Host, c.Port, c.Name)
}

type CacheConfig struct {
	Host string `koanf:"host"`
	Port string `koanf:"port"`
	Pass string `koanf:"pass"`
	DB   int    `koanf:"db"`
}

func (c CacheConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type ServerConfig struct {
	Address string `koanf:"address"`
	Timeout int    `koanf:"timeout"` // seconds
}

type LockConfig struct {
	TTL   time.Duration `koanf:"ttl"`
	Retry time.Duration `koanf:"retry"`
}

type NotificationConfig struct {
	QueueSize     int           `koanf:"queue_size"`
	BatchSize     int           `koanf:"batch_size"`
	FlushInterval time.Duration `koanf:"flush_interval"`
	Concurrency   int           `koanf:"concurrency"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

// Load reads an optional .env file and then the environment. Anything not
// set keeps its default.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	}

	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(key string) string {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		// only the first underscore separates section from field
		return strings.Replace(key, "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Host: "localhost", Port: "3306", User: "root", Name: "discussions"},
		Cache:    CacheConfig{Host: "localhost", Port: "6379"},
		Server:   ServerConfig{Address: ":9090", Timeout: 30},
		Lock:     LockConfig{TTL: 10 * time.Second, Retry: 20 * time.Millisecond},
		Notification: NotificationConfig{
			QueueSize:     1024,
			BatchSize:     100,
			FlushInterval: time.Second,
			Concurrency:   8,
		},
		Log: LogConfig{Level: "info"},
	}
}

// ApplyLogLevel configures logrus; an unknown level keeps the current one.
func (c *Config) ApplyLogLevel() {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		logrus.Warnf("unknown log level %q, keeping %s", c.Log.Level, logrus.GetLevel())
		return
	}
	logrus.SetLevel(level)
}
