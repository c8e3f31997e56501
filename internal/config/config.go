package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DataSourceXLSX     = "xlsx"
	DataSourcePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	TemplatesDir string
}

// DataConfig - пути к исходным таблицам и выбор источника
type DataConfig struct {
	Source             string
	MainDataPath       string
	CongestionDataPath string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	Enabled        bool
	SeriesCacheTTL time.Duration
	StatsCacheTTL  time.Duration
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// .env не обязателен, достаточно переменных окружения
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("API_HOST"),
			Port:         v.GetInt("API_PORT"),
			Env:          v.GetString("API_ENV"),
			TemplatesDir: v.GetString("TEMPLATES_DIR"),
		},
		Data: DataConfig{
			Source:             strings.ToLower(strings.TrimSpace(v.GetString("DATA_SOURCE"))),
			MainDataPath:       v.GetString("MAIN_DATA_PATH"),
			CongestionDataPath: v.GetString("CONGESTION_DATA_PATH"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			Enabled:        v.GetBool("CACHE_ENABLED"),
			SeriesCacheTTL: time.Duration(v.GetInt("SERIES_CACHE_TTL")) * time.Second,
			StatsCacheTTL:  time.Duration(v.GetInt("STATS_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Server.TemplatesDir == "" {
		cfg.Server.TemplatesDir = "templates"
	}
	if cfg.Data.Source == "" {
		cfg.Data.Source = DataSourceXLSX
	}
	if cfg.Data.MainDataPath == "" {
		cfg.Data.MainDataPath = "태양광_ESS_필요면적_정확단위_결과.xlsx"
	}
	if cfg.Data.CongestionDataPath == "" {
		cfg.Data.CongestionDataPath = "혼잡도_요일별_시간별_요약.xlsx"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 5
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 2
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Cache.SeriesCacheTTL == 0 {
		cfg.Cache.SeriesCacheTTL = time.Hour
	}
	if cfg.Cache.StatsCacheTTL == 0 {
		cfg.Cache.StatsCacheTTL = time.Hour
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg
}

// Validate проверяет согласованность настроек источника данных
func (c *Config) Validate() error {
	switch c.Data.Source {
	case DataSourceXLSX:
		if c.Data.MainDataPath == "" || c.Data.CongestionDataPath == "" {
			return fmt.Errorf("xlsx data source requires MAIN_DATA_PATH and CONGESTION_DATA_PATH")
		}
	case DataSourcePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("postgres data source requires DB_HOST and DB_NAME")
		}
	default:
		return fmt.Errorf("unknown DATA_SOURCE %q (expected %q or %q)", c.Data.Source, DataSourceXLSX, DataSourcePostgres)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// DSN - строка подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.DBName,
		c.SSLMode,
	)
}

// Addr - адрес Redis
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
