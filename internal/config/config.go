// -----------------------------------------------------------------------------
// Config Package
// -----------------------------------------------------------------------------
// Uygulamanın merkezi konfigürasyon yönetimi. Değerler önce .env dosyasından
// (godotenv, dosya yoksa atlanır) ortama yüklenir, ardından viper ile tipli
// olarak okunur. Ortamda zaten tanımlı değişkenler .env tarafından ezilmez.
// -----------------------------------------------------------------------------

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/biyonik/atom/pkg/cache"
	"github.com/biyonik/atom/pkg/database"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// defaultSessionSecret, geliştirme ortamı için varsayılan imza anahtarı.
const defaultSessionSecret = "atom-development-session-secret-change-me"

// Config, uygulamanın merkezi yapılandırma nesnesidir.
type Config struct {
	App struct {
		Name       string // Uygulama adı
		Env        string // Ortam (development, production, test)
		APIMode    bool   // URI'den "/api" önekini at
		LogLevel   string
		CORSOrigin string
	}

	Server struct {
		Port string
	}

	DB struct {
		Connection string // mysql, pgsql, pgx, sqlite
		Host       string
		User       string
		Password   string
		Name       string
		Port       string
	}

	Session struct {
		Driver   string // memory, redis, cookie
		Cookie   string
		Lifetime time.Duration
		Secret   string
	}

	Redis struct {
		Host     string
		Port     int
		Password string
		DB       int
		Prefix   string
	}

	Storage struct {
		Path string
		URL  string
	}
}

var defaults = map[string]any{
	"APP_NAME":         "Atom",
	"APP_ENV":          "development",
	"APP_API_MODE":     false,
	"LOG_LEVEL":        "info",
	"CORS_ORIGIN":      "*",
	"PORT":             "8000",
	"DB_CONNECTION":    "mysql",
	"DB_HOST":          "127.0.0.1",
	"DB_USER":          "root",
	"DB_PASSWORD":      "",
	"DB_NAME":          "atom",
	"DB_PORT":          "",
	"SESSION_DRIVER":   "memory",
	"SESSION_COOKIE":   "atom_session",
	"SESSION_LIFETIME": 7200,
	"SESSION_SECRET":   defaultSessionSecret,
	"REDIS_HOST":       "127.0.0.1",
	"REDIS_PORT":       6379,
	"REDIS_PASSWORD":   "",
	"REDIS_DB":         0,
	"REDIS_PREFIX":     "atom:",
	"STORAGE_PATH":     "./storage/uploads",
	"STORAGE_URL":      "/uploads",
}

// Load, .env dosyalarını (varsayılan ".env") ortama yükler ve Config döndürür.
//
// Örnek kullanım:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	logging.Infof("Environment: %s", cfg.App.Env)
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := &Config{}

	cfg.App.Name = v.GetString("APP_NAME")
	cfg.App.Env = v.GetString("APP_ENV")
	cfg.App.APIMode = v.GetBool("APP_API_MODE")
	cfg.App.LogLevel = v.GetString("LOG_LEVEL")
	cfg.App.CORSOrigin = v.GetString("CORS_ORIGIN")

	cfg.Server.Port = v.GetString("PORT")

	cfg.DB.Connection = v.GetString("DB_CONNECTION")
	cfg.DB.Host = v.GetString("DB_HOST")
	cfg.DB.User = v.GetString("DB_USER")
	cfg.DB.Password = v.GetString("DB_PASSWORD")
	cfg.DB.Name = v.GetString("DB_NAME")
	cfg.DB.Port = v.GetString("DB_PORT")

	cfg.Session.Driver = v.GetString("SESSION_DRIVER")
	cfg.Session.Cookie = v.GetString("SESSION_COOKIE")
	cfg.Session.Lifetime = time.Duration(v.GetInt("SESSION_LIFETIME")) * time.Second
	cfg.Session.Secret = v.GetString("SESSION_SECRET")

	cfg.Redis.Host = v.GetString("REDIS_HOST")
	cfg.Redis.Port = v.GetInt("REDIS_PORT")
	cfg.Redis.Password = v.GetString("REDIS_PASSWORD")
	cfg.Redis.DB = v.GetInt("REDIS_DB")
	cfg.Redis.Prefix = v.GetString("REDIS_PREFIX")

	cfg.Storage.Path = v.GetString("STORAGE_PATH")
	cfg.Storage.URL = v.GetString("STORAGE_URL")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate, config değerlerinin geçerliliğini kontrol eder.
func (c *Config) Validate() error {
	switch c.Session.Driver {
	case "memory", "redis", "cookie":
	default:
		return fmt.Errorf("geçersiz SESSION_DRIVER: %s (memory, redis veya cookie olmalı)", c.Session.Driver)
	}

	if c.Session.Lifetime <= 0 {
		return fmt.Errorf("SESSION_LIFETIME pozitif olmalı")
	}

	if _, err := database.DriverName(c.DB.Connection); err != nil {
		return fmt.Errorf("geçersiz DB_CONNECTION: %w", err)
	}

	if c.Session.Driver == "cookie" && len(c.Session.Secret) < 32 {
		return fmt.Errorf("SESSION_SECRET cookie driver için en az 32 karakter olmalı")
	}

	if c.IsProduction() && c.Session.Secret == defaultSessionSecret {
		return fmt.Errorf("SESSION_SECRET production'da değiştirilmelidir")
	}

	return nil
}

// IsProduction, production ortamında olup olmadığını kontrol eder.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Database, registry için veritabanı yapılandırmasını döndürür.
func (c *Config) Database() database.Config {
	return database.Config{
		Driver:   c.DB.Connection,
		Host:     c.DB.Host,
		User:     c.DB.User,
		Password: c.DB.Password,
		Database: c.DB.Name,
		Port:     c.DB.Port,
	}
}

// RedisConfig, session redis driver'ı için bağlantı yapılandırmasını döndürür.
func (c *Config) RedisConfig() *cache.RedisConfig {
	rc := cache.DefaultRedisConfig()
	rc.Host = c.Redis.Host
	rc.Port = c.Redis.Port
	rc.Password = c.Redis.Password
	rc.DB = c.Redis.DB
	return rc
}
