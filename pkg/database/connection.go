// -----------------------------------------------------------------------------
// Database Package - Connection Registry
// -----------------------------------------------------------------------------
// Bu dosya, uygulamanın veritabanı bağlantılarını merkezi olarak yöneten
// Registry yapısını içerir. Her (driver, host, database) üçlüsü için en fazla
// bir bağlantı açılır ve süreç boyunca yeniden kullanılır.
//
// Registry global bir değişken değildir; uygulama kökünde (internal/app)
// oluşturulur ve ihtiyaç duyan bileşenlere enjekte edilir.
// -----------------------------------------------------------------------------

package database

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func init() {
	// modernc.org/sqlite "sqlite" adıyla kayıt olur; sqlx bu adı tanımıyor.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Logger interface - dependency injection için
type Logger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// Key, tek bir bağlantıyı tanımlayan karşılaştırılabilir değer tipidir.
// String birleştirme yerine struct kullanıldığı için anahtar çakışması olmaz.
type Key struct {
	Driver   string
	Host     string
	Database string
}

// String, anahtarı "driver/host/database" biçiminde döndürür (loglar için).
func (k Key) String() string {
	return k.Driver + "/" + k.Host + "/" + k.Database
}

// Config, bir bağlantı için gereken tüm bilgileri taşır.
type Config struct {
	Driver   string // DB_CONNECTION: mysql, pgsql, postgres, pgx, sqlite
	Host     string
	User     string
	Password string
	Database string
	Port     string
}

// Key, config'in registry anahtarını döndürür.
func (c Config) Key() Key {
	return Key{Driver: c.Driver, Host: c.Host, Database: c.Database}
}

// DriverName, DB_CONNECTION şemasını database/sql'e kayıtlı sürücü adına çevirir.
func DriverName(scheme string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "mysql", "mariadb":
		return "mysql", nil
	case "pgsql", "postgres", "postgresql":
		return "postgres", nil
	case "pgx":
		return "pgx", nil
	case "sqlite", "sqlite3":
		return "sqlite", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, scheme)
	}
}

// DSN, sürücüye özgü bağlantı string'ini üretir.
//
// Örnekler:
//
//	mysql  → user:pass@tcp(127.0.0.1:3306)/app?parseTime=true
//	pgsql  → host='127.0.0.1' port='5432' user='u' password='p' dbname='app' sslmode='disable'
//	sqlite → /var/data/app.db
func (c Config) DSN() (string, error) {
	driver, err := DriverName(c.Driver)
	if err != nil {
		return "", err
	}

	switch driver {
	case "mysql":
		mc := mysql.NewConfig()
		mc.User = c.User
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(c.Host, c.portOr("3306"))
		mc.DBName = c.Database
		mc.ParseTime = true
		return mc.FormatDSN(), nil

	case "postgres", "pgx":
		pairs := map[string]string{
			"host":     c.Host,
			"port":     c.portOr("5432"),
			"user":     c.User,
			"password": c.Password,
			"dbname":   c.Database,
			"sslmode":  "disable",
		}
		keys := make([]string, 0, len(pairs))
		for k, v := range pairs {
			if v != "" {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + "=" + quoteKeyword(pairs[k])
		}
		return strings.Join(parts, " "), nil

	default: // sqlite
		return c.Database, nil
	}
}

func (c Config) portOr(def string) string {
	if c.Port == "" {
		return def
	}
	return c.Port
}

// quoteKeyword, libpq keyword/value formatında değeri tırnaklar.
func quoteKeyword(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// Opener, yeni bir bağlantı açan fonksiyon tipidir. Testlerde değiştirilebilir.
type Opener func(ctx context.Context, driverName, dsn string) (*sqlx.DB, error)

// Open, varsayılan Opener'dır: sqlx.Open + havuz ayarları + Ping.
func Open(ctx context.Context, driverName, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	if driverName == "sqlite" {
		// SQLite tek yazıcı ile çalışır.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// RegistryOption, Registry'yi yapılandıran fonksiyon tipidir.
type RegistryOption func(*Registry)

// WithOpener, bağlantı açma fonksiyonunu değiştirir.
func WithOpener(open Opener) RegistryOption {
	return func(r *Registry) {
		r.open = open
	}
}

// Registry, anahtar başına tek bir *sqlx.DB tutan bağlantı önbelleğidir.
// Bağlantılar yalnızca Close() ile kapatılır; builder'lar asla kapatmaz.
type Registry struct {
	mu     sync.Mutex
	conns  map[Key]*sqlx.DB
	open   Opener
	logger Logger
}

// NewRegistry, boş bir Registry oluşturur.
func NewRegistry(logger Logger, opts ...RegistryOption) *Registry {
	r := &Registry{
		conns:  make(map[Key]*sqlx.DB),
		open:   Open,
		logger: logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Connect, cfg.Key() için önbellekteki bağlantıyı döndürür; yoksa yenisini
// açar ve ilk kullanımdan önce önbelleğe yazar.
//
// Arama tamamen anahtar bazlıdır: başka anahtarlar önbellekte olsa bile
// eksik bir anahtar için her zaman yeni bir bağlantı açılır. Bağlantı kilit
// dışında açılır; yavaş bir sunucu diğer anahtarları bekletmez. Aynı anahtar
// için eşzamanlı açılışlarda önbelleğe ilk yazılan kazanır, diğeri kapatılır.
//
// Hata durumunda *ConnectionError döner (errors.Is(err, ErrConnectionFailed)).
// Yeniden deneme yapılmaz.
func (r *Registry) Connect(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	key := cfg.Key()

	if db, ok := r.lookup(key); ok {
		return db, nil
	}

	driverName, err := DriverName(cfg.Driver)
	if err != nil {
		return nil, &ConnectionError{Key: key, Err: err}
	}
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, &ConnectionError{Key: key, Err: err}
	}

	r.logger.Printf("Veritabanına bağlanılıyor: %s", key)
	db, err := r.open(ctx, driverName, dsn)
	if err != nil {
		r.logger.Printf("❌ Veritabanı bağlantı hatası [%s]: %v", key, err)
		return nil, &ConnectionError{Key: key, Err: err}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.conns[key]; ok {
		db.Close()
		return existing, nil
	}
	r.conns[key] = db
	r.logger.Printf("✅ Veritabanı bağlantısı başarılı: %s", key)
	return db, nil
}

func (r *Registry) lookup(key Key) (*sqlx.DB, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	db, ok := r.conns[key]
	return db, ok
}

// Builder, cfg bağlantısı üzerinde table tablosu için yeni bir QueryBuilder döndürür.
func (r *Registry) Builder(ctx context.Context, cfg Config, table string) (*QueryBuilder, error) {
	db, err := r.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(db, GrammarFor(db.DriverName()), table), nil
}

// Len, önbellekteki bağlantı sayısını döndürür.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}

// Close, tüm bağlantıları kapatır ve önbelleği boşaltır.
// Graceful shutdown sırasında çağrılmalı.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for key, db := range r.conns {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close %s: %w", key, err)
		}
		delete(r.conns, key)
	}
	return firstErr
}
