// -----------------------------------------------------------------------------
// Application Bootstrap
// -----------------------------------------------------------------------------
// Config'ten tüm bileşenleri kurar: veritabanı registry'si, session manager
// (memory, redis veya cookie driver), upload storage ve router.
//
// Kullanım:
//
//	a, err := app.New(ctx, cfg, logging.Std())
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//	http.ListenAndServe(":"+cfg.Server.Port, a.Handler())
// -----------------------------------------------------------------------------

package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/biyonik/atom/internal/config"
	"github.com/biyonik/atom/internal/controllers"
	"github.com/biyonik/atom/internal/middleware"
	"github.com/biyonik/atom/internal/repositories"
	"github.com/biyonik/atom/internal/router"
	"github.com/biyonik/atom/pkg/auth"
	"github.com/biyonik/atom/pkg/cache"
	"github.com/biyonik/atom/pkg/database"
	"github.com/biyonik/atom/pkg/session"
	"github.com/biyonik/atom/pkg/storage"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// PruneInterval, memory session driver'ında süresi dolmuş kayıtların
// temizlenme aralığı.
var PruneInterval = 5 * time.Minute

// Logger interface - dependency injection için
type Logger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// App, çalışan uygulamanın bileşenlerini bir arada tutar.
type App struct {
	Config   *config.Config
	Registry *database.Registry
	DB       *sqlx.DB
	Sessions *session.Manager
	Storage  *storage.LocalStorage
	Router   *router.Router

	logger Logger
	redis  *redis.Client
	memory *cache.MemoryCache
	cancel context.CancelFunc
	hasher *auth.Hasher
}

// Option, App yapılandırma seçeneği.
type Option func(*App)

// WithHasher, varsayılan bcrypt maliyetini değiştirir (testlerde MinCost).
func WithHasher(h *auth.Hasher) Option {
	return func(a *App) { a.hasher = h }
}

// New, config'e göre uygulamayı kurar. Hata durumunda açılan kaynaklar kapatılır.
func New(ctx context.Context, cfg *config.Config, logger Logger, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{
		Config:   cfg,
		Registry: database.NewRegistry(logger),
		logger:   logger,
		hasher:   auth.NewHasher(auth.DefaultCost),
	}
	for _, opt := range opts {
		opt(a)
	}

	if err := a.boot(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) boot(ctx context.Context) error {
	cfg := a.Config

	// 1. Database
	db, err := a.Registry.Connect(ctx, cfg.Database())
	if err != nil {
		return err
	}
	a.DB = db

	// 2. Session
	handler, err := a.sessionHandler(ctx)
	if err != nil {
		return err
	}
	a.Sessions = session.NewManager(handler, a.logger,
		session.WithCookieName(cfg.Session.Cookie),
		session.WithLifetime(cfg.Session.Lifetime),
		session.WithSecure(cfg.IsProduction()),
	)

	// 3. Storage
	store, err := storage.NewLocalStorage(cfg.Storage.Path, a.logger)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	store.SetBaseURL(cfg.Storage.URL)
	a.Storage = store

	// 4. Router
	r := router.New(router.WithAPIMode(cfg.App.APIMode))
	r.Use(middleware.PanicRecovery(a.logger))
	r.Use(middleware.Logging)
	if cfg.App.APIMode && cfg.App.CORSOrigin != "" {
		r.Use(middleware.CORS(cfg.App.CORSOrigin))
	}
	r.Use(middleware.Session(a.Sessions))

	users := repositories.NewUserRepository(db, a.hasher)
	controllers.RegisterUserRoutes(r, controllers.NewUserController(users, store))
	a.Router = r

	return nil
}

// sessionHandler, SESSION_DRIVER'a göre session persistence katmanını seçer.
func (a *App) sessionHandler(ctx context.Context) (session.Handler, error) {
	cfg := a.Config

	switch cfg.Session.Driver {
	case "redis":
		client, err := cache.NewRedisClient(ctx, cfg.RedisConfig(), a.logger)
		if err != nil {
			return nil, err
		}
		a.redis = client
		return session.NewCacheHandler(cache.NewRedisCache(client, a.logger, cfg.Redis.Prefix)), nil

	case "cookie":
		return session.NewCookieHandler([]byte(cfg.Session.Secret), cfg.App.Name)

	default:
		a.memory = cache.NewMemoryCache(a.logger)
		pruneCtx, cancel := context.WithCancel(context.Background())
		a.cancel = cancel
		go a.prune(pruneCtx)
		return session.NewCacheHandler(a.memory), nil
	}
}

// prune, memory cache'teki süresi dolmuş oturumları periyodik olarak siler.
func (a *App) prune(ctx context.Context) {
	ticker := time.NewTicker(PruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.memory.Prune()
		}
	}
}

// Handler, router'ı ve yüklenen dosyaları sunan http.Handler döndürür.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()

	prefix := strings.TrimRight(a.Config.Storage.URL, "/")
	if strings.HasPrefix(prefix, "/") && prefix != "" {
		files := http.FileServer(http.Dir(a.Storage.BasePath()))
		mux.Handle(http.MethodGet+" "+prefix+"/", http.StripPrefix(prefix+"/", files))
	}

	mux.Handle("/", a.Router)
	return mux
}

// Close, açık bağlantıları kapatır.
func (a *App) Close() error {
	if a.cancel != nil {
		a.cancel()
	}

	var firstErr error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			firstErr = err
		}
	}
	if err := a.Registry.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
