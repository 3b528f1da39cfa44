// Package kernel is the composition root: it owns the database handle, the
// stores, the token service and the HTTP handler built from them. Nothing
// below it reaches for globals; everything is passed in from here.
package kernel

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizza-delivery-api/app/controllers"
	"github.com/shashiranjanraj/pizza-delivery-api/app/repositories"
	"github.com/shashiranjanraj/pizza-delivery-api/app/routes"
	"github.com/shashiranjanraj/pizza-delivery-api/app/services"
	"github.com/shashiranjanraj/pizza-delivery-api/config"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/auth"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/database"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/logger"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/metrics"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/middleware"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/reqid"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/response"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/router"
)

// Kernel holds every long-lived dependency of the API.
type Kernel struct {
	Config    *config.Config
	DB        *gorm.DB
	Redis     *redis.Client // nil unless BLOCKLIST_DRIVER=redis
	Tokens    *auth.TokenService
	Users     repositories.UserStore
	Orders    repositories.OrderStore
	Blocklist repositories.TokenBlocklist

	router *router.Router
}

// Boot connects the configured database (and Redis when selected) and
// builds the kernel.
func Boot(ctx context.Context, cfg *config.Config) (*Kernel, error) {
	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("kernel: %w", err)
	}

	var (
		rdb       *redis.Client
		blocklist repositories.TokenBlocklist
	)
	switch cfg.BlocklistDriver {
	case config.BlocklistRedis:
		rdb, err = database.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("kernel: %w", err)
		}
		blocklist = repositories.NewRedisBlocklist(rdb)
	default:
		blocklist = repositories.NewBlocklistRepository(db)
	}

	if cfg.UsesDefaultSecret() && cfg.AppEnv != "local" && cfg.AppEnv != "test" {
		logger.Warn("JWT_SECRET is the built-in default; set a real secret", "env", cfg.AppEnv)
	}

	k := New(cfg, db, blocklist)
	k.Redis = rdb
	return k, nil
}

// New builds a kernel over an open database and revocation registry.
func New(cfg *config.Config, db *gorm.DB, blocklist repositories.TokenBlocklist) *Kernel {
	k := &Kernel{
		Config:    cfg,
		DB:        db,
		Tokens:    auth.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		Users:     repositories.NewUserRepository(db),
		Orders:    repositories.NewOrderRepository(db),
		Blocklist: blocklist,
	}
	k.router = k.buildRouter()
	return k
}

// Handler returns the HTTP handler with the global middleware stack.
func (k *Kernel) Handler() http.Handler { return k.router.Handler() }

// Routes lists every registered route.
func (k *Kernel) Routes() []router.Route { return k.router.Routes() }

// Health reports whether the backing stores answer.
func (k *Kernel) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx, k.DB); err != nil {
		return err
	}
	if k.Redis != nil {
		if err := k.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("kernel: redis ping: %w", err)
		}
	}
	return nil
}

// Close releases the database and Redis connections.
func (k *Kernel) Close() error {
	if k.Redis != nil {
		if err := k.Redis.Close(); err != nil {
			logger.Warn("kernel: close redis", "error", err)
		}
	}
	return database.Close(k.DB)
}

func (k *Kernel) buildRouter() *router.Router {
	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics: outermost for accurate total latency
	//  2. Request ID       : inject unique ID before anything logs
	//  3. Logger           : logs request_id from context
	//  4. Recovery         : panics become a logged 500
	//  5. CORS             : set CORS headers, answer preflights
	//  6. Body limit       : cap JSON payloads
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(k.Config.CORSAllowedOrigins)))
	r.Use(middleware.BodyLimit(k.Config.MaxBodyBytes))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusNotFound, map[string]string{"error": "URL Not Found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/health", "health", k.healthHandler)

	authService := services.NewAuthService(k.Users, k.Blocklist, k.Tokens)
	orderService := services.NewOrderService(k.Orders, k.Users)

	guard := func(expected auth.TokenType) router.Middleware {
		return middleware.Authenticate(k.Tokens, k.Blocklist, expected)
	}

	routes.RegisterAPI(r,
		controllers.NewAuthController(authService),
		controllers.NewOrderController(orderService),
		guard,
	)

	return r
}

func (k *Kernel) healthHandler(w http.ResponseWriter, r *http.Request) {
	if err := k.Health(r.Context()); err != nil {
		logger.WithCtx(r.Context()).Error("health check failed", "error", err)
		response.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
