package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/gw-cambio/internal/handlers"
	"github.com/sbilibin2017/gw-cambio/internal/jwt"
	"github.com/sbilibin2017/gw-cambio/internal/logger"
	"github.com/sbilibin2017/gw-cambio/internal/middlewares"
	"github.com/sbilibin2017/gw-cambio/internal/quote"
	"github.com/sbilibin2017/gw-cambio/internal/repositories"
	"github.com/sbilibin2017/gw-cambio/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// Rate store backends selectable with RATE_STORE.
const (
	rateStoreRedis    = "redis"
	rateStorePostgres = "postgres"
)

// rateStore is implemented by both rate repositories.
type rateStore interface {
	services.RateReader
	services.RateWriter
}

// @title gw-cambio API
// @version 1.0.0
// @description BRL to PYG/USD conversion quotes with fee and banknote reconciliation
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel, store,
		redisHost, redisPort, redisDB, redisPassword,
		redisPoolSize, redisMinIdleConns,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		adminPassword, jwtSecret, jwtExp,
		kafkaBrokers, kafkaTopic,
		quoteConvergence,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel, store,
		redisHost, redisPort, redisDB, redisPassword,
		redisPoolSize, redisMinIdleConns,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		adminPassword, jwtSecret, jwtExp,
		kafkaBrokers, kafkaTopic,
		quoteConvergence,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// defaultJWTSecretKey is only usable while admin login is disabled.
const defaultJWTSecretKey = "my_super_secret_key"

var errJWTSecretRequired = errors.New("JWT_SECRET_KEY must be set when ADMIN_PASSWORD is set")

// parseConfig loads environment variables from a file and returns
// the application, rate store, admin, Kafka and quote configuration.
func parseConfig(path string) (
	appHost, appPort, logLevel, store string,
	redisHost string, redisPort, redisDB int, redisPassword string,
	redisPoolSize, redisMinIdleConns int,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	adminPassword, jwtSecretKey string, jwtExpSecond int,
	kafkaBrokers, kafkaTopic string,
	quoteConvergence int,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	store = strings.ToLower(getEnv("RATE_STORE", rateStoreRedis))
	if store != rateStoreRedis && store != rateStorePostgres {
		err = fmt.Errorf("unsupported RATE_STORE %q", store)
		return
	}

	// Redis config
	redisHost = getEnv("REDIS_HOST", "localhost")
	if redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	redisPassword = getEnv("REDIS_PASSWORD", "")
	if redisPoolSize, err = strconv.Atoi(getEnv("REDIS_POOL_SIZE", "10")); err != nil {
		return
	}
	if redisMinIdleConns, err = strconv.Atoi(getEnv("REDIS_MIN_IDLE_CONNS", "2")); err != nil {
		return
	}

	// PostgreSQL config
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "database")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Admin and JWT config
	adminPassword = getEnv("ADMIN_PASSWORD", "")
	jwtSecretKey = getEnv("JWT_SECRET_KEY", defaultJWTSecretKey)
	if jwtExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "3600")); err != nil {
		return
	}
	// Tokens signed with the public default would let anyone forge admin access.
	if adminPassword != "" && jwtSecretKey == defaultJWTSecretKey {
		err = errJWTSecretRequired
		return
	}

	// Kafka config, no brokers disables publishing
	kafkaBrokers = getEnv("KAFKA_BROKERS", "")
	kafkaTopic = getEnv("KAFKA_RATES_TOPIC", "cambio.rates")

	// Quote engine config
	if quoteConvergence, err = strconv.Atoi(getEnv("QUOTE_CONVERGENCE", "0")); err != nil {
		return
	}

	return
}

// run initializes the logger, rate store, Kafka writer and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context,
	appHost, appPort, logLevel, store string,
	redisHost string, redisPort, redisDB int, redisPassword string,
	redisPoolSize, redisMinIdleConns int,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	adminPassword, jwtSecretKey string, jwtExpSecond int,
	kafkaBrokers, kafkaTopic string,
	quoteConvergence int,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infow("logger initialized", "level", logLevel)

	// Connect to the rate store
	var rates rateStore
	switch store {
	case rateStorePostgres:
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			pgUser, pgPassword, pgHost, pgPort, pgDB)
		logger.Log.Infow("connecting to PostgreSQL", "host", pgHost, "port", pgPort, "db", pgDB)

		db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
		if err != nil {
			return fmt.Errorf("PostgreSQL connection error: %w", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(pgMaxOpenConns)
		db.SetMaxIdleConns(pgMaxIdleConns)

		repo := repositories.NewRatePostgresRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("PostgreSQL schema error: %w", err)
		}
		rates = repo
	default:
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", redisHost, redisPort),
			Password:     redisPassword,
			DB:           redisDB,
			PoolSize:     redisPoolSize,
			MinIdleConns: redisMinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("Redis connection error: %w", err)
		}
		defer rdb.Close()
		rates = repositories.NewRateRedisRepository(rdb)
	}
	logger.Log.Infow("rate store connected", "store", store)

	// Kafka writer for rate-updated events
	var kafkaWriter services.KafkaWriter
	if kafkaBrokers != "" {
		w := &kafka.Writer{
			Addr:                   kafka.TCP(strings.Split(kafkaBrokers, ",")...),
			Topic:                  kafkaTopic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		}
		defer w.Close()
		kafkaWriter = w
		logger.Log.Infow("Kafka writer configured", "brokers", kafkaBrokers, "topic", kafkaTopic)
	}

	// Initialize JWT
	tokens := jwt.New(
		jwt.WithSecretKey(jwtSecretKey),
		jwt.WithExpiration(time.Duration(jwtExpSecond)*time.Second),
	)

	// Initialize the quote engine
	var solverOpts []quote.Option
	if quoteConvergence > 0 {
		solverOpts = append(solverOpts, quote.WithConvergence(quoteConvergence))
	}
	solver := quote.NewSolver(solverOpts...)

	// Initialize services
	quoteService := services.NewQuoteService(rates, solver)
	rateService := services.NewRateService(rates, rates, kafkaWriter)
	authService, err := services.NewAdminAuthService(adminPassword, tokens)
	if err != nil {
		return fmt.Errorf("admin auth setup error: %w", err)
	}

	r := newRouter(appHost, appPort, quoteService, rateService, authService, tokens)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infow("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}

// newRouter mounts the API under /api/v1. Only rate updates need a token.
func newRouter(
	appHost, appPort string,
	quoter handlers.Quoter,
	rateService interface {
		handlers.RateGetter
		handlers.RateSetter
	},
	loginer handlers.AdminLoginer,
	tokener middlewares.Tokener,
) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/rates", handlers.NewGetRatesHandler(rateService))
		r.Get("/delivery-options", handlers.NewDeliveryOptionsHandler())
		r.Post("/quote", handlers.NewQuoteHandler(quoter))
		r.Post("/admin/login", handlers.NewAdminLoginHandler(loginer))

		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(tokener))
			r.Put("/rates", handlers.NewSetRatesHandler(rateService))
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	return r
}
