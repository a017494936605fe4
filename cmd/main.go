package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/internal/cache"
	"marketplace/internal/handlers"
	"marketplace/internal/logger"
	"marketplace/internal/repository"
	"marketplace/internal/repository/db"
	"marketplace/internal/server"
	"marketplace/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load .env + configs/config.yml, with env overrides
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// open document store
	client, database, err := openMongo(ctx)
	if err != nil {
		log.Fatalw("failed to init mongo", "err", err)
	}
	defer func() {
		if cerr := client.Disconnect(context.Background()); cerr != nil {
			log.Errorw("failed to close mongo", "err", cerr)
		}
	}()

	// optional read cache
	cacheStore, err := openCache(ctx)
	if err != nil {
		log.Fatalw("failed to init redis", "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(database)
	services := service.NewService(repos, service.Config{
		JWTSecret: viper.GetString("jwt.secret"),
		TokenTTL:  viper.GetDuration("jwt.ttl"),
		Cache:     cacheStore,
		Log:       log,
	})
	apiHandler := handlers.NewHandler(services, log)

	// background consistency sweep
	if interval := viper.GetDuration("sweep.interval"); interval > 0 {
		go services.Sweeper.Run(ctx, interval)
	}

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

// loadConfig reads configs/config.yml and binds environment overrides.
// The config file is optional; env vars alone are enough to run.
func loadConfig() error {
	_ = godotenv.Load()

	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")

	viper.SetDefault("port", "8080")
	viper.SetDefault("log_level", logger.InfoLevel)
	viper.SetDefault("mongo.db", "fs2")
	viper.SetDefault("jwt.ttl", time.Hour)
	viper.SetDefault("cache.ttl", time.Minute)
	viper.SetDefault("sweep.interval", 0)

	_ = viper.BindEnv("port", "PORT")
	_ = viper.BindEnv("mongo.url", "MONGO_URL")
	_ = viper.BindEnv("jwt.secret", "JWT_SECRET")
	_ = viper.BindEnv("redis.addr", "REDIS_ADDR")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

// openMongo connects to the document store and ensures indexes.
func openMongo(ctx context.Context) (*mongo.Client, *mongo.Database, error) {
	url := viper.GetString("mongo.url")
	client, err := db.Connect(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	database := client.Database(viper.GetString("mongo.db"))
	if err := db.EnsureIndexes(ctx, database); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return client, database, nil
}

// openCache builds the Redis-backed read cache. Returns nil (caching
// disabled) when no address is configured.
func openCache(ctx context.Context) (*cache.Cache, error) {
	addr := viper.GetString("redis.addr")
	if addr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: viper.GetString("redis.pass"),
		DB:       viper.GetInt("redis.db"),
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return cache.New(rdb, viper.GetDuration("cache.ttl")), nil
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("server starting", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && err != http.ErrServerClosed {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
