package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"todoapp/internal/handlers"
	"todoapp/internal/logger"
	"todoapp/internal/repository"
	repodb "todoapp/internal/repository/db"
	"todoapp/internal/server"
	"todoapp/internal/service"
	"todoapp/internal/session"
)

// sweepInterval is how often the in-memory session store drops expired
// entries. Redis handles expiry by itself.
const sweepInterval = 5 * time.Minute

func main() {
	// load config.yml first so the log level comes from it
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("log.level"))

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// pick the session backend
	store, err := openSessionStore(ctx, log)
	if err != nil {
		log.Fatalw("failed to init session store", "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(db)
	services := service.NewService(repos, store)
	apiHandler := handlers.NewHandler(services, log, viper.GetBool("cookie.secure"))

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "todoapp.db")
		dbPath = "todoapp.db"
	}
	return repodb.InitDB(dbPath)
}

// openSessionStore selects the session backend. The in-memory store is
// process-local; running more than one instance needs redis so every
// instance sees the same sessions.
func openSessionStore(ctx context.Context, log *logger.Logger) (session.Store, error) {
	switch backend := viper.GetString("session.backend"); backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     viper.GetString("redis.addr"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		})
		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		defer pingCancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return nil, err
		}
		log.Infow("using redis session store", "addr", viper.GetString("redis.addr"))
		return session.NewRedisStore(client), nil
	default:
		if backend != "" && backend != "memory" {
			log.Infow("unknown session.backend; falling back to memory", "backend", backend)
		}
		store := session.NewMemoryStore()
		go store.Sweep(ctx, sweepInterval)
		return store, nil
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
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
