// Command bantay runs the account and authentication HTTP service.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	fiberadapter "github.com/jdcastro/bantay/adapters/fiber"
	pgxadapter "github.com/jdcastro/bantay/adapters/pgx"
	"github.com/jdcastro/bantay/config"
	"github.com/jdcastro/bantay/migrations"
	"github.com/jdcastro/bantay/pkg/crypto"
	"github.com/jdcastro/bantay/pkg/logging"
	"github.com/jdcastro/bantay/pkg/ratelimit"
	"github.com/jdcastro/bantay/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runMigrations(ctx, cfg.DatabaseURL); err != nil {
		return err
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	store := pgxadapter.New(pool)
	passwords := crypto.NewBcryptWithCost(cfg.BcryptCost)
	tokens := crypto.NewJWT([]byte(cfg.JWTSecret), cfg.TokenTTL)
	auth := services.NewAuthService(store, passwords, tokens)
	users := services.NewUserService(store)

	app := fiber.New(fiber.Config{AppName: "bantay"})

	app.Use(recoverer.New())
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{fiber.HeaderAuthorization, fiber.HeaderContentType},
	}))
	app.Use(logger.New())
	app.Use(fiberadapter.RateLimit(ratelimit.New(ratelimit.Config{
		Points: cfg.GlobalLimitPoints,
		Window: cfg.GlobalLimitWindow,
	})))

	app.Get("/livez", healthcheck.New())
	app.Get("/readyz", healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool {
			return pool.Ping(c.Context()) == nil
		},
	}))

	adapter := fiberadapter.New(app, auth, users, tokens, log)
	adapter.RegisterRoutes(ratelimit.New(ratelimit.Config{
		Points:        cfg.AuthLimitPoints,
		Window:        cfg.AuthLimitWindow,
		BlockDuration: cfg.AuthLimitBlock,
	}))

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.HTTPAddr)
	}()
	log.Info(ctx, "server listening", "addr", cfg.HTTPAddr)

	select {
	case <-ctx.Done():
		log.Info(context.Background(), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	}
}

// runMigrations applies the embedded schema migrations before the pool
// opens. goose drives a database/sql connection through the pgx stdlib
// driver.
func runMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
