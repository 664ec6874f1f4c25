package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/rangepicker/internal/api"
	"github.com/terraincognita07/rangepicker/internal/cli"
	"github.com/terraincognita07/rangepicker/internal/config"
	"github.com/terraincognita07/rangepicker/internal/db"
	"github.com/terraincognita07/rangepicker/internal/i18n"
	"github.com/terraincognita07/rangepicker/internal/services"
)

const defaultConfigPath = "rangepicker.yaml"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run dispatches "rangepicker [-config path] [serve|cal|history] [flags]".
// Without a command the HTTP host starts.
func run(args []string, stdout io.Writer) error {
	cfg, rest, err := loadConfig(args, os.LookupEnv)
	if err != nil {
		return err
	}

	command := "serve"
	if len(rest) > 0 {
		command, rest = rest[0], rest[1:]
	}

	switch command {
	case "serve":
		return serve(cfg)
	case "cal":
		i18nManager, err := i18n.NewEmbeddedManager(cfg.DefaultLanguage)
		if err != nil {
			return fmt.Errorf("i18n init failed: %w", err)
		}
		return cli.RunCalCommand(rest, cli.CalOptions{
			Stdout:          stdout,
			I18n:            i18nManager,
			Clock:           services.SystemClock{},
			Location:        cfg.Location(),
			DefaultLanguage: cfg.DefaultLanguage,
			DefaultSpanDays: cfg.DefaultSpanDays,
		})
	case "history":
		return cli.RunHistoryCommand(cfg.DBPath, rest, stdout)
	default:
		return fmt.Errorf("unknown command %q (expected serve, cal or history)", command)
	}
}

func loadConfig(args []string, lookup func(string) (string, bool)) (*config.Config, []string, error) {
	flags := flag.NewFlagSet("rangepicker", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	fallbackPath := defaultConfigPath
	if value, ok := lookup("CONFIG_PATH"); ok && value != "" {
		fallbackPath = value
	}
	configPath := flags.String("config", fallbackPath, "path to the YAML config file")
	if err := flags.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("parse flags: %w", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, nil, err
	}
	return cfg, flags.Args(), nil
}

func serve(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	location := cfg.Location()
	time.Local = location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	i18nManager, err := i18n.NewEmbeddedManager(cfg.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	handler, err := api.NewHandler(database, api.HandlerOptions{
		SecretKey:       cfg.SecretKey,
		Location:        location,
		I18n:            i18nManager,
		CookieSecure:    cfg.CookieSecure,
		DefaultSpanDays: cfg.DefaultSpanDays,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Rangepicker",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)
	app.Use(csrf.New(csrfMiddlewareConfig(cfg.CookieSecure)))

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	janitor := services.NewSessionJanitor(handler.Sessions(), cfg.SessionTTL, cfg.SessionSweep)
	if err := janitor.Start(lifecycleCtx); err != nil {
		return err
	}
	defer janitor.Stop()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Rangepicker listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.Port, cfg.DBPath, location.String())
	if err := app.Listen(":" + cfg.Port); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "form:csrf_token",
		CookieName:     "rangepicker_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
	}
}
