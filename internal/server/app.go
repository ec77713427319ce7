// Package server initializes and runs the farm-record application server.
// It wires the database repositories, token issuer, OTP registry, mail and
// object-storage clients into the HTTP layer and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"github.com/spirocarbon/farmrecord/internal/logging"
	"github.com/spirocarbon/farmrecord/internal/server/auth"
	"github.com/spirocarbon/farmrecord/internal/server/config"
	"github.com/spirocarbon/farmrecord/internal/server/httpapi"
	"github.com/spirocarbon/farmrecord/internal/server/mail"
	"github.com/spirocarbon/farmrecord/internal/server/otp"
	"github.com/spirocarbon/farmrecord/internal/server/password"
	"github.com/spirocarbon/farmrecord/internal/server/shared/db"
	"github.com/spirocarbon/farmrecord/internal/server/storage"
	"github.com/spirocarbon/farmrecord/internal/server/users"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  db.RepositoryManager
	otps   *otp.Registry
	web    *fiber.App
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	rm, err := db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	tokens := auth.NewIssuer([]byte(cfg.SecretKey), cfg.AccessTokenValidityDuration)
	hasher := password.NewHasher(cfg.PasswordHashMode)
	userService := users.NewService(rm.Users(), hasher, tokens)
	otps := otp.NewRegistry(cfg.OTPFreshnessWindow)
	mailer := mail.NewSendGridClient(cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailTemplateID)

	store, err := storage.NewS3Store(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("object storage init error: %w", err)
	}

	h := httpapi.NewHandler(userService, rm.Fields(), rm.Activities(), rm.Submissions(),
		otps, mailer, store, cfg.OTPLength, logger)
	web := httpapi.NewApp(h, tokens, logger)

	return &App{config: cfg, logger: logger, repos: rm, otps: otps, web: web}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	app.logger.Info(ctx, "Starting http server...", "addr", app.config.EndpointAddrHTTP)

	if err := app.web.Listen(app.config.EndpointAddrHTTP); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	if app.config.OTPPruneInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.otps.RunPruning(ctx, app.config.OTPPruneInterval)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	<-ctx.Done()

	app.logger.Info(ctx, "Shutting down...")

	if err := app.web.Shutdown(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}

	wg.Wait()
}
