// Package intrusionmonitor собирает приложение мониторинга вторжений:
// хранилище, кеш, брокер оповещений, сервисы и HTTP-сервер.
package intrusionmonitor

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/intrusion-monitor/internal/cache"
	"github.com/magabrotheeeer/intrusion-monitor/internal/config"
	jwtlib "github.com/magabrotheeeer/intrusion-monitor/internal/lib/jwt"
	"github.com/magabrotheeeer/intrusion-monitor/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/intrusion-monitor/internal/lib/sl"
	"github.com/magabrotheeeer/intrusion-monitor/internal/migrations"
	authservice "github.com/magabrotheeeer/intrusion-monitor/internal/services/auth"
	eventservice "github.com/magabrotheeeer/intrusion-monitor/internal/services/event"
	"github.com/magabrotheeeer/intrusion-monitor/internal/storage/repository"
)

// App инкапсулирует запущенные компоненты приложения.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	amqpConn *amqp.Connection
}

// New создает приложение: подключает зависимости и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwtlib.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker)

	// Брокер оповещений необязателен: без него критичные события просто не публикуются.
	var alerts eventservice.AlertPublisher
	var amqpConn *amqp.Connection
	if cfg.RabbitMQ.URL != "" {
		amqpConn, err = amqp.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			return nil, err
		}
		ch, err := amqpConn.Channel()
		if err != nil {
			return nil, err
		}
		if err = rabbitmq.SetupExchangeAndQueues(ch, cfg.RabbitMQ.Exchange, rabbitmq.GetAlertQueues()); err != nil {
			return nil, err
		}
		alerts = eventservice.NewAmqpAlertPublisher(ch, cfg.RabbitMQ.Exchange)
	} else {
		logger.Warn("rabbitmq url is empty, critical alerts disabled")
	}

	eventService := eventservice.NewEventService(db, cacheRedis, alerts, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, eventService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		amqpConn: amqpConn,
	}, nil
}

// Run запускает HTTP-сервер и корректно останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", sl.Err(closeErr))
		}
		if a.amqpConn != nil {
			if closeErr := a.amqpConn.Close(); closeErr != nil {
				a.logger.Error("failed to close rabbitmq connection", sl.Err(closeErr))
			}
		}
		return err
	}
}
