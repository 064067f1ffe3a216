package wheretodine

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/wheretodine/internal/cache"
	"github.com/magabrotheeeer/wheretodine/internal/config"
	"github.com/magabrotheeeer/wheretodine/internal/lib/jwt"
	"github.com/magabrotheeeer/wheretodine/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/wheretodine/internal/lib/sl"
	"github.com/magabrotheeeer/wheretodine/internal/metrics"
	"github.com/magabrotheeeer/wheretodine/internal/migrations"
	authservice "github.com/magabrotheeeer/wheretodine/internal/services/auth"
	listsservice "github.com/magabrotheeeer/wheretodine/internal/services/lists"
	"github.com/magabrotheeeer/wheretodine/internal/storage/repository"
)

// App инкапсулирует зависимости и жизненный цикл HTTP-сервера.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	amqp   *amqp.Connection
}

// New создает приложение: подключается к Postgres, применяет миграции,
// поднимает Redis и, если задан URL, RabbitMQ. Публикация событий
// активности опциональна: без брокера списки продолжают работать.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	var amqpConn *amqp.Connection
	var publisher listsservice.Publisher
	if cfg.RabbitMQConnection.URL != "" {
		amqpConn, err = rabbitmq.Connect(cfg.RabbitMQConnection.URL, cfg.RabbitMQConnection.Retries, cfg.RabbitMQConnection.RetryDelay)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(amqpConn, rabbitmq.GetActivityQueues())
		if err != nil {
			return nil, err
		}
		publisher = rabbitmq.NewEventPublisher(ch)
	} else {
		logger.Warn("rabbitmq url is empty, list activity events disabled")
	}

	collector := metrics.NewCollector(prometheus.DefaultRegisterer)
	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker, collector)
	listsService := listsservice.NewListsService(db, cacheRedis, publisher, collector, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, listsService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		amqp:   amqpConn,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста или ошибки.
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
		if a.amqp != nil {
			if closeErr := a.amqp.Close(); closeErr != nil {
				a.logger.Error("failed to close rabbitmq connection", sl.Err(closeErr))
			}
		}
		return err
	}
}
