package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	httpclient "github.com/whitesvil1-lab/JustCani/internal/client/http"
	"github.com/whitesvil1-lab/JustCani/internal/config"
	"github.com/whitesvil1-lab/JustCani/internal/event/kafka"
	"github.com/whitesvil1-lab/JustCani/internal/repository"
	"github.com/whitesvil1-lab/JustCani/internal/repository/file"
	"github.com/whitesvil1-lab/JustCani/internal/repository/memory"
	mongostore "github.com/whitesvil1-lab/JustCani/internal/repository/mongo"
	"github.com/whitesvil1-lab/JustCani/internal/repository/postgres"
	redisstore "github.com/whitesvil1-lab/JustCani/internal/repository/redis"
	"github.com/whitesvil1-lab/JustCani/internal/service"
	"github.com/whitesvil1-lab/JustCani/internal/templates"
	"github.com/whitesvil1-lab/JustCani/internal/terminal"
	platformlogging "github.com/whitesvil1-lab/JustCani/platform/logging"
	"github.com/whitesvil1-lab/JustCani/platform/observability"
	platformshutdown "github.com/whitesvil1-lab/JustCani/platform/shutdown"
)

const serviceName = "kasir"

// App содержит все зависимости кассы и порядок их освобождения
type App struct {
	logger      *zap.Logger
	console     *terminal.Console
	backend     *httpclient.Client
	cart        *service.Cart
	session     *service.Session
	search      *service.Search
	barcode     *service.BarcodeAdmin
	shutdownMgr *platformshutdown.Manager
}

// Option настраивает Build
type Option func(*buildOptions)

type buildOptions struct {
	in     io.Reader
	out    io.Writer
	logger *zap.Logger
}

// WithIO подменяет stdin/stdout консоли
func WithIO(in io.Reader, out io.Writer) Option {
	return func(o *buildOptions) {
		o.in = in
		o.out = out
	}
}

// WithLogger использует готовый logger вместо создания из конфигурации
func WithLogger(logger *zap.Logger) Option {
	return func(o *buildOptions) {
		o.logger = logger
	}
}

// Build создаёт и связывает все зависимости кассы
func Build(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	const op = "app.Build"

	bo := buildOptions{in: os.Stdin, out: os.Stdout}
	for _, opt := range opts {
		opt(&bo)
	}

	logger := bo.logger
	if logger == nil {
		var err error
		logger, err = platformlogging.New(platformlogging.Config{
			ServiceName: serviceName,
			Env:         string(cfg.AppEnv),
			Level:       cfg.LogLevel,
			Format:      cfg.LogFormat,
			Output:      cfg.LogOutput,
		})
		if err != nil {
			return nil, err
		}
	}

	logger.With(zap.String("op", op)).Info("Building kasir",
		zap.String("backend", cfg.BackendURL),
		zap.String("cart_store", string(cfg.CartStore)))
	cfg.Log(logger)

	shutdownMgr := platformshutdown.New(cfg.ShutdownTimeout, logger)
	// logger закрывается последним
	shutdownMgr.Add("logger", func(context.Context) error {
		platformlogging.Sync(logger)
		return nil
	})

	otelShutdown, err := observability.Init(ctx, observability.Config{
		Enabled:               cfg.Otel.Enabled,
		OTLPEndpoint:          cfg.Otel.Endpoint,
		SamplingRatio:         cfg.Otel.SamplingRatio,
		ServiceName:           serviceName,
		DeploymentEnvironment: string(cfg.AppEnv),
	})
	if err != nil {
		shutdownMgr.Shutdown()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	shutdownMgr.Add("otel", otelShutdown)

	store, err := openStore(ctx, cfg, logger, shutdownMgr)
	if err != nil {
		shutdownMgr.Shutdown()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	backend, err := httpclient.NewClient(cfg.BackendURL, logger,
		httpclient.WithHTTPClient(&http.Client{
			Timeout:   cfg.HTTPTimeout,
			Transport: observability.NewTransport(http.DefaultTransport, serviceName),
		}),
		httpclient.WithSessionCookie(cfg.SessionCookie),
	)
	if err != nil {
		shutdownMgr.Shutdown()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	renderer, err := templates.NewRenderer(logger, cfg.TemplatesDir)
	if err != nil {
		shutdownMgr.Shutdown()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var consoleOpts []terminal.Option
	if cfg.BarcodeDir != "" {
		consoleOpts = append(consoleOpts, terminal.WithBarcodeDir(cfg.BarcodeDir))
	}
	console := terminal.NewConsole(logger, renderer, bo.in, bo.out, consoleOpts...)

	var publisher service.CheckoutEventPublisher = service.NoOpCheckoutEventPublisher{}
	if cfg.Kafka.Enabled {
		kafkaPublisher := kafka.NewCheckoutEventPublisher(logger, cfg.Kafka.Brokers, cfg.Kafka.CheckoutTopic, cfg.Kafka.TerminalID)
		shutdownMgr.Add("kafka_writer", platformshutdown.Close(kafkaPublisher))
		publisher = kafkaPublisher
		logger.Info("Checkout events enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.CheckoutTopic))
	}

	var cart *service.Cart
	cart = service.NewCart(logger, store, console, console,
		service.WithStorageKey(cfg.CartStorageKey),
		service.WithNotificationTTL(cfg.NotificationTTL),
		service.WithDisplayHook(func() {
			console.ShowSummary(cart.Summary())
		}),
	)
	cart.Init(ctx)

	session := service.NewSession(logger, backend, console, console, publisher)

	return &App{
		logger:      logger,
		console:     console,
		backend:     backend,
		cart:        cart,
		session:     session,
		search:      service.NewSearch(logger, backend, session, console),
		barcode:     service.NewBarcodeAdmin(logger, backend, console, console, console),
		shutdownMgr: shutdownMgr,
	}, nil
}

// openStore открывает хранилище персистентной корзины и регистрирует его закрытие
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger, shutdownMgr *platformshutdown.Manager) (repository.Store, error) {
	switch cfg.CartStore {
	case config.StoreMemory:
		return memory.NewStore(), nil

	case config.StoreFile:
		store, err := file.NewStore(cfg.CartFileDir)
		if err != nil {
			return nil, err
		}
		logger.Info("File cart storage ready", zap.String("dir", cfg.CartFileDir))
		return store, nil

	case config.StoreRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		// Проверяем подключение к Redis
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		logger.Info("Redis connection established", zap.String("addr", cfg.RedisAddr))
		shutdownMgr.Add("redis_client", platformshutdown.Close(client))
		return redisstore.NewStore(client, cfg.CartTTL, logger), nil

	case config.StorePostgres:
		// Применяем миграции до открытия пула
		if err := postgres.Migrate(ctx, cfg.PostgresDSN); err != nil {
			return nil, err
		}

		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("postgres ping: %w", err)
		}
		logger.Info("PostgreSQL connection established")
		shutdownMgr.Add("postgres_pool", platformshutdown.ClosePool(pool))
		return postgres.NewStore(pool), nil

	case config.StoreMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, err
		}

		// Проверяем подключение к MongoDB
		if err := client.Ping(ctx, nil); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("mongo ping: %w", err)
		}
		logger.Info("MongoDB connection established", zap.String("database", cfg.MongoDatabase))
		shutdownMgr.Add("mongo_client", platformshutdown.DisconnectMongo(client))
		return mongostore.NewStore(client, cfg.MongoDatabase), nil

	default:
		return nil, fmt.Errorf("unsupported cart store %q", cfg.CartStore)
	}
}

// Logger возвращает logger приложения
func (a *App) Logger() *zap.Logger { return a.logger }

// Console возвращает терминал кассы
func (a *App) Console() *terminal.Console { return a.console }

// Cart персистентная корзина
func (a *App) Cart() *service.Cart { return a.cart }

// Session корзина текущей сессии
func (a *App) Session() *service.Session { return a.session }

// Search поиск товаров
func (a *App) Search() *service.Search { return a.search }

// Barcode администрирование штрихкодов
func (a *App) Barcode() *service.BarcodeAdmin { return a.barcode }

// Close освобождает ресурсы в обратном порядке регистрации
func (a *App) Close() {
	a.shutdownMgr.Shutdown()
}
