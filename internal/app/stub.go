package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	httpapi "github.com/whitesvil1-lab/JustCani/internal/api/http"
	"github.com/whitesvil1-lab/JustCani/internal/config"
	"github.com/whitesvil1-lab/JustCani/internal/model"
	"github.com/whitesvil1-lab/JustCani/internal/stub"
	platformhealth "github.com/whitesvil1-lab/JustCani/platform/health/http"
	platformlogging "github.com/whitesvil1-lab/JustCani/platform/logging"
	"github.com/whitesvil1-lab/JustCani/platform/observability"
	platformshutdown "github.com/whitesvil1-lab/JustCani/platform/shutdown"
)

const stubServiceName = "posstub"

// StubApp HTTP сервер stub бэкенда кассы
type StubApp struct {
	logger      *zap.Logger
	httpServer  *http.Server
	catalog     *stub.Catalog
	shutdownMgr *platformshutdown.Manager
	wg          sync.WaitGroup
}

// BuildStub создаёт stub бэкенд: каталог из seed, роутер и HTTP сервер
func BuildStub(ctx context.Context, cfg config.Config) (*StubApp, error) {
	const op = "app.BuildStub"

	logger, err := platformlogging.New(platformlogging.Config{
		ServiceName: stubServiceName,
		Env:         string(cfg.AppEnv),
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Output:      cfg.LogOutput,
	})
	if err != nil {
		return nil, err
	}

	logger = logger.With(zap.String("op", op))
	logger.Info("Building posstub", zap.String("http_addr", cfg.StubHTTPAddr))

	otelShutdown, err := observability.Init(ctx, observability.Config{
		Enabled:               cfg.Otel.Enabled,
		OTLPEndpoint:          cfg.Otel.Endpoint,
		SamplingRatio:         cfg.Otel.SamplingRatio,
		ServiceName:           stubServiceName,
		DeploymentEnvironment: string(cfg.AppEnv),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	seed, err := stub.LoadSeedFile(cfg.StubCatalogPath)
	if err != nil {
		_ = otelShutdown(ctx)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	catalog := stub.NewCatalog(seed)
	logger.Info("Catalog loaded",
		zap.Int("regular", len(seed.Regular)),
		zap.Int("auction", len(seed.Auction)))

	handler := httpapi.NewHandler(catalog, logger)
	router := httpapi.NewRouter(handler, map[string]platformhealth.Check{
		"catalog": func(context.Context) error {
			if len(catalog.BarcodeProducts()) == 0 && len(catalog.Search(model.ModeAuction, "")) == 0 {
				return errors.New("catalog is empty")
			}
			return nil
		},
	}, logger)

	httpServer := &http.Server{
		Addr:         cfg.StubHTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdownMgr := platformshutdown.New(cfg.ShutdownTimeout, logger)

	// Регистрируем shutdown функции в обратном порядке выполнения
	shutdownMgr.Add("otel", otelShutdown)
	shutdownMgr.Add("http_server", platformshutdown.ShutdownHTTPServer(httpServer))

	return &StubApp{
		logger:      logger,
		httpServer:  httpServer,
		catalog:     catalog,
		shutdownMgr: shutdownMgr,
	}, nil
}

// Handler HTTP обработчик stub бэкенда (для httptest)
func (a *StubApp) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run запускает сервер и блокируется до сигнала shutdown или отмены ctx
func (a *StubApp) Run(ctx context.Context) error {
	defer platformlogging.Sync(a.logger)

	ln, err := net.Listen("tcp", a.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.httpServer.Addr, err)
	}

	a.logger.Info("Starting posstub", zap.String("addr", ln.Addr().String()))
	a.logger.Info("Health check available", zap.String("url", "http://"+ln.Addr().String()+"/health"))

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	// Ожидаем сигнал и выполняем shutdown
	a.shutdownMgr.Wait(ctx)

	a.wg.Wait()
	a.logger.Info("posstub stopped", zap.Int("transactions", len(a.catalog.Transactions())))
	return nil
}
