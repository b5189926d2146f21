package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/toybox/storefront/config"
	"github.com/toybox/storefront/internal/adapter/httphandler"
	"github.com/toybox/storefront/internal/adapter/kafka"
	"github.com/toybox/storefront/internal/adapter/notice"
	"github.com/toybox/storefront/internal/adapter/toyapi"
	"github.com/toybox/storefront/internal/auth"
	"github.com/toybox/storefront/internal/core/service"
	"github.com/toybox/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

// App wires the storefront together: the toy repository client and the
// notifier feed the core service, shopper activity flows out through
// the client events producer, and the popularity processor and view
// keep the read side of the tally.
type App struct {
	ctx context.Context
	cfg config.Config

	clientEventSerde schema.Serde

	eventsProducer kafka.ClientEventsProducer
	gate           auth.Gate
	storefront     *service.Storefront

	popularityProc *kafka.PopularityProcessor
	popularityView kafka.PopularityView

	httpServer httphandler.HTTPServer

	procWG sync.WaitGroup
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initSerdes()
	app.initOutboundAdapters()
	app.initCoreService()
	app.initProcessors()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"

	srClient, err := sr.NewClient(
		sr.URLs(app.cfg.Broker.SchemaRegistryURLs...),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	subject := app.cfg.Broker.Topics.ClientEvents + "-value"
	clientEventSerde, err := schema.NewSerdeClientEventV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.clientEventSerde = clientEventSerde
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	eventsProducer, err := kafka.NewClientEventsProducer(
		kafka.ProducerClientOpt(
			app.ctx,
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.Topics.ClientEvents,
		),
		kafka.ProducerEncoderOpt(app.clientEventSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.eventsProducer = eventsProducer
}

func (app *App) initCoreService() {
	repo := toyapi.NewClient(toyapi.Config{
		BaseURL:       app.cfg.ToyAPI.BaseURL,
		Timeout:       app.cfg.ToyAPI.Timeout,
		RetryAttempts: app.cfg.ToyAPI.RetryAttempts,
	})

	app.gate = auth.NewGate(
		app.cfg.Admin.SecretHash,
		app.cfg.Admin.TokenSecret,
		app.cfg.Admin.SessionTTL,
	)

	app.storefront = service.NewStorefront(
		repo, notice.NewLogNotifier(), app.eventsProducer, app.gate,
	)
}

func (app *App) initProcessors() {
	const op = "App.initProcessors"

	proc, err := kafka.NewPopularityProc(
		app.cfg.Broker.SeedBrokers,
		app.cfg.Broker.Topics.ClientEvents,
		app.cfg.Broker.Consumers.PopularityGroup,
		app.clientEventSerde,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	view, err := kafka.NewPopularityView(kafka.PopularityViewConfig{
		SeedBrokers: app.cfg.Broker.SeedBrokers,
		GroupTable:  app.cfg.Broker.Consumers.PopularityGroup,
	})
	if err != nil {
		app.fallDown(op, err)
	}

	app.popularityProc = proc
	app.popularityView = view
}

func (app *App) initInboundAdapters() {
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, app.storefront, app.gate)
	httphandler.RegisterCart(mux, app.storefront)
	httphandler.RegisterAdmin(mux, app.storefront, app.gate)
	httphandler.RegisterPopularity(mux, app.popularityView)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	app.procWG.Add(1)
	go app.popularityProc.Run(app.ctx, stopFn, &app.procWG)
	go app.popularityView.Run(app.ctx)

	go func() {
		app.procWG.Wait()
		slog.Info("stream processors are ready")
	}()

	go app.loadInitialCatalog()

	slog.Info("application is running")
}

// loadInitialCatalog warms the snapshot on startup. A failure is not
// fatal: the catalog can be refreshed later through the API.
func (app *App) loadInitialCatalog() {
	const op = "App.loadInitialCatalog"

	if err := app.storefront.LoadCatalog(app.ctx); err != nil {
		slog.Warn("initial catalog load failed", "op", op, "err", err)
	}
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.popularityProc.Close()
	app.eventsProducer.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
