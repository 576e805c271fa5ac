// Package app assembles repositories, services and handlers into the HTTP
// application served by cmd/server.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/shopfeed/backend/internal/application/catalog"
	identityapp "github.com/shopfeed/backend/internal/application/identity"
	"github.com/shopfeed/backend/internal/application/notification"
	tradeapp "github.com/shopfeed/backend/internal/application/trade"
	"github.com/shopfeed/backend/internal/infrastructure/auth"
	"github.com/shopfeed/backend/internal/infrastructure/config"
	"github.com/shopfeed/backend/internal/infrastructure/feed"
	"github.com/shopfeed/backend/internal/infrastructure/lock"
	"github.com/shopfeed/backend/internal/infrastructure/mail"
	"github.com/shopfeed/backend/internal/infrastructure/persistence"
	"github.com/shopfeed/backend/internal/infrastructure/telemetry"
	"github.com/shopfeed/backend/internal/interfaces/http/handler"
	"github.com/shopfeed/backend/internal/interfaces/http/middleware"
	"github.com/shopfeed/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// Infrastructure are the external collaborators chosen by the caller
type Infrastructure struct {
	DB        *persistence.Database
	Locker    lock.Locker
	Blacklist auth.TokenBlacklist
	Mailer    mail.Mailer
	Source    feed.Source
	Metrics   *telemetry.MeterProvider
}

// App is the wired application
type App struct {
	Engine    *gin.Engine
	Scheduler *catalogapp.RefreshScheduler
	JWT       *auth.JWTService
	Repos     *persistence.Repositories
}

// Version is reported by the health endpoint
var Version = "dev"

// New wires every service on top of infra
func New(cfg *config.Config, infra Infrastructure, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if infra.DB == nil || infra.Mailer == nil || infra.Source == nil {
		return nil, fmt.Errorf("app: database, mailer and feed source are required")
	}
	if infra.Locker == nil {
		infra.Locker = lock.NewMemoryLocker()
	}
	if infra.Blacklist == nil {
		infra.Blacklist = auth.NewInMemoryTokenBlacklist()
	}

	db := infra.DB
	repos := persistence.NewRepositories(db.DB)
	jwtService := auth.NewJWTService(cfg.JWT)

	dispatcher := notification.NewDispatcher(log,
		notification.NewConfirmationEmailHandler(repos.Confirmations, infra.Mailer, cfg.Mail.ConfirmBaseURL, log),
		notification.NewOrderStatusEmailHandler(repos.Users, infra.Mailer, log),
	)

	authService := identityapp.NewAuthService(repos.Users, repos.Confirmations, db, jwtService, infra.Blacklist, dispatcher, log)
	contactService := identityapp.NewContactService(repos.Contacts)

	importer := catalogapp.NewImporter(db, catalogapp.CatalogRepositories{
		Shops:        repos.Shops,
		Categories:   repos.Categories,
		Goods:        repos.Goods,
		ProductInfos: repos.ProductInfos,
		Parameters:   repos.Parameters,
	}, infra.Source, infra.Locker, cfg.Feed, log)
	shopService := catalogapp.NewShopService(repos.Shops, log)
	queryService := catalogapp.NewCatalogQueryService(repos.Shops, repos.Categories, repos.ProductInfos)
	seedService := catalogapp.NewSeedCatalogService(cfg.Feed.SeedPath, cfg.Feed.MaxSize)

	basketService := tradeapp.NewBasketService(db, repos.Orders, repos.ProductInfos, log)
	orderService := tradeapp.NewOrderService(db, repos.Orders, repos.Contacts, repos.Shops, dispatcher, log)

	engine, err := router.New(router.Options{
		HTTP: cfg.HTTP,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		},
		Metrics:   infra.Metrics,
		Profiling: cfg.Profiling.Enabled,
		Swagger:   cfg.Swagger,
		JWT:       jwtService,
		Blacklist: infra.Blacklist,
		Logger:    log,
	}, router.Handlers{
		User:     handler.NewUserHandler(authService, log),
		Contacts: handler.NewContactHandler(contactService, log),
		Catalog:  handler.NewCatalogHandler(queryService, seedService, log),
		Shop:     handler.NewShopHandler(importer, shopService, orderService, log),
		Trade:    handler.NewTradeHandler(basketService, orderService, log),
		System:   handler.NewSystemHandler(db, Version, log),
	})
	if err != nil {
		return nil, err
	}

	return &App{
		Engine:    engine,
		Scheduler: catalogapp.NewRefreshScheduler(repos.Shops, importer, cfg.Feed.RefreshCron, log),
		JWT:       jwtService,
		Repos:     repos,
	}, nil
}

// Start launches background jobs
func (a *App) Start() error {
	return a.Scheduler.Start()
}

// Stop waits for background jobs to finish
func (a *App) Stop(ctx context.Context) error {
	return a.Scheduler.Stop(ctx)
}
