package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	_ "github.com/shopfeed/backend/docs"
	"github.com/shopfeed/backend/internal/infrastructure/auth"
	"github.com/shopfeed/backend/internal/infrastructure/config"
	"github.com/shopfeed/backend/internal/infrastructure/logger"
	"github.com/shopfeed/backend/internal/infrastructure/telemetry"
	"github.com/shopfeed/backend/internal/interfaces/http/dto"
	"github.com/shopfeed/backend/internal/interfaces/http/handler"
	"github.com/shopfeed/backend/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup registers all routes under /api/<version>
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// Handlers are the endpoint groups served by the API
type Handlers struct {
	User     *handler.UserHandler
	Contacts *handler.ContactHandler
	Catalog  *handler.CatalogHandler
	Shop     *handler.ShopHandler
	Trade    *handler.TradeHandler
	System   *handler.SystemHandler
}

// Options configure the engine built by New
type Options struct {
	HTTP      config.HTTPConfig
	Tracing   middleware.TracingConfig
	Metrics   *telemetry.MeterProvider
	Profiling bool
	Swagger   config.SwaggerConfig
	JWT       *auth.JWTService
	Blacklist auth.TokenBlacklist
	Logger    *zap.Logger
}

// New builds the gin engine with the middleware chain and every route
func New(opts Options, h Handlers) (*gin.Engine, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(opts.HTTP.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	middleware.SetupValidator()

	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		middleware.TracingWithConfig(opts.Tracing),
		middleware.SpanEnricher(),
		middleware.HTTPMetrics(opts.Metrics, log),
		logger.GinMiddleware(log),
		middleware.Secure(),
		middleware.CORSWithConfig(middleware.CORSConfigFrom(opts.HTTP)),
		middleware.BodyLimit(opts.HTTP.MaxBodySize),
		middleware.Authenticate(middleware.JWTMiddlewareConfig{
			JWTService:     opts.JWT,
			TokenBlacklist: opts.Blacklist,
			Logger:         log,
		}),
		middleware.Profiling(opts.Profiling),
	)
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrCodeRouteNotFound, "Route not found"))
	})
	engine.GET("/health", h.System.Health)
	engine.GET("/swagger/*any", middleware.SwaggerProtection(opts.Swagger), ginSwagger.WrapHandler(swaggerFiles.Handler))

	var limiter *middleware.RateLimiter
	if opts.HTTP.AuthRateLimit > 0 {
		limiter = middleware.NewRateLimiter(opts.HTTP.AuthRateLimit, opts.HTTP.AuthRateWindow)
	}
	authLimit := middleware.RateLimit(limiter)

	NewRouter(engine).Register(
		userRoutes(h.User, authLimit),
		accountRoutes(h.User, h.Contacts),
		catalogRoutes(h.Catalog, h.System),
		shopRoutes(h.Shop),
		basketRoutes(h.Trade),
		orderRoutes(h.Trade),
	).Setup()

	return engine, nil
}

func userRoutes(u *handler.UserHandler, limit gin.HandlerFunc) *DomainGroup {
	return NewDomainGroup("/user").
		POST("/register", limit, u.Register).
		POST("/register/confirm", u.Confirm).
		POST("/login", limit, u.Login).
		POST("/token/refresh", u.Refresh).
		POST("/logout", u.Logout)
}

func accountRoutes(u *handler.UserHandler, contacts *handler.ContactHandler) *DomainGroup {
	return NewDomainGroup("/user").
		Use(middleware.RequireAuth()).
		GET("/profile", u.Profile).
		PUT("/profile", u.UpdateProfile).
		GET("/contacts", contacts.List).
		POST("/contacts", contacts.Create).
		PUT("/contacts/:id", contacts.Update).
		DELETE("/contacts/:id", contacts.Delete)
}

func catalogRoutes(c *handler.CatalogHandler, system *handler.SystemHandler) *DomainGroup {
	return NewDomainGroup("").
		GET("/health", system.Health).
		GET("/shops", c.Shops).
		GET("/categories", c.Categories).
		GET("/products", c.Products).
		GET("/seed/shops", c.SeedShops).
		GET("/seed/categories", c.SeedCategories).
		GET("/seed/goods", c.SeedGoods)
}

func shopRoutes(s *handler.ShopHandler) *DomainGroup {
	return NewDomainGroup("/shop").
		Use(middleware.RequireShop()).
		POST("/import", s.Import).
		GET("/status", s.Status).
		POST("/status", s.SetStatus).
		GET("/orders", s.Orders)
}

func basketRoutes(t *handler.TradeHandler) *DomainGroup {
	return NewDomainGroup("/basket").
		Use(middleware.RequireAuth()).
		GET("", t.Basket).
		POST("", t.AddItems).
		PUT("", t.UpdateItems).
		DELETE("", t.RemoveItems)
}

func orderRoutes(t *handler.TradeHandler) *DomainGroup {
	return NewDomainGroup("/orders").
		Use(middleware.RequireAuth()).
		GET("", t.Orders).
		POST("", t.Place).
		PUT("/:id/status", t.SetStatus)
}

// DomainGroup collects the routes of one domain under a prefix
type DomainGroup struct {
	prefix     string
	middleware []gin.HandlerFunc
	routes     []routeDefinition
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a route group under prefix
func NewDomainGroup(prefix string) *DomainGroup {
	return &DomainGroup{prefix: prefix}
}

// Use adds middleware that runs before every route of the group
func (dg *DomainGroup) Use(handlers ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, handlers...)
	return dg
}

func (dg *DomainGroup) add(method, path string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: path, handlers: handlers})
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodGet, path, handlers)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodPost, path, handlers)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodPut, path, handlers)
}

// DELETE registers a DELETE route
func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodDelete, path, handlers)
}

// RegisterRoutes implements RouteRegistrar
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix, dg.middleware...)
	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
}
