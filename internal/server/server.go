package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallharvest/herbport/internal/business"
	businessdomain "github.com/smallharvest/herbport/internal/business/domain"
	"github.com/smallharvest/herbport/internal/cart"
	cartdomain "github.com/smallharvest/herbport/internal/cart/domain"
	"github.com/smallharvest/herbport/internal/catalog"
	catalogdomain "github.com/smallharvest/herbport/internal/catalog/domain"
	"github.com/smallharvest/herbport/internal/config"
	"github.com/smallharvest/herbport/internal/identity"
	"github.com/smallharvest/herbport/internal/observability"
	obsmiddleware "github.com/smallharvest/herbport/internal/observability/logger"
	obsmetrics "github.com/smallharvest/herbport/internal/observability/metrics"
	"github.com/smallharvest/herbport/internal/order"
	orderdomain "github.com/smallharvest/herbport/internal/order/domain"
	"github.com/smallharvest/herbport/internal/scan"
	scandomain "github.com/smallharvest/herbport/internal/scan/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	config.Module,
	fx.Provide(registerGin),
	identity.Module,
	business.Module,
	catalog.Module,
	cart.Module,
	order.Module,
	scan.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	db          *gorm.DB
	verifier    identity.Verifier
	businessSvc businessdomain.Service
	catalogSvc  catalogdomain.Service
	cartSvc     cartdomain.Service
	orderSvc    orderdomain.Service
	scanSvc     scandomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	DB          *gorm.DB
	Verifier    identity.Verifier
	BusinessSvc businessdomain.Service
	CatalogSvc  catalogdomain.Service
	CartSvc     cartdomain.Service
	OrderSvc    orderdomain.Service
	ScanSvc     scandomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		db:          p.DB,
		verifier:    p.Verifier,
		businessSvc: p.BusinessSvc,
		catalogSvc:  p.CatalogSvc,
		cartSvc:     p.CartSvc,
		orderSvc:    p.OrderSvc,
		scanSvc:     p.ScanSvc,
	}

	svc.registerAPIRoutes()
	svc.registerRetiredAuthRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	// -------- Catalog (public) --------
	public := s.engine.Group("/api")
	public.GET("/products", s.ListProducts)
	public.GET("/products/:id", s.GetProductByID)
	public.GET("/categories", s.ListCategories)

	api := s.engine.Group("/api", s.BearerRequired())

	// -------- Cart --------
	api.GET("/cart", s.GetCart)
	api.GET("/cart/summary", s.GetCartSummary)
	api.POST("/cart", s.AddCartItem)
	api.PUT("/cart/:productId", s.UpdateCartItem)
	api.DELETE("/cart/:productId", s.RemoveCartItem)
	api.DELETE("/cart", s.ClearCart)

	// -------- Orders --------
	api.POST("/orders", s.Checkout)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrderByID)

	// -------- Scan --------
	api.POST("/scan", s.ScanProduct)
	api.GET("/products/:id/scans", s.ListProductScans)

	// -------- Profile --------
	api.GET("/me", s.Me)
}

// registerRetiredAuthRoutes keeps the old credential endpoints answering
// with 410 so stale clients get a clear signal instead of a 404.
func (s *Server) registerRetiredAuthRoutes() {
	auth := s.engine.Group("/api/auth")

	retired := func(c *gin.Context) {
		AbortWithError(c, ErrGone)
	}

	auth.POST("/register", retired)
	auth.POST("/login", retired)
	auth.POST("/logout", retired)
	auth.GET("/me", retired)
}
