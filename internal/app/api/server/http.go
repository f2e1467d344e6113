package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/motorvault/docs"
	"github.com/fatflowers/motorvault/internal/app/api/handlers"
	mw "github.com/fatflowers/motorvault/internal/app/api/middleware"
	asvc "github.com/fatflowers/motorvault/internal/app/service/assistant"
	"github.com/fatflowers/motorvault/internal/app/service/auditlog"
	subsvc "github.com/fatflowers/motorvault/internal/app/service/subscription"
	"github.com/fatflowers/motorvault/internal/store"
	cfgpkg "github.com/fatflowers/motorvault/pkg/config"
	metrics "github.com/fatflowers/motorvault/pkg/metrics"
	"github.com/fatflowers/motorvault/pkg/response"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(mw.TraceMiddleware())
	return r
}

// loadingGate refuses API requests that arrive before the store's initial
// load has finished; they would observe empty collections otherwise.
func loadingGate(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if st.IsLoading() {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, response.ErrorT[any](response.APIResponseCodeError, "store is loading"))
			return
		}
		c.Next()
	}
}

func registerRoutes(r *gin.Engine, log *zap.SugaredLogger, st *store.Store, sub *subsvc.Service, assistant *asvc.Service, audit *auditlog.Service, cfg *cfgpkg.Config) {
	// Prometheus metrics
	if cfg != nil && cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return c.Request.URL.Path
			},
			Logger: log,
		})
		p.SetListenAddress(cfg.MetricsAddr)
		p.Use(r)

		log.Infow("metrics started", "addr", cfg.MetricsAddr)
	}

	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(pub)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(), loadingGate(st))

	handlers.RegisterAuthRoutes(apiV1, st, cfg)
	handlers.RegisterVehicleRoutes(apiV1, st)
	handlers.RegisterDocumentRoutes(apiV1, st)
	handlers.RegisterReminderRoutes(apiV1, st)
	handlers.RegisterSubscriptionRoutes(apiV1, sub, st)
	handlers.RegisterAssistantRoutes(apiV1, assistant, st)
	handlers.RegisterSettingsRoutes(apiV1, st)

	handlers.RegisterAdminRoutes(apiV1.Group("/admin"), st, audit)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
