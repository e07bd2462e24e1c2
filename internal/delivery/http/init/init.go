package http_init

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/catalog/internal/delivery/http/common"
	http_access_middleware "github.com/humanbelnik/catalog/internal/delivery/http/middleware/access"
)

const (
	apiPrefix       = "/api/v1"
	shutdownTimeout = 10 * time.Second
)

type Controller interface {
	RegisterRoutes(router *gin.RouterGroup)
}

type ControllerPool struct {
	pool   []Controller
	rg     *gin.RouterGroup
	engine *gin.Engine
	logger *slog.Logger
}

type PoolOption func(*ControllerPool)

// WithReadOnly rejects writes under the api prefix when mode is RO.
func WithReadOnly(mode string) PoolOption {
	return func(p *ControllerPool) {
		p.rg.Use(http_access_middleware.ReadOnlyBadGatewayMiddleware(mode))
	}
}

func WithMaxMultipartMemory(n int64) PoolOption {
	return func(p *ControllerPool) {
		if n > 0 {
			p.engine.MaxMultipartMemory = n
		}
	}
}

func WithLogger(logger *slog.Logger) PoolOption {
	return func(p *ControllerPool) {
		p.logger = logger
	}
}

func NewControllerPool(opts ...PoolOption) *ControllerPool {
	http_common.UseJSONFieldNames()

	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())
	engine.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	pool := &ControllerPool{
		pool:   make([]Controller, 0, 10),
		rg:     engine.Group(apiPrefix),
		engine: engine,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(pool)
	}
	return pool
}

func (pool *ControllerPool) Register() {
	for _, c := range pool.pool {
		c.RegisterRoutes(pool.rg)
	}
}

func (pool *ControllerPool) Add(c Controller) {
	pool.pool = append(pool.pool, c)
}

func (pool *ControllerPool) Handler() http.Handler {
	return pool.engine
}

// RunAll serves until ctx is done, then drains in-flight requests.
func (pool *ControllerPool) RunAll(ctx context.Context, host, port string) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           pool.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		pool.logger.Info("http server started", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	pool.logger.Info("http server stopped")
	return nil
}
