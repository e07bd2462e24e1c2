package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/humanbelnik/catalog/internal/config"
	http_auth "github.com/humanbelnik/catalog/internal/delivery/http/auth"
	http_init "github.com/humanbelnik/catalog/internal/delivery/http/init"
	infra_redis_init "github.com/humanbelnik/catalog/internal/infra/redis/init"
	infra_session_cache "github.com/humanbelnik/catalog/internal/infra/redis/session"
	"github.com/humanbelnik/catalog/internal/logger"
	service_simple_auth "github.com/humanbelnik/catalog/internal/service/auth/simple"
)

func main() {
	cfg := config.Load()
	lg := logger.Setup(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	sessionCache := infra_session_cache.New(redisConn, "session_cache")
	authService := service_simple_auth.New(cfg.Auth.Secret, sessionCache, cfg.Auth.TTL)

	controllerPool := http_init.NewControllerPool(http_init.WithLogger(lg))
	controllerPool.Add(http_auth.New(authService))
	controllerPool.Register()
	if err := controllerPool.RunAll(ctx, cfg.HTTP.Host, cfg.HTTP.Port); err != nil {
		log.Fatalf("auth server failed: %v", err)
	}
}
