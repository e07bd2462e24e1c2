package app

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/humanbelnik/catalog/internal/config"
	http_auth "github.com/humanbelnik/catalog/internal/delivery/http/auth"
	http_castmember "github.com/humanbelnik/catalog/internal/delivery/http/castmember"
	http_category "github.com/humanbelnik/catalog/internal/delivery/http/category"
	http_genre "github.com/humanbelnik/catalog/internal/delivery/http/genre"
	http_init "github.com/humanbelnik/catalog/internal/delivery/http/init"
	http_auth_middleware "github.com/humanbelnik/catalog/internal/delivery/http/middleware/auth"
	http_swagger "github.com/humanbelnik/catalog/internal/delivery/http/swagger"
	http_video "github.com/humanbelnik/catalog/internal/delivery/http/video"
	queue_encoder "github.com/humanbelnik/catalog/internal/delivery/queue/encoder"
	ws_video "github.com/humanbelnik/catalog/internal/delivery/ws/video"
	auth_client "github.com/humanbelnik/catalog/internal/infra/auth"
	infra_minio "github.com/humanbelnik/catalog/internal/infra/minio"
	infra_postgres_castmember "github.com/humanbelnik/catalog/internal/infra/postgres/castmember"
	infra_postgres_category "github.com/humanbelnik/catalog/internal/infra/postgres/category"
	infra_postgres_genre "github.com/humanbelnik/catalog/internal/infra/postgres/genre"
	infra_pg_init "github.com/humanbelnik/catalog/internal/infra/postgres/init"
	infra_postgres_tx "github.com/humanbelnik/catalog/internal/infra/postgres/tx"
	infra_postgres_video "github.com/humanbelnik/catalog/internal/infra/postgres/video"
	infra_redis_encoder "github.com/humanbelnik/catalog/internal/infra/redis/encoder"
	infra_redis_init "github.com/humanbelnik/catalog/internal/infra/redis/init"
	infra_redis_orphans "github.com/humanbelnik/catalog/internal/infra/redis/orphans"
	infra_session_cache "github.com/humanbelnik/catalog/internal/infra/redis/session"
	infra_s3 "github.com/humanbelnik/catalog/internal/infra/s3"
	"github.com/humanbelnik/catalog/internal/infra/s3mock"
	"github.com/humanbelnik/catalog/internal/logger"
	service_simple_auth "github.com/humanbelnik/catalog/internal/service/auth/simple"
	service_janitor "github.com/humanbelnik/catalog/internal/service/janitor"
	service_thumbnail "github.com/humanbelnik/catalog/internal/service/thumbnail"
	usecase_castmember "github.com/humanbelnik/catalog/internal/usecase/castmember"
	usecase_category "github.com/humanbelnik/catalog/internal/usecase/category"
	usecase_genre "github.com/humanbelnik/catalog/internal/usecase/genre"
	usecase_video "github.com/humanbelnik/catalog/internal/usecase/video"
)

const (
	sessionCacheKey   = "session_cache"
	authClientTimeout = 5 * time.Second
)

// Storage is what both the video use case and the janitor need from a
// blob store.
type Storage interface {
	usecase_video.Storage
	service_janitor.Deleter
}

func MustStorage(ctx context.Context, cfg config.Storage) Storage {
	switch cfg.Driver {
	case "s3":
		s, err := infra_s3.New(ctx, cfg.Bucket, infra_s3.MustEstablishConn(cfg), cfg.Prefix)
		if err != nil {
			log.Fatalf("failed to init s3 storage: %v", err)
		}
		return s
	case "minio":
		s, err := infra_minio.New(ctx, infra_minio.MustEstablishConn(cfg), cfg.Bucket, cfg.Prefix)
		if err != nil {
			log.Fatalf("failed to init minio storage: %v", err)
		}
		return s
	case "memory", "":
		slog.Warn("using in-memory storage, uploads are lost on restart")
		return s3mock.New(cfg.Prefix)
	}
	log.Fatalf("unknown storage driver %q", cfg.Driver)
	return nil
}

func Go(cfg *config.Config) {
	lg := logger.Setup(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)
	storage := MustStorage(ctx, cfg.Storage)

	categoryRepository := infra_postgres_category.New(pgConn)
	genreRepository := infra_postgres_genre.New(pgConn)
	castMemberRepository := infra_postgres_castmember.New(pgConn)
	videoRepository := infra_postgres_video.New(pgConn)
	transactor := infra_postgres_tx.New(pgConn)

	encodeQueue := infra_redis_encoder.New(redisConn,
		cfg.Encoder.RequestQueue, cfg.Encoder.ResultQueue, cfg.Encoder.DeadQueue, cfg.Encoder.PollTimeout)
	orphans := infra_redis_orphans.New(redisConn, cfg.Janitor.OrphanKey)

	hub := ws_video.NewHub()
	go hub.Run(ctx)

	categoryUC := usecase_category.New(categoryRepository)
	genreUC := usecase_genre.New(genreRepository, categoryRepository)
	castMemberUC := usecase_castmember.New(castMemberRepository)
	videoUC := usecase_video.New(
		videoRepository,
		categoryRepository,
		genreRepository,
		castMemberRepository,
		transactor,
		storage,
		usecase_video.WithEncodeQueue(encodeQueue),
		usecase_video.WithOrphanSet(orphans),
		usecase_video.WithThumbnailer(service_thumbnail.New(0)),
		usecase_video.WithEventPublisher(hub),
		usecase_video.WithPresignTTL(cfg.Storage.PresignTTL),
		usecase_video.WithLogger(lg),
	)

	janitor := service_janitor.New(orphans, storage, cfg.Janitor.BatchSize, service_janitor.WithLogger(lg))
	sweeper, err := janitor.Schedule(cfg.Janitor.Schedule)
	if err != nil {
		log.Fatalf("failed to schedule storage janitor: %v", err)
	}

	go queue_encoder.New(encodeQueue, videoUC,
		queue_encoder.WithLogger(lg),
		queue_encoder.WithMaxAttempts(cfg.Encoder.MaxAttempts),
	).Run(ctx)

	controllerPool := http_init.NewControllerPool(
		http_init.WithReadOnly(cfg.HTTP.Mode),
		http_init.WithMaxMultipartMemory(32<<20),
		http_init.WithLogger(lg),
	)

	var validator http_auth_middleware.TokenValidator
	if cfg.Auth.Servers != "" {
		validator = auth_client.New(cfg.Auth.Servers, authClientTimeout)
	} else {
		sessionCache := infra_session_cache.New(redisConn, sessionCacheKey)
		authService := service_simple_auth.New(cfg.Auth.Secret, sessionCache, cfg.Auth.TTL)
		controllerPool.Add(http_auth.New(authService))
		validator = authService
	}
	authRequired := http_auth_middleware.New(validator).AuthRequired()

	controllerPool.Add(http_swagger.New(""))
	controllerPool.Add(http_category.New(categoryUC, authRequired, http_category.WithLogger(lg)))
	controllerPool.Add(http_genre.New(genreUC, authRequired, http_genre.WithLogger(lg)))
	controllerPool.Add(http_castmember.New(castMemberUC, authRequired, http_castmember.WithLogger(lg)))
	controllerPool.Add(http_video.New(videoUC, authRequired,
		http_video.WithLogger(lg),
		http_video.WithMaxUploadBytes(cfg.HTTP.MaxUploadMB<<20),
	))
	controllerPool.Add(ws_video.NewController(hub))

	controllerPool.Register()
	if err := controllerPool.RunAll(ctx, cfg.HTTP.Host, cfg.HTTP.Port); err != nil {
		lg.Error("http server failed", slog.String("error", err.Error()))
	}

	<-sweeper.Stop().Done()
	if err := pgConn.Close(); err != nil {
		lg.Warn("failed to close postgres", slog.String("error", err.Error()))
	}
	if err := redisConn.Close(); err != nil {
		lg.Warn("failed to close redis", slog.String("error", err.Error()))
	}
}
