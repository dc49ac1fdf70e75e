package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Leyinc1/manuelbest/internal/app/rest"
	"github.com/Leyinc1/manuelbest/internal/config"
	v1 "github.com/Leyinc1/manuelbest/internal/http/v1"
	"github.com/Leyinc1/manuelbest/internal/lib/jwt"
	"github.com/Leyinc1/manuelbest/internal/lib/logger/sl"
	"github.com/Leyinc1/manuelbest/internal/lib/migrator"
	"github.com/Leyinc1/manuelbest/internal/lib/telemetry"
	"github.com/Leyinc1/manuelbest/internal/repo"
	"github.com/Leyinc1/manuelbest/internal/service"
	"github.com/Leyinc1/manuelbest/internal/storage/cache"
	"github.com/Leyinc1/manuelbest/internal/storage/files"
	"github.com/Leyinc1/manuelbest/internal/storage/postgresql"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	log               *slog.Logger
	storage           *postgresql.Storage
	redis             *redis.Client
	restApp           *rest.App
	shutdownTelemetry func(context.Context) error
}

func MustNew(ctx context.Context, log *slog.Logger, cfg *config.Config) *App {
	a, err := New(ctx, log, cfg)
	if err != nil {
		log.Error("failed to build application", sl.Err(err))
		panic(err)
	}
	return a
}

func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	shutdownTelemetry, err := telemetry.NewProvider(ctx, cfg.Telemetry, os.Stdout, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := migrator.RunMigrations(cfg.Postgres, log); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	storage := postgresql.Init(cfg.Postgres)
	db := storage.GetDB()

	userRepo := repo.NewUserRepo(db)
	membershipRepo := repo.NewMembershipRepo(db)
	projectRepo := repo.NewProjectRepo(db)
	taskRepo := repo.NewTaskRepo(db)
	scheduleRepo := repo.NewScheduleRepo(db)
	teamRepo := repo.NewTeamRepo(db)
	attendanceRepo := repo.NewAttendanceRepo(db)

	issuer := jwt.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)

	identityService := service.NewIdentityService(log, userRepo, issuer, cfg.Auth.BcryptCost)
	membershipService := service.NewMembershipService(log, membershipRepo, userRepo)
	projectService := service.NewProjectService(log, projectRepo)
	taskService := service.NewTaskService(log, taskRepo, membershipService, cfg.Tasks.Statuses)
	scheduleService := service.NewScheduleService(log, scheduleRepo, cfg.Schedule.Location())
	attendanceService := service.NewAttendanceService(log, attendanceRepo)

	var (
		redisClient *redis.Client
		teamService *service.TeamService
	)
	if cfg.Redis.URL != "" {
		redisClient, err = cache.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			storage.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		log.Info("team cache enabled", slog.Duration("ttl", cfg.Redis.CacheTTL))
		teamService = service.NewTeamService(log, teamRepo, cache.NewTeamCache(redisClient, cfg.Redis.CacheTTL))
	} else {
		teamService = service.NewTeamService(log, teamRepo, nil)
	}

	store, err := newFileStore(ctx, cfg.Files)
	if err != nil {
		storage.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	fileService := service.NewFileService(log, store)

	routerDependencies := v1.RouterDependencies{
		DB:                storage,
		IdentityService:   identityService,
		TokenVerifier:     identityService,
		ProjectService:    projectService,
		MembershipService: membershipService,
		TaskService:       taskService,
		ScheduleService:   scheduleService,
		TeamService:       teamService,
		AttendanceService: attendanceService,
		FileService:       fileService,
		MaxUploadBytes:    cfg.Server.MaxUpload,
		RequestTimeout:    cfg.Server.Timeout,
	}

	restApp := rest.New(
		log,
		&routerDependencies,
		cfg.Server,
		cfg.Telemetry.ServiceName,
	)

	return &App{
		log:               log,
		storage:           storage,
		redis:             redisClient,
		restApp:           restApp,
		shutdownTelemetry: shutdownTelemetry,
	}, nil
}

func newFileStore(ctx context.Context, cfg config.FilesConfig) (service.FileStore, error) {
	switch cfg.Backend {
	case "s3":
		client, err := files.NewS3Client(ctx)
		if err != nil {
			return nil, err
		}
		return files.NewS3Store(client, cfg.Bucket, cfg.Prefix), nil
	case "disk", "":
		return files.NewDiskStore(cfg.Dir)
	default:
		return nil, fmt.Errorf("unknown files backend %q", cfg.Backend)
	}
}

// Run blocks until the server stops. A normal shutdown returns nil.
func (a *App) Run() error {
	const op = "app.Run"
	a.log.With(slog.String("op", op)).Info("starting application")

	return a.restApp.Run()
}

func (a *App) MustRun() {
	if err := a.Run(); err != nil {
		panic(err)
	}
}

func (a *App) GracefulShutdown() {
	const op = "app.GracefulShutdown"

	log := a.log.With(slog.String("op", op))
	log.Info("shutting down application")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.restApp.Stop(ctx); err != nil {
		log.Error("failed to stop HTTP server", sl.Err(err))
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Error("failed to close redis client", sl.Err(err))
		}
	}

	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			log.Error("failed to close database", sl.Err(err))
		} else {
			log.Info("database connection closed")
		}
	}

	if err := a.shutdownTelemetry(ctx); err != nil {
		log.Error("failed to flush traces", sl.Err(err))
	}
}
