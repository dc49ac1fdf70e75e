package integration

import (
	"fmt"
	"log/slog"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"github.com/Leyinc1/manuelbest/internal/config"
	v1 "github.com/Leyinc1/manuelbest/internal/http/v1"
	"github.com/Leyinc1/manuelbest/internal/lib/jwt"
	"github.com/Leyinc1/manuelbest/internal/lib/migrator"
	"github.com/Leyinc1/manuelbest/internal/repo"
	"github.com/Leyinc1/manuelbest/internal/service"
	"github.com/Leyinc1/manuelbest/internal/storage/files"
	"github.com/Leyinc1/manuelbest/internal/storage/postgresql"
)

// EnvEnable turns the suite on. Connection settings come from the usual
// PG_* variables.
const EnvEnable = "INTEGRATION_TESTS"

type TestServer struct {
	DB      *sqlx.DB
	Server  *httptest.Server
	storage *postgresql.Storage
}

func NewTestServer(uploadDir string) (*TestServer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	if err := migrator.RunMigrations(cfg.Postgres, log); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	storage := postgresql.Init(cfg.Postgres)
	db := storage.GetDB()

	userRepo := repo.NewUserRepo(db)
	membershipRepo := repo.NewMembershipRepo(db)

	issuer := jwt.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, time.Hour)
	identityService := service.NewIdentityService(log, userRepo, issuer, 4)
	membershipService := service.NewMembershipService(log, membershipRepo, userRepo)

	store, err := files.NewDiskStore(uploadDir)
	if err != nil {
		storage.Close()
		return nil, fmt.Errorf("failed to open upload dir: %w", err)
	}

	deps := &v1.RouterDependencies{
		DB:                storage,
		IdentityService:   identityService,
		TokenVerifier:     identityService,
		ProjectService:    service.NewProjectService(log, repo.NewProjectRepo(db)),
		MembershipService: membershipService,
		TaskService:       service.NewTaskService(log, repo.NewTaskRepo(db), membershipService, cfg.Tasks.Statuses),
		ScheduleService:   service.NewScheduleService(log, repo.NewScheduleRepo(db), time.UTC),
		TeamService:       service.NewTeamService(log, repo.NewTeamRepo(db), nil),
		AttendanceService: service.NewAttendanceService(log, repo.NewAttendanceRepo(db)),
		FileService:       service.NewFileService(log, store),
		MaxUploadBytes:    cfg.Server.MaxUpload,
	}

	r := chi.NewRouter()
	v1.SetupRoutes(r, deps, log)

	return &TestServer{
		DB:      db,
		Server:  httptest.NewServer(r),
		storage: storage,
	}, nil
}

func (s *TestServer) LoadFixtures() error {
	tables := []string{"attendance", "members", "teams", "schedule_items", "tasks", "project_members", "projects", "users"}
	for _, table := range tables {
		_, err := s.DB.Exec(fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}

	return nil
}

func (s *TestServer) Close() {
	s.Server.Close()
	s.storage.Close()
}
