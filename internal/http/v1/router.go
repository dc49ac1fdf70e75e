package v1

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Leyinc1/manuelbest/internal/http/v1/handler"
	"github.com/Leyinc1/manuelbest/internal/http/v1/middleware"
	"github.com/Leyinc1/manuelbest/internal/http/v1/router"
)

const BasePath = "/api/v1"

type Router interface {
	SetupRoutes(r chi.Router)
}

type RouterDependencies struct {
	DB                handler.Pinger
	IdentityService   handler.Identity
	TokenVerifier     middleware.TokenVerifier
	ProjectService    handler.Projects
	MembershipService handler.Memberships
	TaskService       handler.Tasks
	ScheduleService   handler.Schedules
	TeamService       handler.Teams
	AttendanceService handler.Attendance
	FileService       handler.Files
	MaxUploadBytes    int64
	RequestTimeout    time.Duration
}

func SetupRoutes(r chi.Router, deps *RouterDependencies, log *slog.Logger) {
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimw.Recoverer)
	if deps.RequestTimeout > 0 {
		r.Use(chimw.Timeout(deps.RequestTimeout))
	}

	authMW := middleware.Auth(deps.TokenVerifier, log)

	routers := []Router{
		router.NewHealthRouter(deps.DB, log),
		router.NewAuthRouter(deps.IdentityService, authMW, log),
		router.NewProjectRouter(deps.ProjectService, deps.MembershipService, authMW, log),
		router.NewTaskRouter(deps.TaskService, authMW, log),
		router.NewScheduleRouter(deps.ScheduleService, authMW, log),
		router.NewTeamRouter(deps.TeamService, log),
		router.NewAttendanceRouter(deps.AttendanceService, log),
		router.NewFileRouter(deps.FileService, deps.MaxUploadBytes, authMW, log),
	}

	r.Route(BasePath, func(r chi.Router) {
		for _, serviceRouter := range routers {
			serviceRouter.SetupRoutes(r)
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"route not found","code":"NOT_FOUND"}` + "\n"))
	})
}
