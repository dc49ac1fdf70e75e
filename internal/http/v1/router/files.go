package router

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/Leyinc1/manuelbest/internal/http/v1/handler"
)

type FileRouter struct {
	handler *handler.FileHandler
	authMW  Middleware
}

func NewFileRouter(files handler.Files, maxUpload int64, authMW Middleware, log *slog.Logger) *FileRouter {
	return &FileRouter{
		handler: handler.NewFileHandler(files, maxUpload, log),
		authMW:  authMW,
	}
}

func (fr *FileRouter) SetupRoutes(r chi.Router) {
	r.Route("/files", func(r chi.Router) {
		r.Use(fr.authMW)

		r.Get("/", fr.handler.List)
		r.Post("/upload", fr.handler.Upload)
		r.Get("/download/{name}", fr.handler.Download)
	})
}
