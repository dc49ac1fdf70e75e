package router

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/Leyinc1/manuelbest/internal/http/v1/handler"
)

type AuthRouter struct {
	handler *handler.AuthHandler
	authMW  Middleware
}

func NewAuthRouter(identity handler.Identity, authMW Middleware, log *slog.Logger) *AuthRouter {
	return &AuthRouter{
		handler: handler.NewAuthHandler(identity, log),
		authMW:  authMW,
	}
}

func (ar *AuthRouter) SetupRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", ar.handler.Register)
		r.Post("/login", ar.handler.Login)
		r.With(ar.authMW).Get("/me", ar.handler.Me)
	})
}
