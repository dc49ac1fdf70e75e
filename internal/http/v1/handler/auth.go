package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Leyinc1/manuelbest/internal/domain/models"
	"github.com/Leyinc1/manuelbest/internal/http/v1/response"
)

type (
	CredentialsRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	RegisterResponse struct {
		ID string `json:"id"`
	}
)

type Identity interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (models.Session, error)
}

type AuthHandler struct {
	identity Identity
	log      *slog.Logger
}

func NewAuthHandler(identity Identity, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		identity: identity,
		log:      log,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	const op = "handler.auth.Register"

	log := h.log.With(slog.String("op", op))

	var req CredentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.ServiceError(w, log, err)
		return
	}

	id, err := h.identity.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	response.JSON(w, log, http.StatusCreated, RegisterResponse{ID: id})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "handler.auth.Login"

	log := h.log.With(slog.String("op", op))

	var req CredentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.ServiceError(w, log, err)
		return
	}

	session, err := h.identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	response.JSON(w, log, http.StatusOK, session)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	const op = "handler.auth.Me"

	log := h.log.With(slog.String("op", op))

	ident, err := identity(r)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	response.JSON(w, log, http.StatusOK, ident)
}
