package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Leyinc1/manuelbest/internal/domain/models"
	"github.com/Leyinc1/manuelbest/internal/http/v1/response"
)

type ctxKey struct{}

type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (models.Identity, error)
}

// Auth rejects requests without a valid bearer token and stores the
// resolved identity in the request context.
func Auth(verifier TokenVerifier, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				response.Error(w, log, http.StatusUnauthorized, "missing bearer token", nil)
				return
			}

			ident, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				response.ServiceError(w, log, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), ident)))
		})
	}
}

func WithIdentity(ctx context.Context, ident models.Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, ident)
}

func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	ident, ok := ctx.Value(ctxKey{}).(models.Identity)
	return ident, ok && ident.UserID != ""
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
