package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Leyinc1/manuelbest/internal/apperrors"
	"github.com/Leyinc1/manuelbest/internal/domain/models"
	"github.com/Leyinc1/manuelbest/internal/http/v1/middleware"
)

const maxJSONBody = 1 << 20

var errNoIdentity = fmt.Errorf("%w: no identity in request", apperrors.ErrUnauthenticated)

// decodeJSON reads a single JSON document into v. Malformed bodies are
// validation errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.Validation("request body is required")
		}
		return apperrors.Validation("invalid request body: " + err.Error())
	}
	return nil
}

func identity(r *http.Request) (models.Identity, error) {
	ident, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		return models.Identity{}, errNoIdentity
	}
	return ident, nil
}
