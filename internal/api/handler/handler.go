package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/pos/internal/api/response"
	"github.com/go-chi/chi/v5"
)

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", response.ErrBadRequest, err)
	}
	return nil
}

// pathID 取出路由上的 {id}
func pathID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid id %q", response.ErrBadRequest, raw)
	}
	return uint(id), nil
}
