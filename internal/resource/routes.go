package resource

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/{resource}", h.List)
	r.Post("/{resource}", h.Create)
	r.Put("/{resource}/{id}", h.Update)
	r.Delete("/{resource}/{id}", h.Delete)

	return r
}
