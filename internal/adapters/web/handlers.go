package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ThathsaraniLiyanage/MiniSO-sales-order-management-system/internal/app"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	r.Get("/api/health", h.health)

	// 1 MB body limit on all mutating endpoints.
	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20))

		r.Route("/api/clients", func(r chi.Router) {
			r.Get("/", h.apiListClients)
			r.Post("/", h.apiCreateClient)
			r.Get("/{id}", h.apiGetClient)
			r.Put("/{id}", h.apiUpdateClient)
			r.Delete("/{id}", h.apiDeleteClient)
		})

		r.Route("/api/items", func(r chi.Router) {
			r.Get("/", h.apiListItems)
			r.Post("/", h.apiCreateItem)
			r.Get("/{id}", h.apiGetItem)
			r.Put("/{id}", h.apiUpdateItem)
			r.Delete("/{id}", h.apiDeleteItem)
		})

		r.Route("/api/orders", func(r chi.Router) {
			r.Get("/", h.apiListOrders)
			r.Post("/", h.apiCreateOrder)
			r.Get("/{id}", h.apiGetOrder)
			r.Put("/{id}", h.apiReplaceOrder)
			r.Delete("/{id}", h.apiDeleteOrder)
		})
	})

	h.router = r
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// health handles GET /api/health.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
