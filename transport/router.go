package transport

import (
	"net/http"

	"github.com/gorilla/mux"

	"storefront/pkg/domain/model"
	"storefront/pkg/metrics"
)

func NewRouter(h *Handler, m *metrics.ServerMetrics) http.Handler {
	r := mux.NewRouter()
	r.Use(requestLogMiddleware)
	r.Use(m.Middleware)

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/signup", h.signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)

	api.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", h.getProduct).Methods(http.MethodGet)

	api.HandleFunc("/orders", h.withRole(model.RoleShopper, h.placeOrder)).Methods(http.MethodPost)
	api.HandleFunc("/orders", h.withRole(model.RoleShopper, h.listOwnOrders)).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}", h.withRole(model.RoleShopper, h.getOrder)).Methods(http.MethodGet)

	api.HandleFunc("/admin/orders", h.withRole(model.RoleOperator, h.listAllOrders)).Methods(http.MethodGet)
	api.HandleFunc("/admin/orders/{id}", h.withRole(model.RoleOperator, h.getOrder)).Methods(http.MethodGet)
	api.HandleFunc("/admin/orders/{id}/status", h.withRole(model.RoleOperator, h.updateOrderStatus)).Methods(http.MethodPatch)

	api.HandleFunc("/admin/products", h.withRole(model.RoleOperator, h.createProduct)).Methods(http.MethodPost)
	api.HandleFunc("/admin/products", h.withRole(model.RoleOperator, h.listProductsAdmin)).Methods(http.MethodGet)
	api.HandleFunc("/admin/products/{id}", h.withRole(model.RoleOperator, h.updateProduct)).Methods(http.MethodPut)
	api.HandleFunc("/admin/products/{id}", h.withRole(model.RoleOperator, h.deleteProduct)).Methods(http.MethodDelete)

	api.HandleFunc("/admin/accounts", h.withRole(model.RoleOperator, h.createShopper)).Methods(http.MethodPost)
	api.HandleFunc("/admin/accounts", h.withRole(model.RoleOperator, h.listShoppers)).Methods(http.MethodGet)
	api.HandleFunc("/admin/dashboard", h.withRole(model.RoleOperator, h.dashboardStats)).Methods(http.MethodGet)

	return r
}
