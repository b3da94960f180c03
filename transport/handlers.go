// Package transport exposes the HTTP API: route table, role gating, request
// decoding and the error-to-status mapping.
package transport

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"storefront/pkg/auth"
	"storefront/pkg/domain/model"
	"storefront/pkg/domain/service"
)

type Handler struct {
	gate      auth.AccessGate
	accounts  service.AccountService
	catalog   service.CatalogService
	orders    service.OrderProcessor
	lifecycle service.OrderLifecycle
	dashboard service.DashboardService
}

func NewHandler(
	gate auth.AccessGate,
	accounts service.AccountService,
	catalog service.CatalogService,
	orders service.OrderProcessor,
	lifecycle service.OrderLifecycle,
	dashboard service.DashboardService,
) *Handler {
	return &Handler{
		gate:      gate,
		accounts:  accounts,
		catalog:   catalog,
		orders:    orders,
		lifecycle: lifecycle,
		dashboard: dashboard,
	}
}

type lineItemResponse struct {
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
	Status     string `json:"status"`
}

type orderResponse struct {
	ID         string             `json:"id"`
	AccountID  string             `json:"accountId"`
	Items      []lineItemResponse `json:"items"`
	TotalCents int64              `json:"totalCents"`
	Status     string             `json:"status"`
	CreatedAt  time.Time          `json:"createdAt"`
}

type productResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	PriceCents    int64     `json:"priceCents"`
	StockQuantity int       `json:"stockQuantity"`
	Deleted       bool      `json:"deleted"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type accountResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toOrderResponse(order *model.Order) orderResponse {
	items := make([]lineItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, lineItemResponse{
			ProductID:  item.ProductID.String(),
			Quantity:   item.Quantity,
			PriceCents: item.PriceCents,
			Status:     item.Status.String(),
		})
	}
	return orderResponse{
		ID:         order.ID.String(),
		AccountID:  order.AccountID.String(),
		Items:      items,
		TotalCents: order.TotalCents,
		Status:     order.Status.String(),
		CreatedAt:  order.CreatedAt,
	}
}

func toOrderResponses(orders []*model.Order) []orderResponse {
	responses := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, toOrderResponse(order))
	}
	return responses
}

func toProductResponse(product *model.Product) productResponse {
	return productResponse{
		ID:            product.ID.String(),
		Name:          product.Name,
		Description:   product.Description,
		PriceCents:    product.PriceCents,
		StockQuantity: product.StockQuantity,
		Deleted:       product.Deleted,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}

func toAccountResponse(account *model.Account) accountResponse {
	return accountResponse{
		ID:        account.ID.String(),
		Email:     account.Email,
		Name:      account.Name,
		Phone:     account.Phone,
		Role:      account.Role.String(),
		CreatedAt: account.CreatedAt,
	}
}

// --- auth ---

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body", err.Error())
		return
	}
	if req.Email == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "email and name are required", "")
		return
	}

	account, err := h.accounts.RegisterOperator(req.Email, req.Name, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAccountResponse(account))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body", err.Error())
		return
	}

	token, err := h.accounts.Login(req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"accessToken": token,
		"tokenType":   "bearer",
	})
}

// --- orders ---

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request, caller *model.Account) {
	var req struct {
		Items []struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		} `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body", err.Error())
		return
	}

	items := make([]service.ItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid product id", item.ProductID)
			return
		}
		items = append(items, service.ItemRequest{ProductID: productID, Quantity: item.Quantity})
	}

	order, err := h.orders.PlaceOrder(caller, items)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *Handler) listOwnOrders(w http.ResponseWriter, r *http.Request, caller *model.Account) {
	orders, err := h.orders.ListOrders(caller.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request, caller *model.Account) {
	orderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id", "")
		return
	}

	order, err := h.orders.GetOrder(caller, orderID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) listAllOrders(w http.ResponseWriter, r *http.Request, _ *model.Account) {
	orders, err := h.orders.ListAllOrders()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request, _ *model.Account) {
	orderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id", "")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body", err.Error())
		return
	}

	// The status string is validated before anything is loaded or written.
	status, err := model.ParseOrderStatus(req.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	order, err := h.lifecycle.Transition(orderID, status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// --- catalog ---

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r, 0, 100)
	products, _, err := h.catalog.ListProducts(offset, limit, false)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	responses := make([]productResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, toProductResponse(product))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id", "")
		return
	}

	product, err := h.catalog.GetProduct(productID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request, _ *model.Account) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		PriceCents  int64  `json:"priceCents"`
		Stock       int    `json:"stockQuantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body", err.Error())
		return
	}

	product, err := h.catalog.CreateProduct(req.Name, req.Description, req.PriceCents, req.Stock)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductResponse(product))
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request, _ *model.Account) {
	productID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id", "")
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		PriceCents  *int64  `json:"priceCents"`
		Stock       *int    `json:"stockQuantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body", err.Error())
		return
	}

	product, err := h.catalog.UpdateProduct(productID, model.ProductUpdate{
		Name:          req.Name,
		Description:   req.Description,
		PriceCents:    req.PriceCents,
		StockQuantity: req.Stock,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request, _ *model.Account) {
	productID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id", "")
		return
	}

	if err := h.catalog.SoftDeleteProduct(productID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "product deleted"})
}

func (h *Handler) listProductsAdmin(w http.ResponseWriter, r *http.Request, _ *model.Account) {
	offset, limit := pagination(r, 0, 20)
	products, total, err := h.catalog.ListProducts(offset, limit, true)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	responses := make([]productResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, toProductResponse(product))
	}
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"products": responses,
		"pagination": map[string]int{
			"totalItems":  total,
			"totalPages":  totalPages,
			"currentPage": offset/limit + 1,
			"pageSize":    limit,
			"skip":        offset,
		},
	})
}

// --- accounts ---

func (h *Handler) createShopper(w http.ResponseWriter, r *http.Request, _ *model.Account) {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body", err.Error())
		return
	}
	if req.Email == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "email and name are required", "")
		return
	}

	account, err := h.accounts.CreateShopper(req.Email, req.Name, req.Phone, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAccountResponse(account))
}

func (h *Handler) listShoppers(w http.ResponseWriter, r *http.Request, _ *model.Account) {
	accounts, err := h.accounts.ListShoppers()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	responses := make([]accountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, toAccountResponse(account))
	}
	writeJSON(w, http.StatusOK, responses)
}

// --- dashboard ---

func (h *Handler) dashboardStats(w http.ResponseWriter, r *http.Request, _ *model.Account) {
	stats, err := h.dashboard.Stats()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"totalShoppers": stats.TotalShoppers,
		"totalProducts": stats.TotalProducts,
		"totalOrders":   stats.TotalOrders,
		"revenueCents":  stats.RevenueCents,
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func pagination(r *http.Request, defaultSkip, defaultLimit int) (offset, limit int) {
	offset = defaultSkip
	limit = defaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("skip")); err == nil && v >= 0 {
		offset = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 1000 {
		limit = v
	}
	return offset, limit
}
