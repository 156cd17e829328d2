package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"tastehaven/internal/domain"
	"tastehaven/internal/service"
)

type Handler struct {
	Catalog service.CatalogServiceInterface
	Cart    service.CartServiceInterface
	Orders  service.OrderServiceInterface
	Auth    service.AuthServiceInterface
}

func NewHandler(catalog service.CatalogServiceInterface, cart service.CartServiceInterface, orders service.OrderServiceInterface, auth service.AuthServiceInterface) *Handler {
	return &Handler{
		Catalog: catalog,
		Cart:    cart,
		Orders:  orders,
		Auth:    auth,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/restaurant", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurant", h.updateRestaurant).Methods("PUT")

	r.HandleFunc("/api/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/menu", h.createMenuItem).Methods("POST")
	r.HandleFunc("/api/menu/{id}", h.updateMenuItem).Methods("PUT")
	r.HandleFunc("/api/menu/{id}", h.deleteMenuItem).Methods("DELETE")

	r.HandleFunc("/api/cart/{session}", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart/{session}", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/cart/{session}/items", h.addCartItem).Methods("POST")
	r.HandleFunc("/api/cart/{session}/items/{id}", h.updateCartItem).Methods("PUT")
	r.HandleFunc("/api/cart/{session}/items/{id}", h.removeCartItem).Methods("DELETE")

	r.HandleFunc("/api/orders/checkout", h.checkout).Methods("POST")
	r.HandleFunc("/api/orders/qrcode", h.handoffQRCode).Methods("GET")

	r.HandleFunc("/api/auth/login", h.login).Methods("POST")
	r.HandleFunc("/api/auth/signup", h.signup).Methods("POST")
	r.HandleFunc("/api/auth/logout", h.logout).Methods("POST")
	r.HandleFunc("/api/auth/session", h.session).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "storefront",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrCartEmpty), errors.Is(err, service.ErrMissingRoutingNumber):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrAuthentication):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// --- restaurant ---

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurant, _ := h.Catalog.Get()
	writeJSON(w, http.StatusOK, restaurant)
}

type restaurantUpdateRequest struct {
	Name           *string `json:"name"`
	Logo           *string `json:"logo"`
	Tagline        *string `json:"tagline"`
	WhatsAppNumber *string `json:"whatsappNumber"`
	Description    *string `json:"description"`
	Address        *string `json:"address"`
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	var req restaurantUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name != nil && *req.Name == "" {
		http.Error(w, "restaurant name cannot be empty", http.StatusBadRequest)
		return
	}
	if req.WhatsAppNumber != nil && !digitsOnly(*req.WhatsAppNumber) {
		http.Error(w, "whatsapp number must contain digits only", http.StatusBadRequest)
		return
	}

	h.Catalog.UpdateRestaurant(r.Context(), domain.RestaurantUpdate{
		Name:           req.Name,
		Logo:           req.Logo,
		Tagline:        req.Tagline,
		WhatsAppNumber: req.WhatsAppNumber,
		Description:    req.Description,
		Address:        req.Address,
	})

	restaurant, _ := h.Catalog.Get()
	writeJSON(w, http.StatusOK, restaurant)
}

// --- menu ---

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	_, items := h.Catalog.Get()

	category := r.URL.Query().Get("category")
	if category != "" {
		filtered := []domain.MenuItem{}
		for _, item := range items {
			if item.Category == category {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	writeJSON(w, http.StatusOK, items)
}

type menuItemRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Available   *bool    `json:"available"`
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "item name is required", http.StatusBadRequest)
		return
	}
	if req.Price == nil || *req.Price < 0 {
		http.Error(w, "item price is required and must not be negative", http.StatusBadRequest)
		return
	}
	if req.Category == "" {
		req.Category = "appetizers"
	}
	if !domain.ValidCategory(req.Category) {
		http.Error(w, "unknown category: "+req.Category, http.StatusBadRequest)
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	item := domain.MenuItem{
		ID:          strconv.FormatInt(time.Now().UnixMilli(), 10),
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Available:   available,
	}
	h.Catalog.AddItem(r.Context(), item)

	writeJSON(w, http.StatusCreated, item)
}

type menuItemUpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	Category    *string  `json:"category"`
	Available   *bool    `json:"available"`
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req menuItemUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name != nil && *req.Name == "" {
		http.Error(w, "item name cannot be empty", http.StatusBadRequest)
		return
	}
	if req.Price != nil && *req.Price < 0 {
		http.Error(w, "item price must not be negative", http.StatusBadRequest)
		return
	}
	if req.Category != nil && !domain.ValidCategory(*req.Category) {
		http.Error(w, "unknown category: "+*req.Category, http.StatusBadRequest)
		return
	}

	found := h.Catalog.UpdateItem(r.Context(), id, domain.MenuItemUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Available:   req.Available,
	})
	if !found {
		writeJSON(w, http.StatusOK, map[string]bool{"updated": false})
		return
	}

	_, items := h.Catalog.Get()
	for _, item := range items {
		if item.ID == id {
			writeJSON(w, http.StatusOK, item)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	h.Catalog.DeleteItem(r.Context(), mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

// --- cart ---

type cartView struct {
	Items      []domain.CartLine `json:"items"`
	ItemCount  int               `json:"item_count"`
	TotalCents int64             `json:"total_cents"`
	Total      string            `json:"total"`
}

func (h *Handler) cartViewFor(sessionID string) cartView {
	lines := h.Cart.Lines(sessionID)
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	total := h.Cart.TotalCents(sessionID)
	return cartView{
		Items:      lines,
		ItemCount:  count,
		TotalCents: total,
		Total:      service.FormatAmount(total),
	}
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cartViewFor(mux.Vars(r)["session"]))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.Cart.Clear(mux.Vars(r)["session"])
	w.WriteHeader(http.StatusNoContent)
}

type cartAddRequest struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	session := mux.Vars(r)["session"]

	var req cartAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ID == "" || req.Name == "" {
		http.Error(w, "item id and name are required", http.StatusBadRequest)
		return
	}
	if req.Price < 0 {
		http.Error(w, "item price must not be negative", http.StatusBadRequest)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	line := domain.CartLine{
		ID:         req.ID,
		Name:       req.Name,
		PriceCents: domain.ToCents(req.Price),
		Image:      req.Image,
	}
	if err := h.Cart.AddItem(session, line, req.Quantity); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.cartViewFor(session))
}

type cartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req cartQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.Cart.UpdateQuantity(vars["session"], vars["id"], req.Quantity)
	writeJSON(w, http.StatusOK, h.cartViewFor(vars["session"]))
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	h.Cart.RemoveItem(vars["session"], vars["id"])
	writeJSON(w, http.StatusOK, h.cartViewFor(vars["session"]))
}

// --- orders ---

type checkoutRequest struct {
	SessionID     string `json:"session_id"`
	CustomerName  string `json:"customer_name"`
	CustomerNotes string `json:"customer_notes"`
}

type checkoutResponse struct {
	Message    string `json:"message"`
	HandoffURL string `json:"url"`
	TotalCents int64  `json:"total_cents"`
	Total      string `json:"total"`
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.Orders.Checkout(r.Context(), service.CheckoutRequest{
		SessionID:     req.SessionID,
		CustomerName:  req.CustomerName,
		CustomerNotes: req.CustomerNotes,
		UserAgent:     r.UserAgent(),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, checkoutResponse{
		Message:    result.Message,
		HandoffURL: result.HandoffURL,
		TotalCents: result.TotalCents,
		Total:      service.FormatAmount(result.TotalCents),
	})
}

func (h *Handler) handoffQRCode(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	png, err := h.Orders.HandoffQR(r.Context(), service.CheckoutRequest{
		SessionID:     query.Get("session"),
		CustomerName:  query.Get("name"),
		CustomerNotes: query.Get("notes"),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// --- auth ---

type credentialsRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	RestaurantName string `json:"restaurant_name"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	sess, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	sess, err := h.Auth.Signup(r.Context(), req.Email, req.Password, req.RestaurantName)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Logout(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	sess := h.Auth.CurrentSession()
	if sess == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}
