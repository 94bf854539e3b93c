package router

import (
	"net/http"

	"shop-kart/internal/handler"
	"shop-kart/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	orderHandler *handler.OrderHandler,
	productHandler *handler.ProductHandler,
	inventoryHandler *handler.InventoryHandler,
	notificationHandler *handler.NotificationHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Order routes
	mux.HandleFunc("POST /api/orders/checkout", orderHandler.Checkout)
	mux.HandleFunc("GET /api/orders/my", orderHandler.MyOrders)
	mux.HandleFunc("GET /api/orders", orderHandler.List)
	mux.HandleFunc("GET /api/orders/{id}", orderHandler.GetByID)
	mux.HandleFunc("PATCH /api/orders/{id}/status", orderHandler.UpdateStatus)
	mux.HandleFunc("POST /api/orders/{id}/cancel", orderHandler.Cancel)
	mux.HandleFunc("POST /api/orders/{id}/refund", orderHandler.Refund)

	// Catalogue routes
	mux.HandleFunc("GET /api/products/{id}", productHandler.GetByID)
	mux.HandleFunc("POST /api/products/{id}/adjust-stock", productHandler.AdjustStock)
	mux.HandleFunc("PUT /api/products/{id}/flash-deal", productHandler.SetFlashDeal)
	mux.HandleFunc("DELETE /api/products/{id}/flash-deal", productHandler.ClearFlashDeal)

	// Inventory ledger routes
	mux.HandleFunc("GET /api/inventory", inventoryHandler.List)

	// Notification routes
	mux.HandleFunc("GET /api/notifications", notificationHandler.List)
	mux.HandleFunc("PATCH /api/notifications/{id}/read", notificationHandler.MarkRead)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth -> UserIdentity
	var h http.Handler = mux
	h = middleware.UserIdentity(logger)(h)
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
