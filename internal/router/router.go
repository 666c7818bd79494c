package router

import (
	"net/http"

	"github.com/BerylCAtieno/receipt-reader-api/internal/config"
	"github.com/BerylCAtieno/receipt-reader-api/internal/handlers"
	"github.com/BerylCAtieno/receipt-reader-api/internal/middleware"
	"github.com/BerylCAtieno/receipt-reader-api/internal/services"
	"github.com/BerylCAtieno/receipt-reader-api/internal/utils"

	"github.com/gorilla/mux"
)

func NewRouter(receiptService services.ReceiptService, logger *utils.Logger, cfg *config.Config) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Recovery(logger))

	receiptHandler := handlers.NewReceiptHandler(receiptService, logger, cfg.MaxFileSize)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	// Receipt endpoints. /parse is registered before /{id} routes.
	api.HandleFunc("/receipts/parse", receiptHandler.ParseReceipt).Methods(http.MethodPost)
	api.HandleFunc("/receipts", receiptHandler.UploadReceipt).Methods(http.MethodPost)
	api.HandleFunc("/receipts", receiptHandler.ListReceipts).Methods(http.MethodGet)
	api.HandleFunc("/receipts/{id}", receiptHandler.GetReceipt).Methods(http.MethodGet)
	api.HandleFunc("/receipts/{id}", receiptHandler.DeleteReceipt).Methods(http.MethodDelete)
	api.HandleFunc("/receipts/{id}/document", receiptHandler.GetDocument).Methods(http.MethodGet)
	api.HandleFunc("/receipts/{id}/items", receiptHandler.GetItems).Methods(http.MethodGet)
	api.HandleFunc("/receipts/{id}/table", receiptHandler.GetUnitTable).Methods(http.MethodGet)

	return r
}
