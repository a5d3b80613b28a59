package httpapi

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	platformhealth "github.com/whitesvil1-lab/JustCani/platform/health/http"
	platformobservability "github.com/whitesvil1-lab/JustCani/platform/observability"
)

// NewRouter создаёт и настраивает HTTP роутер stub бэкенда
// checks - проверки готовности для /health; logger используется observability middleware
func NewRouter(handler *Handler, checks map[string]platformhealth.Check, logger *zap.Logger) chi.Router {
	router := chi.NewRouter()

	if logger != nil {
		router.Use(platformobservability.HTTPMiddleware("posstub", logger))
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/search", handler.GetSearch)
		r.Get("/search_lelang", handler.GetSearchAuction)
		r.Post("/checkout", handler.PostCheckout)
		r.Post("/checkout_lelang", handler.PostCheckoutAuction)
		r.Post("/debug_cart", handler.PostDebugCart)

		r.Get("/products/for_barcode", handler.GetProductsForBarcode)
		r.Get("/print_barcode/{sku}", handler.GetPrintBarcode)

		r.Route("/barcode", func(r chi.Router) {
			r.Get("/status", handler.GetBarcodeStatus)
			r.Post("/generate_all", handler.PostGenerateAll)
			r.Get("/{sku}", handler.GetBarcode)
			r.Get("/{sku}/download", handler.GetBarcodeDownload)
		})
	})

	router.Get("/health", platformhealth.Handler(checks))

	return router
}
