package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/whitesvil1-lab/JustCani/internal/model"
	"github.com/whitesvil1-lab/JustCani/internal/stub"
	platformobservability "github.com/whitesvil1-lab/JustCani/platform/observability"
)

// Handler содержит HTTP-обработчики stub бэкенда кассы.
// Форматы запросов и ответов повторяют контракт настоящего бэкенда (/api/...)
type Handler struct {
	catalog *stub.Catalog
	logger  *zap.Logger
}

// NewHandler создаёт новый HTTP handler
func NewHandler(catalog *stub.Catalog, logger *zap.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// productResponse товар в ответе поиска; у лотов аукциона нет поля stok
type productResponse struct {
	SKU         string `json:"no_SKU"`
	Name        string `json:"Name_product"`
	Price       any    `json:"Price"`
	Stock       *int   `json:"stok,omitempty"`
	Type        string `json:"type"`
	ExpiredDate string `json:"expired_date,omitempty"`
}

// checkoutItem позиция в теле checkout; остальные поля line item бэкенду не нужны
type checkoutItem struct {
	SKU model.SKU `json:"sku"`
	Qty int       `json:"qty"`
}

type checkoutRequest struct {
	Items []checkoutItem `json:"items"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		platformobservability.LoggerFromContext(r.Context(), h.logger).Error("Failed to encode response", zap.Error(err))
	}
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request, mode model.Mode) {
	query := r.URL.Query().Get("q")
	products := h.catalog.Search(mode, query)

	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		item := productResponse{
			SKU:         p.SKU,
			Name:        p.Name,
			Price:       p.Price,
			Type:        "biasa",
			ExpiredDate: p.ExpiredDate,
		}
		if mode == model.ModeAuction {
			item.Type = "lelang"
		} else {
			stock := p.Stock
			item.Stock = &stock
		}
		resp = append(resp, item)
	}

	platformobservability.LoggerFromContext(r.Context(), h.logger).Debug("Search completed",
		zap.String("mode", string(mode)),
		zap.String("query", query),
		zap.Int("results", len(resp)))
	h.writeJSON(w, r, http.StatusOK, resp)
}

// GetSearch обрабатывает GET /api/search
func (h *Handler) GetSearch(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, model.ModeRegular)
}

// GetSearchAuction обрабатывает GET /api/search_lelang
func (h *Handler) GetSearchAuction(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, model.ModeAuction)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request, mode model.Mode) {
	log := platformobservability.LoggerFromContext(r.Context(), h.logger)

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Invalid checkout payload", zap.Error(err))
		h.writeJSON(w, r, http.StatusBadRequest, model.CheckoutResult{Success: false, Message: fmt.Sprintf("Invalid JSON: %v", err)})
		return
	}

	lines := make([]stub.CheckoutLine, 0, len(req.Items))
	for _, item := range req.Items {
		qty := item.Qty
		if qty == 0 {
			qty = 1
		}
		lines = append(lines, stub.CheckoutLine{SKU: item.SKU.String(), Qty: qty})
	}

	tx, err := h.catalog.Checkout(mode, lines)
	if err != nil {
		log.Info("Checkout rejected", zap.String("mode", string(mode)), zap.Error(err))
		// Логическая ошибка бэкенда отдаётся с 200 и success=false
		h.writeJSON(w, r, http.StatusOK, model.CheckoutResult{Success: false, Message: err.Error()})
		return
	}

	log.Info("Checkout completed",
		zap.String("mode", string(mode)),
		zap.String("transaction_id", tx.ID),
		zap.String("total", tx.Total.String()))
	h.writeJSON(w, r, http.StatusOK, model.CheckoutResult{
		Success: true,
		Message: fmt.Sprintf("Transaction %s succeeded. Total: Rp%s", tx.ID, tx.Total.StringFixed(0)),
	})
}

// PostCheckout обрабатывает POST /api/checkout
func (h *Handler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	h.checkout(w, r, model.ModeRegular)
}

// PostCheckoutAuction обрабатывает POST /api/checkout_lelang
func (h *Handler) PostCheckoutAuction(w http.ResponseWriter, r *http.Request) {
	h.checkout(w, r, model.ModeAuction)
}

// GetProductsForBarcode обрабатывает GET /api/products/for_barcode
func (h *Handler) GetProductsForBarcode(w http.ResponseWriter, r *http.Request) {
	products := h.catalog.BarcodeProducts()

	out := make([]model.BarcodeProduct, 0, len(products))
	for _, p := range products {
		out = append(out, model.BarcodeProduct{SKU: model.SKU(p.SKU), Name: p.Name, Price: p.Price})
	}
	h.writeJSON(w, r, http.StatusOK, map[string]any{"success": true, "products": out})
}

// GetBarcode обрабатывает GET /api/barcode/{sku}
func (h *Handler) GetBarcode(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")
	uri, err := h.catalog.Barcode(sku)
	if err != nil {
		h.writeJSON(w, r, statusFor(err), map[string]any{"success": false, "message": err.Error()})
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]any{"success": true, "barcode": uri})
}

// GetBarcodeDownload обрабатывает GET /api/barcode/{sku}/download - отдаёт PNG как вложение
func (h *Handler) GetBarcodeDownload(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")
	uri, err := h.catalog.Barcode(sku)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	mime, data, err := model.DecodeDataURI(uri)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "barcode_"+sku+".png"))
	w.Write(data)
}

var printTemplate = template.Must(template.New("print").Parse(`<!doctype html>
<html><head><title>Barcode {{.SKU}}</title></head>
<body onload="window.print()"><img src="{{.Barcode}}" alt="{{.SKU}}"><p>{{.SKU}}</p></body></html>
`))

// GetPrintBarcode обрабатывает GET /api/print_barcode/{sku} - страница для печати
func (h *Handler) GetPrintBarcode(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")
	uri, err := h.catalog.Barcode(sku)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		SKU     string
		Barcode template.URL
	}{SKU: sku, Barcode: template.URL(uri)}
	if err := printTemplate.Execute(w, data); err != nil {
		h.logger.Error("Failed to render print page", zap.Error(err))
	}
}

// PostGenerateAll обрабатывает POST /api/barcode/generate_all
func (h *Handler) PostGenerateAll(w http.ResponseWriter, r *http.Request) {
	generated, total, err := h.catalog.GenerateAll()
	if err != nil {
		h.writeJSON(w, r, http.StatusOK, map[string]any{"success": false, "error": err.Error()})
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]any{"success": true, "generated": generated, "total": total})
}

// GetBarcodeStatus обрабатывает GET /api/barcode/status
func (h *Handler) GetBarcodeStatus(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]any{"success": true, "status": h.catalog.BarcodeStatus()})
}

// PostDebugCart обрабатывает POST /api/debug_cart - эхо для диагностики
func (h *Handler) PostDebugCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []checkoutItem `json:"items"`
		Test  bool           `json:"test"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, r, http.StatusBadRequest, model.CheckoutResult{Success: false, Message: fmt.Sprintf("Invalid JSON: %v", err)})
		return
	}
	h.writeJSON(w, r, http.StatusOK, model.CheckoutResult{
		Success: true,
		Message: fmt.Sprintf("Received %d items (test=%t)", len(req.Items), req.Test),
	})
}

// statusFor переводит ошибку каталога в HTTP статус
func statusFor(err error) int {
	if errors.Is(err, stub.ErrProductNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
