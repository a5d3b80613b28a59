package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/whitesvil1-lab/JustCani/internal/model"
	platformobservability "github.com/whitesvil1-lab/JustCani/platform/observability"
)

// ProductOption элемент списка товаров страницы штрихкодов.
// Data хранит полную запись товара в JSON
type ProductOption struct {
	Value model.SKU
	Label string
	Data  string
}

// backendMessager ошибка, содержащая сообщение бэкенда
type backendMessager interface {
	BackendMessage() string
}

// backendMessage достаёт текст бэкенда из ошибки; ok=false для ошибок транспорта
func backendMessage(err error) (string, bool) {
	var bm backendMessager
	if errors.As(err, &bm) && bm.BackendMessage() != "" {
		return bm.BackendMessage(), true
	}
	return "", false
}

// DebugSKU товар диагностического checkout
const DebugSKU model.SKU = "12345"

// BarcodeAdmin операции администратора со штрихкодами
type BarcodeAdmin struct {
	logger   *zap.Logger
	backend  BarcodeBackend
	prompter Prompter
	view     BarcodeView
	opener   URLOpener

	mu       sync.Mutex
	options  []ProductOption
	selected model.SKU
}

// NewBarcodeAdmin создаёт BarcodeAdmin
func NewBarcodeAdmin(logger *zap.Logger, backend BarcodeBackend, prompter Prompter, view BarcodeView, opener URLOpener) *BarcodeAdmin {
	return &BarcodeAdmin{
		logger:   logger,
		backend:  backend,
		prompter: prompter,
		view:     view,
		opener:   opener,
	}
}

// LoadProducts загружает список товаров для выбора
func (b *BarcodeAdmin) LoadProducts(ctx context.Context) bool {
	log := platformobservability.L(ctx, b.logger)

	products, err := b.backend.ProductsForBarcode(ctx)
	if err != nil {
		log.Error("failed to load products for barcode", zap.Error(err))
		b.prompter.Alert("Failed to load product list")
		return false
	}

	options := make([]ProductOption, 0, len(products))
	for _, p := range products {
		data, err := json.Marshal(p)
		if err != nil {
			log.Error("failed to encode product option", zap.String("sku", p.SKU.String()), zap.Error(err))
			continue
		}
		options = append(options, ProductOption{
			Value: p.SKU,
			Label: fmt.Sprintf("%s (SKU: %s) - %s", p.Name, p.SKU, model.FormatRupiah(p.Price)),
			Data:  string(data),
		})
	}
	if len(options) == 0 {
		log.Warn("no products found for barcode")
	}

	b.mu.Lock()
	b.options = options
	if _, ok := b.findLocked(b.selected); !ok {
		b.selected = ""
	}
	b.mu.Unlock()

	b.view.ShowProducts(options)
	log.Info("products for barcode loaded", zap.Int("count", len(options)))
	return true
}

// Options возвращает загруженный список товаров
func (b *BarcodeAdmin) Options() []ProductOption {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]ProductOption, len(b.options))
	copy(out, b.options)
	return out
}

func (b *BarcodeAdmin) findLocked(sku model.SKU) (ProductOption, bool) {
	for _, opt := range b.options {
		if opt.Value == sku {
			return opt, true
		}
	}
	return ProductOption{}, false
}

// Select выбирает товар по SKU и обновляет превью; пустой SKU снимает выбор
func (b *BarcodeAdmin) Select(sku model.SKU) bool {
	b.mu.Lock()
	if sku != "" {
		if _, ok := b.findLocked(sku); !ok {
			b.mu.Unlock()
			b.prompter.Alert(fmt.Sprintf("Product with SKU %s is not in the list", sku))
			return false
		}
	}
	b.selected = sku
	b.mu.Unlock()

	b.UpdatePreview()
	return true
}

// Selected возвращает выбранный SKU
func (b *BarcodeAdmin) Selected() model.SKU {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selected
}

// UpdatePreview показывает превью выбранного товара.
// Без выбора превью скрывается, печать и скачивание выключаются.
// Битые данные товара логируются, превью остаётся как было
func (b *BarcodeAdmin) UpdatePreview() {
	b.mu.Lock()
	opt, ok := b.findLocked(b.selected)
	selected := b.selected
	b.mu.Unlock()

	if selected == "" || !ok {
		b.view.HidePreview()
		b.view.SetActionsEnabled(false)
		return
	}

	var product model.BarcodeProduct
	if err := json.Unmarshal([]byte(opt.Data), &product); err != nil {
		b.logger.Error("failed to parse product data", zap.String("sku", selected.String()), zap.Error(err))
		return
	}
	b.view.ShowPreview(product)
}

// requireSelection возвращает выбранный SKU или показывает alert
func (b *BarcodeAdmin) requireSelection() (model.SKU, bool) {
	sku := b.Selected()
	if sku == "" {
		b.prompter.Alert("Select a product first!")
		return "", false
	}
	return sku, true
}

// GenerateBarcode генерирует штрихкод выбранного товара и возвращает data URI
func (b *BarcodeAdmin) GenerateBarcode(ctx context.Context) (string, bool) {
	sku, ok := b.requireSelection()
	if !ok {
		return "", false
	}

	uri, err := b.backend.Barcode(ctx, sku)
	if err != nil {
		platformobservability.L(ctx, b.logger).Error("failed to generate barcode", zap.String("sku", sku.String()), zap.Error(err))
		if msg, ok := backendMessage(err); ok {
			b.prompter.Alert("Error: " + msg)
		} else {
			b.prompter.Alert("Failed to generate barcode")
		}
		return "", false
	}

	b.view.ShowBarcode(sku, uri)
	b.view.SetActionsEnabled(true)
	b.prompter.Alert("Barcode generated!")
	return uri, true
}

func (b *BarcodeAdmin) open(url string) bool {
	if err := b.opener.Open(url); err != nil {
		b.logger.Error("failed to open url", zap.String("url", url), zap.Error(err))
		b.prompter.Alert("Failed to open " + url)
		return false
	}
	return true
}

// PrintBarcode открывает страницу печати штрихкода выбранного товара
func (b *BarcodeAdmin) PrintBarcode() bool {
	sku, ok := b.requireSelection()
	if !ok {
		return false
	}
	return b.open(b.backend.PrintBarcodeURL(sku))
}

// DownloadBarcode открывает скачивание изображения штрихкода выбранного товара
func (b *BarcodeAdmin) DownloadBarcode() bool {
	sku, ok := b.requireSelection()
	if !ok {
		return false
	}
	return b.open(b.backend.BarcodeDownloadURL(sku))
}

// GenerateAll после подтверждения генерирует штрихкоды всем товарам без штрихкода и перезагружает список
func (b *BarcodeAdmin) GenerateAll(ctx context.Context) bool {
	if !b.prompter.Confirm("Generate barcodes for every product that does not have one yet?") {
		return false
	}

	result, err := b.backend.GenerateAllBarcodes(ctx)
	if err != nil {
		platformobservability.L(ctx, b.logger).Error("failed to generate all barcodes", zap.Error(err))
		if msg, ok := backendMessage(err); ok {
			b.prompter.Alert("Error: " + msg)
		} else {
			b.prompter.Alert("Failed to generate all barcodes")
		}
		return false
	}

	b.prompter.Alert(fmt.Sprintf("Generated %d barcodes out of %d products", result.Generated, result.Total))
	b.LoadProducts(ctx)
	return true
}

// CheckStatus показывает статистику покрытия штрихкодами.
// Ошибка только логируется
func (b *BarcodeAdmin) CheckStatus(ctx context.Context) (model.BarcodeStatus, bool) {
	status, err := b.backend.BarcodeStatus(ctx)
	if err != nil {
		platformobservability.L(ctx, b.logger).Error("failed to check barcode status", zap.Error(err))
		return model.BarcodeStatus{}, false
	}

	b.prompter.Alert(fmt.Sprintf("Barcode status:\n\nTotal products: %d\nWith barcode: %d\nWithout barcode: %d\nProgress: %g%%",
		status.TotalProducts, status.WithBarcode, status.WithoutBarcode, status.ProgressPercentage))
	return status, true
}

// TestCheckout отправляет диагностическую корзину из одного товара
func (b *BarcodeAdmin) TestCheckout(ctx context.Context) bool {
	result, err := b.backend.DebugCart(ctx, []model.DebugItem{{SKU: DebugSKU, Qty: 1}})
	if err != nil {
		platformobservability.L(ctx, b.logger).Error("test checkout failed", zap.Error(err))
		b.prompter.Alert("Test failed: " + err.Error())
		return false
	}

	verdict := "FAILED"
	if result.Success {
		verdict = "SUCCESS"
	}
	b.prompter.Alert(fmt.Sprintf("Test result: %s\nMessage: %s", verdict, result.Message))
	return result.Success
}
