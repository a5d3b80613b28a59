package app

import (
	"context"

	"github.com/whitesvil1-lab/JustCani/internal/model"
)

// SelectBarcodeProduct загружает список товаров и выбирает товар с указанным SKU
func (a *App) SelectBarcodeProduct(ctx context.Context, sku model.SKU) bool {
	if !a.barcode.LoadProducts(ctx) {
		return false
	}
	return a.barcode.Select(sku)
}

// BarcodeAction выполняет действие над штрихкодом одного товара
func (a *App) BarcodeAction(ctx context.Context, sku model.SKU, action func() bool) bool {
	if !a.SelectBarcodeProduct(ctx, sku) {
		return false
	}
	return action()
}
