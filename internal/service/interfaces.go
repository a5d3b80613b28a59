package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/whitesvil1-lab/JustCani/internal/model"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=CheckoutBackend --dir=. --output=./mocks --outpkg=mocks

// CheckoutBackend отправляет пакет позиций одного режима на бэкенд
// Использует доменные типы - service не знает про HTTP
type CheckoutBackend interface {
	// Checkout возвращает ответ бэкенда; ошибка означает сбой транспорта
	Checkout(ctx context.Context, mode model.Mode, items []model.LineItem) (model.CheckoutResult, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=SearchBackend --dir=. --output=./mocks --outpkg=mocks

// SearchBackend ищет товары на бэкенде
type SearchBackend interface {
	Search(ctx context.Context, mode model.Mode, query string) ([]model.Product, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=BarcodeBackend --dir=. --output=./mocks --outpkg=mocks

// BarcodeBackend операции администрирования штрихкодов
type BarcodeBackend interface {
	ProductsForBarcode(ctx context.Context) ([]model.BarcodeProduct, error)
	// Barcode возвращает data URI изображения штрихкода
	Barcode(ctx context.Context, sku model.SKU) (string, error)
	PrintBarcodeURL(sku model.SKU) string
	BarcodeDownloadURL(sku model.SKU) string
	GenerateAllBarcodes(ctx context.Context) (model.BulkBarcodeResult, error)
	BarcodeStatus(ctx context.Context) (model.BarcodeStatus, error)
	DebugCart(ctx context.Context, items []model.DebugItem) (model.CheckoutResult, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=Prompter --dir=. --output=./mocks --outpkg=mocks

// Prompter блокирующие диалоги хоста (терминал)
type Prompter interface {
	// Confirm задаёт вопрос да/нет и ждёт ответа
	Confirm(message string) bool
	// Alert показывает сообщение
	Alert(message string)
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=Notifier --dir=. --output=./mocks --outpkg=mocks

// Notifier показывает временное уведомление, которое само исчезает через ttl
type Notifier interface {
	Notify(message string, ttl time.Duration)
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=SessionView --dir=. --output=./mocks --outpkg=mocks

// SessionView отображение корзины сессии и переключателя режима
type SessionView interface {
	RenderCart(view CartView)
	// ResetSearch очищает поле поиска и показывает пустой placeholder результатов
	ResetSearch()
	SetModeControls(mode model.Mode)
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=SearchView --dir=. --output=./mocks --outpkg=mocks

// SearchView отображение результатов поиска
type SearchView interface {
	ShowPrompt()
	ShowError()
	ShowNotFound(query string)
	ShowResults(rows []ResultRow)
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=BarcodeView --dir=. --output=./mocks --outpkg=mocks

// BarcodeView отображение страницы штрихкодов
type BarcodeView interface {
	ShowProducts(options []ProductOption)
	ShowPreview(product model.BarcodeProduct)
	HidePreview()
	// SetActionsEnabled включает/выключает кнопки печати и скачивания
	SetActionsEnabled(enabled bool)
	ShowBarcode(sku model.SKU, dataURI string)
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=URLOpener --dir=. --output=./mocks --outpkg=mocks

// URLOpener открывает адрес во внешнем окне (браузер, печать)
type URLOpener interface {
	Open(url string) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=CheckoutEventPublisher --dir=. --output=./mocks --outpkg=mocks

// CheckoutEventPublisher публикует события об успешном checkout
type CheckoutEventPublisher interface {
	PublishCheckoutCompleted(ctx context.Context, event CheckoutCompletedEvent) error
}

// CheckoutCompletedEvent событие успешно проведённого пакета
type CheckoutCompletedEvent struct {
	Mode    model.Mode
	Items   []model.LineItem
	Total   decimal.Decimal
	Message string
}

// NoOpCheckoutEventPublisher ничего не публикует (Kafka выключена)
type NoOpCheckoutEventPublisher struct{}

// PublishCheckoutCompleted ничего не делает
func (NoOpCheckoutEventPublisher) PublishCheckoutCompleted(context.Context, CheckoutCompletedEvent) error {
	return nil
}
