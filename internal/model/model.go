package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Бэкенд и сохранённые корзины работают с ценами как с JSON-числами
	decimal.MarshalJSONWithoutQuotes = true
}

// Mode режим транзакции кассы
type Mode string

const (
	// ModeRegular - обычная продажа по фиксированной цене
	ModeRegular Mode = "regular"
	// ModeAuction - продажа лотов аукциона (lelang)
	ModeAuction Mode = "auction"
)

var (
	// ErrInvalidMode возвращается для режима, отличного от regular/auction
	ErrInvalidMode = errors.New("invalid mode")
	// ErrInvalidPrice возвращается, если цена не является числом
	ErrInvalidPrice = errors.New("invalid price")
)

// Valid проверяет, что режим один из поддерживаемых
func (m Mode) Valid() bool {
	return m == ModeRegular || m == ModeAuction
}

// ParseMode разбирает режим из строки (регистр не важен)
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q (must be 'regular' or 'auction')", ErrInvalidMode, s)
	}
	return m, nil
}

// Modes возвращает режимы в порядке обработки при checkout
func Modes() []Mode {
	return []Mode{ModeRegular, ModeAuction}
}

// SKU идентификатор товара.
// Бэкенд отдаёт его то строкой, то числом, поэтому при декодировании принимаем оба варианта.
type SKU string

// UnmarshalJSON принимает строку или число
func (s *SKU) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = SKU(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("sku must be a string or a number: %w", err)
	}
	*s = SKU(num.String())
	return nil
}

// String возвращает SKU как текст
func (s SKU) String() string {
	return string(s)
}

// ParsePrice строго разбирает цену из текста
func ParsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	return price, nil
}

// LineItem позиция корзины, уникальная по паре (SKU, Mode)
type LineItem struct {
	SKU      SKU             `json:"sku"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Qty      int             `json:"qty"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Mode     Mode            `json:"mode"`
	Stock    int             `json:"stock,omitempty"` // снимок остатка на момент добавления
}

// LineTotal возвращает price × qty
func (i LineItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Qty)))
}

// Product результат поиска товара
type Product struct {
	SKU         SKU             `json:"no_SKU"`
	Name        string          `json:"Name_product"`
	Price       decimal.Decimal `json:"Price"`
	Stock       int             `json:"stok"`
	Type        string          `json:"type,omitempty"`
	ExpiredDate string          `json:"expired_date,omitempty"`
}

// CheckoutResult ответ бэкенда на checkout
type CheckoutResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// BarcodeProduct товар, для которого можно сгенерировать штрихкод
type BarcodeProduct struct {
	SKU   SKU             `json:"sku"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// BarcodeStatus агрегированная статистика покрытия штрихкодами
type BarcodeStatus struct {
	TotalProducts      int     `json:"total_products"`
	WithBarcode        int     `json:"with_barcode"`
	WithoutBarcode     int     `json:"without_barcode"`
	ProgressPercentage float64 `json:"progress_percentage"`
}

// BulkBarcodeResult результат массовой генерации штрихкодов
type BulkBarcodeResult struct {
	Generated int `json:"generated"`
	Total     int `json:"total"`
}

// DebugItem позиция диагностического checkout
type DebugItem struct {
	SKU SKU `json:"sku"`
	Qty int `json:"qty"`
}
