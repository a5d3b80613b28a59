package stub

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/whitesvil1-lab/JustCani/internal/model"
)

//go:embed seed.yaml
var defaultSeed []byte

// searchLimit максимальное число результатов поиска (как LIMIT 50 на настоящем бэкенде)
const searchLimit = 50

var (
	// ErrProductNotFound товар с таким SKU отсутствует в каталоге режима
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock остатка не хватает для checkout
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrEmptyCheckout checkout без позиций
	ErrEmptyCheckout = errors.New("no items to checkout")
)

// Product товар stub каталога
type Product struct {
	SKU         string          `yaml:"sku"`
	Name        string          `yaml:"name"`
	Price       decimal.Decimal `yaml:"price"`
	Stock       int             `yaml:"stock"`
	ExpiredDate string          `yaml:"expired_date"`
	Barcode     string          `yaml:"-"` // data URI, пусто пока не сгенерирован
}

// Seed начальное содержимое каталога
type Seed struct {
	Regular []Product `yaml:"regular"`
	Auction []Product `yaml:"auction"`
}

// CheckoutLine позиция checkout запроса
type CheckoutLine struct {
	SKU string
	Qty int
}

// Transaction проведённая продажа
type Transaction struct {
	ID    string
	Mode  model.Mode
	Total decimal.Decimal
	Items int
	At    time.Time
}

// LoadSeed разбирает YAML каталог
func LoadSeed(r io.Reader) (Seed, error) {
	var seed Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		return Seed{}, fmt.Errorf("failed to decode catalog seed: %w", err)
	}
	return seed, nil
}

// LoadSeedFile читает YAML каталог с диска; пустой путь - встроенный демо-каталог
func LoadSeedFile(path string) (Seed, error) {
	if path == "" {
		return LoadSeed(bytes.NewReader(defaultSeed))
	}
	f, err := os.Open(path)
	if err != nil {
		return Seed{}, fmt.Errorf("failed to open catalog seed: %w", err)
	}
	defer f.Close()
	return LoadSeed(f)
}

// Catalog in-memory каталог товаров обоих режимов
// Защищён мьютексом: handlers вызываются из разных горутин http сервера
type Catalog struct {
	mu           sync.RWMutex
	products     map[model.Mode]map[string]*Product
	transactions []Transaction
	now          func() time.Time
}

// NewCatalog создаёт каталог из seed
func NewCatalog(seed Seed) *Catalog {
	c := &Catalog{
		products: map[model.Mode]map[string]*Product{
			model.ModeRegular: make(map[string]*Product),
			model.ModeAuction: make(map[string]*Product),
		},
		now: time.Now,
	}
	for i := range seed.Regular {
		p := seed.Regular[i]
		c.products[model.ModeRegular][p.SKU] = &p
	}
	for i := range seed.Auction {
		p := seed.Auction[i]
		c.products[model.ModeAuction][p.SKU] = &p
	}
	return c
}

// Search ищет по подстроке имени или SKU без учёта регистра; пустой запрос возвращает всё
func (c *Catalog) Search(mode model.Mode, query string) []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Product, 0)
	for _, p := range c.products[mode] {
		if q == "" || strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.SKU), q) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > searchLimit {
		out = out[:searchLimit]
	}
	return out
}

// Checkout проводит продажу атомарно: сначала проверяются все позиции, затем списывается остаток.
// Лоты аукциона продаются целиком и удаляются из каталога
func (c *Catalog) Checkout(mode model.Mode, lines []CheckoutLine) (Transaction, error) {
	if len(lines) == 0 {
		return Transaction{}, ErrEmptyCheckout
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	products := c.products[mode]
	total := decimal.Zero
	for _, line := range lines {
		p, ok := products[line.SKU]
		if !ok {
			return Transaction{}, fmt.Errorf("%w: SKU %s", ErrProductNotFound, line.SKU)
		}
		if line.Qty <= 0 {
			return Transaction{}, fmt.Errorf("invalid quantity %d for SKU %s", line.Qty, line.SKU)
		}
		if mode == model.ModeRegular && p.Stock < line.Qty {
			return Transaction{}, fmt.Errorf("%w: %s (available %d)", ErrInsufficientStock, p.Name, p.Stock)
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Qty))))
	}

	for _, line := range lines {
		if mode == model.ModeAuction {
			delete(products, line.SKU)
			continue
		}
		products[line.SKU].Stock -= line.Qty
	}

	tx := Transaction{
		ID:    "TRX-" + strings.ToUpper(uuid.NewString()[:8]),
		Mode:  mode,
		Total: total,
		Items: len(lines),
		At:    c.now(),
	}
	c.transactions = append(c.transactions, tx)
	return tx, nil
}

// Transactions возвращает копию проведённых продаж
func (c *Catalog) Transactions() []Transaction {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Transaction, len(c.transactions))
	copy(out, c.transactions)
	return out
}

// BarcodeProducts товары обычного режима для генерации штрихкодов, по SKU
func (c *Catalog) BarcodeProducts() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Product, 0, len(c.products[model.ModeRegular]))
	for _, p := range c.products[model.ModeRegular] {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}

// find ищет товар в обоих режимах; вызывается под lock
func (c *Catalog) find(sku string) (*Product, bool) {
	for _, mode := range model.Modes() {
		if p, ok := c.products[mode][sku]; ok {
			return p, true
		}
	}
	return nil, false
}

// Barcode возвращает штрихкод товара, генерируя его при первом обращении
func (c *Catalog) Barcode(sku string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.find(sku)
	if !ok {
		return "", fmt.Errorf("%w: SKU %s", ErrProductNotFound, sku)
	}
	if p.Barcode == "" {
		uri, err := renderBarcode(p.SKU)
		if err != nil {
			return "", err
		}
		p.Barcode = uri
	}
	return p.Barcode, nil
}

// GenerateAll генерирует штрихкоды всем товарам без штрихкода; возвращает (сгенерировано, всего)
func (c *Catalog) GenerateAll() (int, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	generated, total := 0, 0
	for _, mode := range model.Modes() {
		for _, p := range c.products[mode] {
			total++
			if p.Barcode != "" {
				continue
			}
			uri, err := renderBarcode(p.SKU)
			if err != nil {
				return generated, total, err
			}
			p.Barcode = uri
			generated++
		}
	}
	return generated, total, nil
}

// BarcodeStatus статистика покрытия штрихкодами
func (c *Catalog) BarcodeStatus() model.BarcodeStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var status model.BarcodeStatus
	for _, mode := range model.Modes() {
		for _, p := range c.products[mode] {
			status.TotalProducts++
			if p.Barcode != "" {
				status.WithBarcode++
			}
		}
	}
	status.WithoutBarcode = status.TotalProducts - status.WithBarcode
	if status.TotalProducts > 0 {
		status.ProgressPercentage = float64(status.WithBarcode*10000/status.TotalProducts) / 100
	}
	return status
}

// Размеры изображения штрихкода: ширина модуля в пикселях и высота
const (
	barcodeModuleWidth = 2
	barcodeHeight      = 80
)

// renderBarcode кодирует SKU в Code128 и возвращает PNG data URI
func renderBarcode(sku string) (string, error) {
	encoded, err := code128.Encode(sku)
	if err != nil {
		return "", fmt.Errorf("failed to encode barcode for SKU %s: %w", sku, err)
	}
	scaled, err := barcode.Scale(encoded, encoded.Bounds().Dx()*barcodeModuleWidth, barcodeHeight)
	if err != nil {
		return "", fmt.Errorf("failed to scale barcode for SKU %s: %w", sku, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return "", fmt.Errorf("failed to encode barcode: %w", err)
	}
	return model.EncodeDataURI("image/png", buf.Bytes()), nil
}
