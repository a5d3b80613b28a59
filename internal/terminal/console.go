package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/whitesvil1-lab/JustCani/internal/model"
	"github.com/whitesvil1-lab/JustCani/internal/service"
	"github.com/whitesvil1-lab/JustCani/internal/templates"
)

// Console терминальный хост кассы: диалоги, уведомления и отрисовка экранов.
// Реализует service.Prompter, service.Notifier, все view и service.URLOpener
type Console struct {
	logger   *zap.Logger
	renderer *templates.Renderer
	in       *bufio.Reader
	out      io.Writer

	// barcodeDir каталог для сохранения PNG штрихкодов; пусто - не сохранять
	barcodeDir string

	mu             sync.Mutex
	notification   string
	notifyTimer    *time.Timer
	actionsEnabled bool
}

// Option настраивает Console
type Option func(*Console)

// WithBarcodeDir сохраняет сгенерированные штрихкоды как barcode_<sku>.png в dir
func WithBarcodeDir(dir string) Option {
	return func(c *Console) {
		c.barcodeDir = dir
	}
}

// NewConsole создаёт консоль поверх in/out
func NewConsole(logger *zap.Logger, renderer *templates.Renderer, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		logger:   logger,
		renderer: renderer,
		in:       bufio.NewReader(in),
		out:      out,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Console) println(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, s)
}

// ReadLine читает строку ввода без перевода строки; io.EOF в конце ввода
func (c *Console) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		c.mu.Lock()
		fmt.Fprint(c.out, prompt)
		c.mu.Unlock()
	}
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm спрашивает да/нет; конец ввода считается отказом
func (c *Console) Confirm(message string) bool {
	answer, err := c.ReadLine(message + " [y/N]: ")
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "ya":
		return true
	default:
		return false
	}
}

// Alert печатает сообщение
func (c *Console) Alert(message string) {
	c.println(message)
}

// Notify печатает уведомление и запоминает его до истечения ttl
func (c *Console) Notify(message string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.notifyTimer != nil {
		c.notifyTimer.Stop()
	}
	c.notification = message
	fmt.Fprintln(c.out, "✔ Success! "+message)

	c.notifyTimer = time.AfterFunc(ttl, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.notification == message {
			c.notification = ""
		}
	})
}

// Notification возвращает активное уведомление или пустую строку
func (c *Console) Notification() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notification
}

// renderOut печатает результат рендеринга; ошибка шаблона логируется
func (c *Console) renderOut(name string, out string, err error) {
	if err != nil {
		c.logger.Error("failed to render screen", zap.String("screen", name), zap.Error(err))
		return
	}
	c.println(strings.TrimRight(out, "\n"))
}

// RenderCart рисует корзину сессии
func (c *Console) RenderCart(view service.CartView) {
	out, err := c.renderer.RenderCart(view)
	c.renderOut("cart", out, err)
}

// ResetSearch показывает пустой placeholder поиска
func (c *Console) ResetSearch() {
	c.println("Search cleared. Type `search <query>` to find products.")
}

// SetModeControls показывает активный режим
func (c *Console) SetModeControls(mode model.Mode) {
	c.println("Mode: " + strings.ToUpper(string(mode)))
}

// ShowPrompt подсказка при пустом запросе
func (c *Console) ShowPrompt() {
	c.println("Type a product name or SKU to search.")
}

// ShowError сообщение об ошибке поиска
func (c *Console) ShowError() {
	c.println("Failed to search products. Please try again.")
}

// ShowNotFound сообщение об отсутствии результатов
func (c *Console) ShowNotFound(query string) {
	c.println(fmt.Sprintf("No products found for %q.", query))
}

// ShowResults рисует результаты поиска
func (c *Console) ShowResults(rows []service.ResultRow) {
	out, err := c.renderer.RenderResults(rows)
	c.renderOut("results", out, err)
}

// ShowSummary рисует персистентную корзину
func (c *Console) ShowSummary(summary service.Summary) {
	out, err := c.renderer.RenderSummary(summary)
	c.renderOut("summary", out, err)
}

// ShowHelp рисует справку shell
func (c *Console) ShowHelp(mode model.Mode) {
	out, err := c.renderer.RenderHelp(mode)
	c.renderOut("help", out, err)
}

// ShowProducts рисует список товаров для штрихкодов
func (c *Console) ShowProducts(options []service.ProductOption) {
	out, err := c.renderer.RenderProducts(options)
	c.renderOut("products", out, err)
}

// ShowPreview рисует превью товара
func (c *Console) ShowPreview(product model.BarcodeProduct) {
	out, err := c.renderer.RenderPreview(product)
	c.renderOut("preview", out, err)
}

// HidePreview скрывает превью
func (c *Console) HidePreview() {
	c.println("No product selected.")
}

// SetActionsEnabled запоминает доступность печати и скачивания
func (c *Console) SetActionsEnabled(enabled bool) {
	c.mu.Lock()
	c.actionsEnabled = enabled
	c.mu.Unlock()
	if enabled {
		c.println("Print and download are available.")
	}
}

// ActionsEnabled доступны ли печать и скачивание
func (c *Console) ActionsEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.actionsEnabled
}

// ShowBarcode сообщает о штрихкоде и сохраняет PNG, если задан каталог
func (c *Console) ShowBarcode(sku model.SKU, dataURI string) {
	mime, data, err := model.DecodeDataURI(dataURI)
	if err != nil {
		c.logger.Warn("barcode is not a data uri", zap.String("sku", sku.String()), zap.Error(err))
		c.println(fmt.Sprintf("Barcode for SKU %s: %s", sku, dataURI))
		return
	}

	if c.barcodeDir == "" {
		c.println(fmt.Sprintf("Barcode for SKU %s: %s, %d bytes", sku, mime, len(data)))
		return
	}

	path := filepath.Join(c.barcodeDir, "barcode_"+sanitize(sku.String())+".png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.logger.Error("failed to save barcode", zap.String("path", path), zap.Error(err))
		c.println(fmt.Sprintf("Barcode for SKU %s could not be saved: %v", sku, err))
		return
	}
	c.println(fmt.Sprintf("Barcode for SKU %s saved to %s", sku, path))
}

// Open печатает адрес: в терминале его открывает оператор
func (c *Console) Open(url string) error {
	c.println("Open: " + url)
	return nil
}

// sanitize оставляет в имени файла только безопасные символы
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
