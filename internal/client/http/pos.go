package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/whitesvil1-lab/JustCani/internal/model"
)

// ErrBackend базовая ошибка для ответов бэкенда с ошибкой
var ErrBackend = errors.New("backend error")

// APIError ошибка, о которой сообщил бэкенд (HTTP статус или success=false)
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("backend status %d: %s", e.Status, e.Message)
	}
	return "backend: " + e.Message
}

// Unwrap позволяет проверять errors.Is(err, ErrBackend)
func (e *APIError) Unwrap() error {
	return ErrBackend
}

// BackendMessage текст ошибки, который вернул бэкенд
func (e *APIError) BackendMessage() string {
	return e.Message
}

// Client HTTP клиент бэкенда кассы (/api/...)
type Client struct {
	logger  *zap.Logger
	baseURL *url.URL
	client  *http.Client
	cookie  *http.Cookie
}

// Option настраивает Client
type Option func(*Client)

// WithHTTPClient подменяет http.Client (транспорт с трассировкой, тестовый сервер)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithSessionCookie добавляет cookie сессии бэкенда ("name=value") к каждому запросу.
// Checkout на бэкенде требует авторизованную сессию
func WithSessionCookie(raw string) Option {
	return func(c *Client) {
		name, value, ok := strings.Cut(strings.TrimSpace(raw), "=")
		if !ok || name == "" {
			return
		}
		c.cookie = &http.Cookie{Name: name, Value: value}
	}
}

// NewClient создаёт клиент для бэкенда по адресу baseURL
func NewClient(baseURL string, logger *zap.Logger, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		logger:  logger,
		baseURL: u,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// endpoint собирает абсолютный URL для уже экранированного пути API
func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.RawPath = c.baseURL.EscapedPath() + path
	if unescaped, err := url.PathUnescape(u.RawPath); err == nil {
		u.Path = unescaped
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do выполняет запрос и декодирует JSON ответ в out
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("backend request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	// При не-2xx читаем тело для диагностики и не декодируем JSON
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response %s %s: %w", method, path, err)
	}
	return nil
}

func searchPath(mode model.Mode) string {
	if mode == model.ModeAuction {
		return "/api/search_lelang"
	}
	return "/api/search"
}

func checkoutPath(mode model.Mode) string {
	if mode == model.ModeAuction {
		return "/api/checkout_lelang"
	}
	return "/api/checkout"
}

// Search ищет товары в режиме mode (regular -> /api/search, auction -> /api/search_lelang)
func (c *Client) Search(ctx context.Context, mode model.Mode, query string) ([]model.Product, error) {
	var products []model.Product
	if err := c.do(ctx, http.MethodGet, searchPath(mode), url.Values{"q": {query}}, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// checkoutRequest тело POST /api/checkout(_lelang)
type checkoutRequest struct {
	Items []model.LineItem `json:"items"`
}

// Checkout отправляет пакет позиций одного режима одним запросом.
// success=false возвращается как результат, а не как ошибка: решение принимает service слой
func (c *Client) Checkout(ctx context.Context, mode model.Mode, items []model.LineItem) (model.CheckoutResult, error) {
	var result model.CheckoutResult
	if err := c.do(ctx, http.MethodPost, checkoutPath(mode), nil, checkoutRequest{Items: items}, &result); err != nil {
		return model.CheckoutResult{}, err
	}
	return result, nil
}

// envelope общий формат ответов barcode API
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e envelope) err() error {
	if e.Success {
		return nil
	}
	msg := e.Message
	if msg == "" {
		msg = e.Error
	}
	if msg == "" {
		msg = "request failed"
	}
	return &APIError{Message: msg}
}

// ProductsForBarcode возвращает товары, доступные для генерации штрихкода
func (c *Client) ProductsForBarcode(ctx context.Context) ([]model.BarcodeProduct, error) {
	var resp struct {
		envelope
		Products []model.BarcodeProduct `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/products/for_barcode", nil, nil, &resp); err != nil {
		return nil, err
	}
	if err := resp.err(); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// Barcode генерирует (или получает) штрихкод товара; возвращает data URI изображения
func (c *Client) Barcode(ctx context.Context, sku model.SKU) (string, error) {
	var resp struct {
		envelope
		Barcode string `json:"barcode"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/barcode/"+url.PathEscape(sku.String()), nil, nil, &resp); err != nil {
		return "", err
	}
	if err := resp.err(); err != nil {
		return "", err
	}
	return resp.Barcode, nil
}

// PrintBarcodeURL адрес страницы печати штрихкода
func (c *Client) PrintBarcodeURL(sku model.SKU) string {
	return c.endpoint("/api/print_barcode/"+url.PathEscape(sku.String()), nil)
}

// BarcodeDownloadURL адрес скачивания изображения штрихкода
func (c *Client) BarcodeDownloadURL(sku model.SKU) string {
	return c.endpoint("/api/barcode/"+url.PathEscape(sku.String())+"/download", nil)
}

// GenerateAllBarcodes запускает массовую генерацию для товаров без штрихкода
func (c *Client) GenerateAllBarcodes(ctx context.Context) (model.BulkBarcodeResult, error) {
	var resp struct {
		envelope
		model.BulkBarcodeResult
	}
	if err := c.do(ctx, http.MethodPost, "/api/barcode/generate_all", nil, nil, &resp); err != nil {
		return model.BulkBarcodeResult{}, err
	}
	if err := resp.err(); err != nil {
		return model.BulkBarcodeResult{}, err
	}
	return resp.BulkBarcodeResult, nil
}

// BarcodeStatus возвращает статистику покрытия штрихкодами
func (c *Client) BarcodeStatus(ctx context.Context) (model.BarcodeStatus, error) {
	var resp struct {
		envelope
		Status model.BarcodeStatus `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/barcode/status", nil, nil, &resp); err != nil {
		return model.BarcodeStatus{}, err
	}
	if err := resp.err(); err != nil {
		return model.BarcodeStatus{}, err
	}
	return resp.Status, nil
}

// DebugCart отправляет диагностическую корзину на /api/debug_cart
func (c *Client) DebugCart(ctx context.Context, items []model.DebugItem) (model.CheckoutResult, error) {
	body := struct {
		Items []model.DebugItem `json:"items"`
		Test  bool              `json:"test"`
	}{Items: items, Test: true}

	var result model.CheckoutResult
	if err := c.do(ctx, http.MethodPost, "/api/debug_cart", nil, body, &result); err != nil {
		return model.CheckoutResult{}, err
	}
	return result, nil
}
