package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/whitesvil1-lab/JustCani/internal/model"
	"github.com/whitesvil1-lab/JustCani/internal/repository"
	platformobservability "github.com/whitesvil1-lab/JustCani/platform/observability"
)

const (
	// DefaultStorageKey ключ, под которым корзина хранится в Store
	DefaultStorageKey = "cartItems"
	// NotificationTTL время жизни уведомления о добавлении
	NotificationTTL = 3 * time.Second
)

// Summary агрегаты корзины
type Summary struct {
	TotalItems int
	TotalPrice decimal.Decimal
	Items      []model.LineItem
}

// CartOption настраивает Cart
type CartOption func(*Cart)

// WithDisplayHook регистрирует обработчик обновления отображения корзины.
// Вызывается после каждой мутации
func WithDisplayHook(hook func()) CartOption {
	return func(c *Cart) {
		c.displayHook = hook
	}
}

// WithStorageKey задаёт ключ хранения корзины
func WithStorageKey(key string) CartOption {
	return func(c *Cart) {
		if key != "" {
			c.key = key
		}
	}
}

// WithNotificationTTL задаёт время жизни уведомления
func WithNotificationTTL(ttl time.Duration) CartOption {
	return func(c *Cart) {
		if ttl > 0 {
			c.notificationTTL = ttl
		}
	}
}

// Cart корзина, сохраняемая в долговременном хранилище.
// Переживает перезапуск процесса: состояние читается в Init и пишется после каждой мутации
type Cart struct {
	logger   *zap.Logger
	store    repository.Store
	prompter Prompter
	notifier Notifier

	key             string
	notificationTTL time.Duration
	displayHook     func()

	mu          sync.Mutex
	items       []model.LineItem
	currentMode model.Mode
}

// NewCart создаёт корзину поверх store
func NewCart(logger *zap.Logger, store repository.Store, prompter Prompter, notifier Notifier, opts ...CartOption) *Cart {
	c := &Cart{
		logger:          logger,
		store:           store,
		prompter:        prompter,
		notifier:        notifier,
		key:             DefaultStorageKey,
		notificationTTL: NotificationTTL,
		items:           make([]model.LineItem, 0),
		currentMode:     model.ModeRegular,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init восстанавливает корзину из хранилища.
// Отсутствующий ключ - пустая корзина; ошибка чтения или битый JSON - пустая корзина,
// которая сразу записывается обратно
func (c *Cart) Init(ctx context.Context) {
	log := platformobservability.L(ctx, c.logger)

	items, err := c.load(ctx)
	if err != nil {
		log.Error("failed to restore cart, resetting to empty",
			zap.String("key", c.key),
			zap.Error(err),
		)
		c.mu.Lock()
		c.items = make([]model.LineItem, 0)
		c.mu.Unlock()
		c.persist(ctx, []model.LineItem{})
		return
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()

	log.Info("cart initialized", zap.String("key", c.key), zap.Int("items", len(items)))
}

func (c *Cart) load(ctx context.Context) ([]model.LineItem, error) {
	raw, err := c.store.Get(ctx, c.key)
	if errors.Is(err, repository.ErrNotFound) {
		return make([]model.LineItem, 0), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	var items []model.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	if items == nil {
		items = make([]model.LineItem, 0)
	}
	return items, nil
}

// persist записывает список целиком; ошибка только логируется
func (c *Cart) persist(ctx context.Context, items []model.LineItem) {
	data, err := json.Marshal(items)
	if err != nil {
		c.logger.Error("failed to encode cart", zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, c.key, data); err != nil {
		platformobservability.L(ctx, c.logger).Error("failed to save cart",
			zap.String("key", c.key),
			zap.Error(err),
		)
		return
	}
	c.logger.Debug("cart saved", zap.Int("items", len(items)))
}

// Add добавляет товар. Пустой mode - текущий режим корзины.
// Повторное добавление той же пары (SKU, mode) увеличивает qty.
// Любая ошибка превращается в alert и false
func (c *Cart) Add(ctx context.Context, sku, name, price string, mode model.Mode) bool {
	log := platformobservability.L(ctx, c.logger)

	c.mu.Lock()
	if mode == "" {
		mode = c.currentMode
	}
	c.mu.Unlock()

	if !mode.Valid() {
		log.Warn("rejected add with invalid mode", zap.String("mode", string(mode)))
		c.prompter.Alert("Failed to add to cart: " + model.ErrInvalidMode.Error())
		return false
	}

	itemPrice, err := model.ParsePrice(price)
	if err != nil {
		log.Warn("rejected add with invalid price", zap.String("sku", sku), zap.String("price", price))
		c.prompter.Alert("Failed to add to cart: invalid price")
		return false
	}

	c.mu.Lock()
	idx := -1
	for i := range c.items {
		if c.items[i].SKU.String() == sku && c.items[i].Mode == mode {
			idx = i
			break
		}
	}
	if idx >= 0 {
		c.items[idx].Qty++
		c.items[idx].Subtotal = c.items[idx].LineTotal()
	} else {
		c.items = append(c.items, model.LineItem{
			SKU:      model.SKU(sku),
			Name:     name,
			Price:    itemPrice,
			Qty:      1,
			Subtotal: itemPrice,
			Mode:     mode,
		})
	}
	snapshot := cloneItems(c.items)
	c.mu.Unlock()

	c.persist(ctx, snapshot)
	c.UpdateDisplay()

	log.Info("item added to cart",
		zap.String("sku", sku),
		zap.String("mode", string(mode)),
		zap.Int("items", len(snapshot)),
	)
	c.notifier.Notify(name+" added to cart", c.notificationTTL)
	return true
}

// Summary возвращает количество единиц, сумму и копию позиций
func (c *Cart) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Summary{TotalPrice: decimal.Zero, Items: cloneItems(c.items)}
	for _, item := range c.items {
		s.TotalItems += item.Qty
		s.TotalPrice = s.TotalPrice.Add(item.Subtotal)
	}
	return s
}

// Clear очищает корзину после подтверждения пользователя
func (c *Cart) Clear(ctx context.Context) bool {
	if !c.prompter.Confirm("Are you sure you want to empty the cart?") {
		return false
	}

	c.mu.Lock()
	c.items = make([]model.LineItem, 0)
	c.mu.Unlock()

	c.persist(ctx, []model.LineItem{})
	c.UpdateDisplay()
	c.prompter.Alert("Cart cleared")
	return true
}

// IsEmpty проверяет, пуста ли корзина
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

// SetCurrentMode задаёт режим по умолчанию для Add
func (c *Cart) SetCurrentMode(mode model.Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentMode = mode
}

// CurrentMode возвращает режим по умолчанию
func (c *Cart) CurrentMode() model.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentMode
}

// Items возвращает копию позиций
func (c *Cart) Items() []model.LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneItems(c.items)
}

// UpdateDisplay вызывает обработчик отображения, если он зарегистрирован
func (c *Cart) UpdateDisplay() {
	if c.displayHook != nil {
		c.displayHook()
	}
}

func cloneItems(items []model.LineItem) []model.LineItem {
	out := make([]model.LineItem, len(items))
	copy(out, items)
	return out
}
