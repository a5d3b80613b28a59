package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/whitesvil1-lab/JustCani/internal/model"
	platformobservability "github.com/whitesvil1-lab/JustCani/platform/observability"
)

// CartLine строка отображения корзины сессии
type CartLine struct {
	Index    int
	SKU      model.SKU
	Name     string
	Price    decimal.Decimal
	Qty      int
	Subtotal decimal.Decimal
	Mode     model.Mode
}

// CartView снимок корзины для отрисовки
type CartView struct {
	Lines []CartLine
	Total decimal.Decimal
	// Count число позиций (не единиц товара)
	Count int
	Empty bool
}

// Session корзина кассира, живущая только в памяти процесса.
// Позиции хранятся указателями: успешный checkout удаляет ровно отправленные объекты
type Session struct {
	logger    *zap.Logger
	backend   CheckoutBackend
	prompter  Prompter
	view      SessionView
	publisher CheckoutEventPublisher

	mu         sync.Mutex
	mode       model.Mode
	items      []*model.LineItem
	resetHooks []func()
}

// NewSession создаёт пустую сессию в режиме regular.
// publisher может быть nil - тогда события не публикуются
func NewSession(logger *zap.Logger, backend CheckoutBackend, prompter Prompter, view SessionView, publisher CheckoutEventPublisher) *Session {
	if publisher == nil {
		publisher = NoOpCheckoutEventPublisher{}
	}
	return &Session{
		logger:    logger,
		backend:   backend,
		prompter:  prompter,
		view:      view,
		publisher: publisher,
		mode:      model.ModeRegular,
	}
}

// Mode возвращает текущий режим транзакции
func (s *Session) Mode() model.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Items возвращает копию позиций в порядке добавления
func (s *Session) Items() []model.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.LineItem, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, *item)
	}
	return out
}

// OnSearchReset регистрирует hook, вызываемый при каждом сбросе поиска (смена режима, успешный checkout)
func (s *Session) OnSearchReset(hook func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetHooks = append(s.resetHooks, hook)
}

// resetSearch сбрасывает результаты поиска вместе с их отображением
func (s *Session) resetSearch() {
	s.mu.Lock()
	hooks := make([]func(), len(s.resetHooks))
	copy(hooks, s.resetHooks)
	s.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
	s.view.ResetSearch()
}

// SetMode переключает режим. Корзина не меняется, поиск сбрасывается
func (s *Session) SetMode(mode model.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidMode, mode)
	}

	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()

	s.resetSearch()
	s.view.SetModeControls(mode)
	s.logger.Debug("mode switched", zap.String("mode", string(mode)))
	return nil
}

// AddToCart добавляет товар в текущем режиме.
// В режиме regular товар без остатка не добавляется; у аукциона проверки остатка нет
func (s *Session) AddToCart(sku, name string, price decimal.Decimal, stock int) bool {
	s.mu.Lock()
	mode := s.mode
	if mode == model.ModeRegular && stock <= 0 {
		s.mu.Unlock()
		s.prompter.Alert(fmt.Sprintf("%s is out of stock!", name))
		return false
	}

	var existing *model.LineItem
	for _, item := range s.items {
		if string(item.SKU) == sku && item.Mode == mode {
			existing = item
			break
		}
	}
	if existing != nil {
		existing.Qty++
	} else {
		s.items = append(s.items, &model.LineItem{
			SKU:   model.SKU(sku),
			Name:  name,
			Price: price,
			Qty:   1,
			Mode:  mode,
			Stock: stock,
		})
	}
	s.mu.Unlock()

	s.RenderCart()
	return true
}

// RenderCart пересчитывает подытоги и общий итог по всем режимам и отдаёт снимок во view
func (s *Session) RenderCart() CartView {
	s.mu.Lock()
	view := CartView{
		Lines: make([]CartLine, 0, len(s.items)),
		Total: decimal.Zero,
		Count: len(s.items),
		Empty: len(s.items) == 0,
	}
	for i, item := range s.items {
		subtotal := item.LineTotal()
		view.Lines = append(view.Lines, CartLine{
			Index:    i,
			SKU:      item.SKU,
			Name:     item.Name,
			Price:    item.Price,
			Qty:      item.Qty,
			Subtotal: subtotal,
			Mode:     item.Mode,
		})
		view.Total = view.Total.Add(subtotal)
	}
	s.mu.Unlock()

	s.view.RenderCart(view)
	return view
}

// RemoveFromCart удаляет позицию по индексу; индекс вне диапазона игнорируется
func (s *Session) RemoveFromCart(index int) bool {
	s.mu.Lock()
	removed := false
	if index >= 0 && index < len(s.items) {
		s.items = append(s.items[:index], s.items[index+1:]...)
		removed = true
	}
	s.mu.Unlock()

	s.RenderCart()
	return removed
}

// partition группирует позиции по режиму в порядке model.Modes()
func (s *Session) partition() map[model.Mode][]*model.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	batches := make(map[model.Mode][]*model.LineItem)
	for _, item := range s.items {
		batches[item.Mode] = append(batches[item.Mode], item)
	}
	return batches
}

// Checkout проводит корзину пакетами по режимам: сначала regular, затем auction.
// Каждый пакет подтверждается отдельно и отправляется только после завершения предыдущего.
// Возвращает true, если отправлен хотя бы один пакет и все отправленные прошли успешно
func (s *Session) Checkout(ctx context.Context) bool {
	batches := s.partition()
	if len(batches) == 0 {
		s.prompter.Alert("Cart is empty!")
		return false
	}

	modes := make([]model.Mode, 0, len(batches))
	for _, mode := range model.Modes() {
		if len(batches[mode]) > 0 {
			modes = append(modes, mode)
		}
	}

	if len(modes) == 1 {
		mode := modes[0]
		if !s.prompter.Confirm(fmt.Sprintf("Proceed with %s checkout of %d item(s)?", mode, len(batches[mode]))) {
			return false
		}
		return s.ProcessCheckout(ctx, batches[mode], mode)
	}

	names := make([]string, 0, len(modes))
	for _, mode := range modes {
		names = append(names, string(mode))
	}
	if !s.prompter.Confirm(fmt.Sprintf("The cart contains items from %d modes (%s). Checkout each mode separately?",
		len(modes), strings.Join(names, ", "))) {
		return false
	}

	submitted, ok := 0, true
	for _, mode := range modes {
		if !s.prompter.Confirm(fmt.Sprintf("Checkout %d %s item(s)?", len(batches[mode]), mode)) {
			s.logger.Info("checkout batch skipped", zap.String("mode", string(mode)))
			continue
		}
		submitted++
		if !s.ProcessCheckout(ctx, batches[mode], mode) {
			ok = false
		}
	}
	return submitted > 0 && ok
}

// ProcessCheckout отправляет один пакет. При успехе удаляет из корзины ровно переданные позиции
func (s *Session) ProcessCheckout(ctx context.Context, items []*model.LineItem, mode model.Mode) bool {
	log := platformobservability.L(ctx, s.logger)

	payload := make([]model.LineItem, 0, len(items))
	total := decimal.Zero
	s.mu.Lock()
	for _, item := range items {
		line := *item
		line.Subtotal = line.LineTotal()
		total = total.Add(line.Subtotal)
		payload = append(payload, line)
	}
	s.mu.Unlock()

	result, err := s.backend.Checkout(ctx, mode, payload)
	if err != nil {
		log.Error("checkout request failed",
			zap.String("mode", string(mode)),
			zap.Int("items", len(payload)),
			zap.Error(err),
		)
		s.prompter.Alert("A system error occurred during checkout. Please try again.")
		return false
	}
	if !result.Success {
		log.Warn("checkout rejected by backend",
			zap.String("mode", string(mode)),
			zap.String("message", result.Message),
		)
		s.prompter.Alert("Checkout failed: " + result.Message)
		return false
	}

	s.prompter.Alert("Checkout succeeded! " + result.Message)
	s.remove(items)
	s.RenderCart()
	s.resetSearch()

	log.Info("checkout completed",
		zap.String("mode", string(mode)),
		zap.Int("items", len(payload)),
		zap.String("total", total.String()),
	)

	event := CheckoutCompletedEvent{Mode: mode, Items: payload, Total: total, Message: result.Message}
	if err := s.publisher.PublishCheckoutCompleted(ctx, event); err != nil {
		log.Error("failed to publish checkout event", zap.String("mode", string(mode)), zap.Error(err))
	}
	return true
}

// remove удаляет позиции по идентичности указателей
func (s *Session) remove(items []*model.LineItem) {
	drop := make(map[*model.LineItem]struct{}, len(items))
	for _, item := range items {
		drop[item] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, item := range s.items {
		if _, ok := drop[item]; !ok {
			kept = append(kept, item)
		}
	}
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = nil
	}
	s.items = kept
}
