package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/whitesvil1-lab/JustCani/internal/model"
	platformobservability "github.com/whitesvil1-lab/JustCani/platform/observability"
)

// ResultRow строка результатов поиска с действием добавления
type ResultRow struct {
	Index   int
	Product model.Product
	Mode    model.Mode
	// Badge метка режима для отрисовки
	Badge string
	// AddHint команда добавления строки; имя экранировано кавычками Go
	AddHint string
}

// Search поиск товаров для текущего режима сессии.
// Результаты не кешируются: каждый вызов заново запрашивает бэкенд и заменяет строки целиком
type Search struct {
	logger  *zap.Logger
	backend SearchBackend
	session *Session
	view    SearchView

	mu   sync.Mutex
	rows []ResultRow
}

// NewSearch создаёт поиск, добавляющий товары в session
func NewSearch(logger *zap.Logger, backend SearchBackend, session *Session, view SearchView) *Search {
	s := &Search{
		logger:  logger,
		backend: backend,
		session: session,
		view:    view,
	}
	// Строки прошлого режима или с устаревшим остатком добавлять нельзя
	session.OnSearchReset(func() { s.setRows(nil) })
	return s
}

func badge(mode model.Mode) string {
	if mode == model.ModeAuction {
		return "AUCTION"
	}
	return "REGULAR"
}

// SearchItem выполняет поиск. Пустой запрос показывает подсказку без обращения к бэкенду.
// Возвращает true, если бэкенд ответил (в том числе пустым списком)
func (s *Search) SearchItem(ctx context.Context, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		s.setRows(nil)
		s.view.ShowPrompt()
		return false
	}

	mode := s.session.Mode()
	products, err := s.backend.Search(ctx, mode, query)
	if err != nil {
		platformobservability.L(ctx, s.logger).Error("search failed",
			zap.String("mode", string(mode)),
			zap.String("query", query),
			zap.Error(err),
		)
		s.setRows(nil)
		s.view.ShowError()
		return false
	}

	if len(products) == 0 {
		s.setRows(nil)
		s.view.ShowNotFound(query)
		return true
	}

	rows := make([]ResultRow, 0, len(products))
	for i, p := range products {
		rows = append(rows, ResultRow{
			Index:   i,
			Product: p,
			Mode:    mode,
			Badge:   badge(mode),
			AddHint: fmt.Sprintf("add %d %s", i+1, strconv.Quote(p.Name)),
		})
	}
	s.setRows(rows)
	s.view.ShowResults(rows)
	return true
}

func (s *Search) setRows(rows []ResultRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = rows
}

// Rows возвращает последние показанные строки
func (s *Search) Rows() []ResultRow {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ResultRow, len(s.rows))
	copy(out, s.rows)
	return out
}

// AddRow добавляет товар строки index (с нуля) в корзину сессии
func (s *Search) AddRow(index int) bool {
	s.mu.Lock()
	if index < 0 || index >= len(s.rows) {
		s.mu.Unlock()
		return false
	}
	p := s.rows[index].Product
	s.mu.Unlock()

	return s.session.AddToCart(p.SKU.String(), p.Name, p.Price, p.Stock)
}
