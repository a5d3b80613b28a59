package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/whitesvil1-lab/JustCani/internal/model"
)

// RunShell запускает интерактивную сессию кассы до quit или конца ввода
func (a *App) RunShell(ctx context.Context) error {
	a.logger.Info("Shell started", zap.String("mode", string(a.session.Mode())))
	a.console.ShowHelp(a.session.Mode())

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := a.console.ReadLine(fmt.Sprintf("kasir[%s]> ", a.session.Mode()))
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		if quit := a.Exec(ctx, line); quit {
			a.logger.Info("Shell stopped")
			return nil
		}
	}
}

// Exec выполняет одну команду shell; true означает выход
func (a *App) Exec(ctx context.Context, line string) bool {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "":
	case "mode":
		mode, err := model.ParseMode(rest)
		if err != nil {
			a.console.Alert(err.Error())
			return false
		}
		if err := a.session.SetMode(mode); err != nil {
			a.console.Alert(err.Error())
		}
	case "search":
		a.search.SearchItem(ctx, rest)
	case "add":
		n, ok := a.rowNumber(rest, len(a.search.Rows()), "search result")
		if ok {
			a.search.AddRow(n - 1)
		}
	case "rm", "remove":
		n, ok := a.rowNumber(rest, len(a.session.Items()), "cart line")
		if ok {
			a.session.RemoveFromCart(n - 1)
		}
	case "cart":
		a.session.RenderCart()
	case "checkout":
		a.session.Checkout(ctx)
	case "help":
		a.console.ShowHelp(a.session.Mode())
	case "quit", "exit":
		return true
	default:
		a.console.Alert(fmt.Sprintf("Unknown command %q. Type help for the list of commands.", cmd))
	}
	return false
}

// rowNumber разбирает номер строки (с 1) и проверяет диапазон
func (a *App) rowNumber(raw string, count int, what string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > count {
		a.console.Alert(fmt.Sprintf("No %s %q", what, raw))
		return 0, false
	}
	return n, true
}
