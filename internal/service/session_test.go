package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/whitesvil1-lab/JustCani/internal/model"
	"github.com/whitesvil1-lab/JustCani/internal/service"
	"github.com/whitesvil1-lab/JustCani/internal/service/mocks"
)

type sessionDeps struct {
	backend   *mocks.CheckoutBackend
	prompter  *mocks.Prompter
	view      *mocks.SessionView
	publisher *mocks.CheckoutEventPublisher
}

func newSession(t *testing.T) (*service.Session, sessionDeps) {
	t.Helper()
	deps := sessionDeps{
		backend:   mocks.NewCheckoutBackend(t),
		prompter:  mocks.NewPrompter(t),
		view:      mocks.NewSessionView(t),
		publisher: mocks.NewCheckoutEventPublisher(t),
	}
	deps.view.On("RenderCart", mock.Anything).Return().Maybe()
	deps.view.On("ResetSearch").Return().Maybe()
	deps.view.On("SetModeControls", mock.Anything).Return().Maybe()

	s := service.NewSession(zap.NewNop(), deps.backend, deps.prompter, deps.view, deps.publisher)
	return s, deps
}

func price(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestSession_AddToCart_StockGate(t *testing.T) {
	tests := []struct {
		name    string
		mode    model.Mode
		stock   int
		wantOK  bool
		wantLen int
	}{
		{name: "regular with stock", mode: model.ModeRegular, stock: 3, wantOK: true, wantLen: 1},
		{name: "regular without stock is rejected", mode: model.ModeRegular, stock: 0, wantOK: false, wantLen: 0},
		{name: "regular with negative stock is rejected", mode: model.ModeRegular, stock: -1, wantOK: false, wantLen: 0},
		{name: "auction ignores stock", mode: model.ModeAuction, stock: 0, wantOK: true, wantLen: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, deps := newSession(t)
			require.NoError(t, s.SetMode(tt.mode))
			if !tt.wantOK {
				deps.prompter.On("Alert", "Roti is out of stock!").Return().Once()
			}

			require.Equal(t, tt.wantOK, s.AddToCart("A", "Roti", price(2000), tt.stock))
			require.Len(t, s.Items(), tt.wantLen)
		})
	}
}

func TestSession_AddToCart_MatchesSKUAndMode(t *testing.T) {
	s, _ := newSession(t)

	require.True(t, s.AddToCart("A", "Roti", price(2000), 5))
	require.True(t, s.AddToCart("A", "Roti", price(2000), 5))
	require.NoError(t, s.SetMode(model.ModeAuction))
	require.True(t, s.AddToCart("A", "Roti", price(1500), 0))

	items := s.Items()
	require.Len(t, items, 2)
	require.Equal(t, 2, items[0].Qty)
	require.Equal(t, model.ModeRegular, items[0].Mode)
	require.Equal(t, 5, items[0].Stock)
	require.Equal(t, 1, items[1].Qty)
	require.Equal(t, model.ModeAuction, items[1].Mode)
}

func TestSession_SetMode(t *testing.T) {
	s, deps := newSession(t)

	require.NoError(t, s.SetMode(model.ModeAuction))
	require.Equal(t, model.ModeAuction, s.Mode())
	deps.view.AssertCalled(t, "ResetSearch")
	deps.view.AssertCalled(t, "SetModeControls", model.ModeAuction)

	err := s.SetMode("lelang")
	require.ErrorIs(t, err, model.ErrInvalidMode)
	require.Equal(t, model.ModeAuction, s.Mode())
}

func TestSession_RenderCart(t *testing.T) {
	s, deps := newSession(t)

	view := s.RenderCart()
	require.True(t, view.Empty)
	require.Equal(t, 0, view.Count)
	require.True(t, view.Total.IsZero())

	require.True(t, s.AddToCart("A", "Roti", price(2000), 5))
	require.True(t, s.AddToCart("A", "Roti", price(2000), 5))
	require.NoError(t, s.SetMode(model.ModeAuction))
	require.True(t, s.AddToCart("L1", "Keju", price(21000), 0))

	view = s.RenderCart()
	require.False(t, view.Empty)
	require.Equal(t, 2, view.Count)
	require.True(t, view.Lines[0].Subtotal.Equal(price(4000)))
	require.True(t, view.Total.Equal(price(25000)))
	deps.view.AssertCalled(t, "RenderCart", view)
}

func TestSession_RemoveFromCart(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		wantOK   bool
		wantSKUs []model.SKU
	}{
		{name: "middle item", index: 1, wantOK: true, wantSKUs: []model.SKU{"A", "C"}},
		{name: "negative index is ignored", index: -1, wantSKUs: []model.SKU{"A", "B", "C"}},
		{name: "index past the end is ignored", index: 3, wantSKUs: []model.SKU{"A", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newSession(t)
			for _, sku := range []string{"A", "B", "C"} {
				require.True(t, s.AddToCart(sku, sku, price(1000), 1))
			}

			require.Equal(t, tt.wantOK, s.RemoveFromCart(tt.index))

			got := make([]model.SKU, 0)
			for _, item := range s.Items() {
				got = append(got, item.SKU)
			}
			require.Equal(t, tt.wantSKUs, got)
		})
	}
}

func TestSession_Checkout_EmptyCart(t *testing.T) {
	s, deps := newSession(t)
	deps.prompter.On("Alert", "Cart is empty!").Return().Once()

	require.False(t, s.Checkout(context.Background()))
	deps.backend.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything, mock.Anything)
}

// fillMixedCart: два товара regular и один auction
func fillMixedCart(t *testing.T, s *service.Session) {
	t.Helper()
	require.True(t, s.AddToCart("R1", "Roti", price(2000), 5))
	require.True(t, s.AddToCart("R2", "Kopi", price(18000), 5))
	require.NoError(t, s.SetMode(model.ModeAuction))
	require.True(t, s.AddToCart("L1", "Keju", price(21000), 0))
	require.NoError(t, s.SetMode(model.ModeRegular))
}

func TestSession_Checkout_MixedModesRegularFirst(t *testing.T) {
	ctx := context.Background()
	s, deps := newSession(t)
	fillMixedCart(t, s)

	deps.prompter.On("Confirm", "The cart contains items from 2 modes (regular, auction). Checkout each mode separately?").Return(true).Once()
	deps.prompter.On("Confirm", "Checkout 2 regular item(s)?").Return(true).Once()
	deps.prompter.On("Confirm", "Checkout 1 auction item(s)?").Return(true).Once()
	deps.prompter.On("Alert", mock.Anything).Return()
	deps.publisher.On("PublishCheckoutCompleted", ctx, mock.Anything).Return(nil).Twice()

	var submitted []model.Mode
	deps.backend.On("Checkout", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			mode := args.Get(1).(model.Mode)
			items := args.Get(2).([]model.LineItem)
			for _, item := range items {
				require.Equal(t, mode, item.Mode)
				require.True(t, item.Subtotal.Equal(item.LineTotal()))
			}
			if mode == model.ModeRegular {
				require.Len(t, items, 2)
			} else {
				require.Len(t, items, 1)
			}
			submitted = append(submitted, mode)
		}).
		Return(model.CheckoutResult{Success: true, Message: "ok"}, nil).Twice()

	require.True(t, s.Checkout(ctx))
	require.Equal(t, []model.Mode{model.ModeRegular, model.ModeAuction}, submitted)
	require.Empty(t, s.Items())
}

func TestSession_Checkout_MixedDeclined(t *testing.T) {
	ctx := context.Background()
	s, deps := newSession(t)
	fillMixedCart(t, s)

	deps.prompter.On("Confirm", mock.MatchedBy(func(msg string) bool { return msg != "" })).Return(false).Once()

	require.False(t, s.Checkout(ctx))
	require.Len(t, s.Items(), 3)
	deps.backend.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything, mock.Anything)
}

func TestSession_Checkout_SkippedBatchStaysInCart(t *testing.T) {
	ctx := context.Background()
	s, deps := newSession(t)
	fillMixedCart(t, s)

	deps.prompter.On("Confirm", "The cart contains items from 2 modes (regular, auction). Checkout each mode separately?").Return(true).Once()
	deps.prompter.On("Confirm", "Checkout 2 regular item(s)?").Return(false).Once()
	deps.prompter.On("Confirm", "Checkout 1 auction item(s)?").Return(true).Once()
	deps.prompter.On("Alert", "Checkout succeeded! TRX-1").Return().Once()
	deps.publisher.On("PublishCheckoutCompleted", ctx, mock.Anything).Return(nil).Once()
	deps.backend.On("Checkout", ctx, model.ModeAuction, mock.Anything).
		Return(model.CheckoutResult{Success: true, Message: "TRX-1"}, nil).Once()

	require.True(t, s.Checkout(ctx))

	items := s.Items()
	require.Len(t, items, 2)
	for _, item := range items {
		require.Equal(t, model.ModeRegular, item.Mode)
	}
}

func TestSession_Checkout_SingleMode(t *testing.T) {
	ctx := context.Background()
	s, deps := newSession(t)
	require.True(t, s.AddToCart("R1", "Roti", price(2000), 5))

	deps.prompter.On("Confirm", "Proceed with regular checkout of 1 item(s)?").Return(false).Once()
	require.False(t, s.Checkout(ctx))
	require.Len(t, s.Items(), 1)
}

func TestSession_ProcessCheckout(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		result     model.CheckoutResult
		err        error
		wantAlert  string
		wantOK     bool
		wantLeft   int
		wantPublic bool
	}{
		{
			name:       "success removes submitted items only",
			result:     model.CheckoutResult{Success: true, Message: "Total: Rp22.000"},
			wantAlert:  "Checkout succeeded! Total: Rp22.000",
			wantOK:     true,
			wantLeft:   1,
			wantPublic: true,
		},
		{
			name:      "backend failure keeps cart",
			result:    model.CheckoutResult{Success: false, Message: "insufficient stock"},
			wantAlert: "Checkout failed: insufficient stock",
			wantLeft:  3,
		},
		{
			name:      "transport error keeps cart",
			err:       errors.New("connection refused"),
			wantAlert: "A system error occurred during checkout. Please try again.",
			wantLeft:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := mocks.NewCheckoutBackend(t)
			prompter := mocks.NewPrompter(t)
			view := mocks.NewSessionView(t)
			publisher := mocks.NewCheckoutEventPublisher(t)
			view.On("RenderCart", mock.Anything).Return().Maybe()
			view.On("SetModeControls", mock.Anything).Return().Maybe()
			view.On("ResetSearch").Return().Maybe()

			s := service.NewSession(zap.NewNop(), backend, prompter, view, publisher)
			fillMixedCart(t, s)

			backend.On("Checkout", ctx, model.ModeRegular, mock.Anything).Return(tt.result, tt.err).Once()
			prompter.On("Alert", tt.wantAlert).Return().Once()
			if tt.wantPublic {
				publisher.On("PublishCheckoutCompleted", ctx, mock.MatchedBy(func(e service.CheckoutCompletedEvent) bool {
					return e.Mode == model.ModeRegular && len(e.Items) == 2 && e.Total.Equal(price(20000))
				})).Return(errors.New("broker down")).Once()
			}

			// подтверждаем только пакет regular
			prompter.On("Confirm", "The cart contains items from 2 modes (regular, auction). Checkout each mode separately?").Return(true).Once()
			prompter.On("Confirm", "Checkout 2 regular item(s)?").Return(true).Once()
			prompter.On("Confirm", "Checkout 1 auction item(s)?").Return(false).Once()

			require.Equal(t, tt.wantOK, s.Checkout(ctx))
			require.Len(t, s.Items(), tt.wantLeft)
			if tt.wantPublic {
				require.Equal(t, model.ModeAuction, s.Items()[0].Mode)
			}
		})
	}
}

func TestSession_ProcessCheckout_KeepsItemsAddedDuringRequest(t *testing.T) {
	ctx := context.Background()
	s, deps := newSession(t)
	require.True(t, s.AddToCart("R1", "Roti", price(2000), 5))

	deps.prompter.On("Confirm", "Proceed with regular checkout of 1 item(s)?").Return(true).Once()
	deps.prompter.On("Alert", "Checkout succeeded! done").Return().Once()
	deps.publisher.On("PublishCheckoutCompleted", ctx, mock.Anything).Return(nil).Once()
	deps.backend.On("Checkout", ctx, model.ModeRegular, mock.Anything).
		Run(func(mock.Arguments) {
			// пока запрос в полёте кассир добавляет ещё один товар
			require.True(t, s.AddToCart("R2", "Kopi", price(18000), 5))
		}).
		Return(model.CheckoutResult{Success: true, Message: "done"}, nil).Once()

	require.True(t, s.Checkout(ctx))

	items := s.Items()
	require.Len(t, items, 1)
	require.Equal(t, model.SKU("R2"), items[0].SKU)
}

func TestSession_NilPublisherUsesNoOp(t *testing.T) {
	ctx := context.Background()
	backend := mocks.NewCheckoutBackend(t)
	prompter := mocks.NewPrompter(t)
	view := mocks.NewSessionView(t)
	view.On("RenderCart", mock.Anything).Return().Maybe()
	view.On("ResetSearch").Return().Maybe()

	s := service.NewSession(zap.NewNop(), backend, prompter, view, nil)
	require.True(t, s.AddToCart("R1", "Roti", price(2000), 5))

	prompter.On("Confirm", mock.Anything).Return(true).Once()
	prompter.On("Alert", mock.Anything).Return().Once()
	backend.On("Checkout", ctx, model.ModeRegular, mock.Anything).Return(model.CheckoutResult{Success: true}, nil).Once()

	require.True(t, s.Checkout(ctx))
	require.Empty(t, s.Items())
}
