package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httpapi "github.com/whitesvil1-lab/JustCani/internal/api/http"
	"github.com/whitesvil1-lab/JustCani/internal/config"
	"github.com/whitesvil1-lab/JustCani/internal/model"
	"github.com/whitesvil1-lab/JustCani/internal/stub"
)

func newBackend(t *testing.T) (*httptest.Server, *stub.Catalog) {
	t.Helper()

	seed, err := stub.LoadSeedFile("")
	require.NoError(t, err)
	catalog := stub.NewCatalog(seed)

	srv := httptest.NewServer(httpapi.NewRouter(httpapi.NewHandler(catalog, zap.NewNop()), nil, nil))
	t.Cleanup(srv.Close)
	return srv, catalog
}

func testConfig(backendURL string) config.Config {
	return config.Config{
		AppEnv:          config.EnvLocal,
		LogLevel:        "error",
		BackendURL:      backendURL,
		HTTPTimeout:     5 * time.Second,
		CartStore:       config.StoreMemory,
		CartStorageKey:  "cartItems",
		NotificationTTL: time.Second,
		StubHTTPAddr:    "127.0.0.1:0",
		ShutdownTimeout: time.Second,
	}
}

func buildApp(t *testing.T, backendURL, input string) (*App, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	a, err := Build(context.Background(), testConfig(backendURL),
		WithIO(strings.NewReader(input), &out),
		WithLogger(zap.NewNop()),
	)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a, &out
}

func TestShell_SearchAddCheckout(t *testing.T) {
	srv, catalog := newBackend(t)

	a, out := buildApp(t, srv.URL, strings.Join([]string{
		"search kopi",
		"add 1",
		"add 1",
		"checkout",
		"y",
		"quit",
		"cart",
	}, "\n")+"\n")

	require.NoError(t, a.RunShell(context.Background()))

	text := out.String()
	assert.Contains(t, text, "[REGULAR] Kopi Susu Gula Aren (SKU: 8991001)")
	assert.Contains(t, text, "Proceed with regular checkout of 1 item(s)?")
	assert.Contains(t, text, "Checkout succeeded!")
	assert.Contains(t, text, "Total: Rp36000")

	// После quit команды не выполняются
	assert.Empty(t, a.Session().Items())

	products := catalog.Search(model.ModeRegular, "kopi")
	require.Len(t, products, 1)
	assert.Equal(t, 23, products[0].Stock)
	require.Len(t, catalog.Transactions(), 1)
}

func TestShell_Commands(t *testing.T) {
	srv, _ := newBackend(t)

	tests := []struct {
		name     string
		lines    []string
		contains []string
		items    int
		mode     model.Mode
	}{
		{
			name:     "unknown command",
			lines:    []string{"dance"},
			contains: []string{`Unknown command "dance"`},
			mode:     model.ModeRegular,
		},
		{
			name:     "invalid mode",
			lines:    []string{"mode grosir"},
			contains: []string{"invalid mode"},
			mode:     model.ModeRegular,
		},
		{
			name:     "switch to auction and add lot",
			lines:    []string{"mode auction", "search keju", "add 1"},
			contains: []string{"Mode: AUCTION", "[AUCTION] Keju Cheddar 250g"},
			items:    1,
			mode:     model.ModeAuction,
		},
		{
			name:     "mode switch drops previous results",
			lines:    []string{"search kopi", "mode auction", "add 1"},
			contains: []string{"Mode: AUCTION", `No search result "1"`},
			mode:     model.ModeAuction,
		},
		{
			name:     "checkout drops results with old stock",
			lines:    []string{"search kopi", "add 1", "checkout", "y", "add 1"},
			contains: []string{"Checkout succeeded!", `No search result "1"`},
			mode:     model.ModeRegular,
		},
		{
			name:     "add without search",
			lines:    []string{"add 1"},
			contains: []string{`No search result "1"`},
			mode:     model.ModeRegular,
		},
		{
			name:     "out of stock is rejected",
			lines:    []string{"search melati", "add 1"},
			contains: []string{`Teh Melati "Premium" is out of stock!`},
			mode:     model.ModeRegular,
		},
		{
			name:     "remove line",
			lines:    []string{"search roti", "add 1", "rm 1"},
			contains: []string{"Cart is empty."},
			mode:     model.ModeRegular,
		},
		{
			name:     "remove missing line",
			lines:    []string{"rm 3"},
			contains: []string{`No cart line "3"`},
			mode:     model.ModeRegular,
		},
		{
			name:     "empty cart checkout",
			lines:    []string{"checkout"},
			contains: []string{"Cart is empty!"},
			mode:     model.ModeRegular,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, out := buildApp(t, srv.URL, strings.Join(tt.lines, "\n")+"\n")

			// Конец ввода завершает shell без ошибки
			require.NoError(t, a.RunShell(context.Background()))

			for _, want := range tt.contains {
				assert.Contains(t, out.String(), want)
			}
			assert.Len(t, a.Session().Items(), tt.items)
			assert.Equal(t, tt.mode, a.Session().Mode())
		})
	}
}

func TestShell_CheckoutDeclined(t *testing.T) {
	srv, catalog := newBackend(t)

	a, _ := buildApp(t, srv.URL, "search kopi\nadd 1\ncheckout\nn\n")
	require.NoError(t, a.RunShell(context.Background()))

	assert.Len(t, a.Session().Items(), 1)
	assert.Empty(t, catalog.Transactions())
}

func TestBuild_PersistentCart(t *testing.T) {
	srv, _ := newBackend(t)
	a, out := buildApp(t, srv.URL, "")

	ctx := context.Background()
	require.True(t, a.Cart().Add(ctx, "8991001", "Kopi Susu Gula Aren", "18000", ""))
	require.True(t, a.Cart().Add(ctx, "8991001", "Kopi Susu Gula Aren", "18000", ""))

	summary := a.Cart().Summary()
	assert.Equal(t, 2, summary.TotalItems)
	assert.Equal(t, "36000", summary.TotalPrice.String())
	assert.Contains(t, out.String(), "✔ Success! Kopi Susu Gula Aren added to cart")
}

func TestBuild_UnsupportedStore(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:5000")
	cfg.CartStore = "sqlite"

	_, err := Build(context.Background(), cfg, WithIO(strings.NewReader(""), &bytes.Buffer{}), WithLogger(zap.NewNop()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported cart store")
}

func TestBuild_InvalidBackendURL(t *testing.T) {
	cfg := testConfig("ftp://pos")

	_, err := Build(context.Background(), cfg, WithIO(strings.NewReader(""), &bytes.Buffer{}), WithLogger(zap.NewNop()))
	require.Error(t, err)
}

func TestBuildStub_HealthAndRun(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:5000")

	stubApp, err := BuildStub(context.Background(), cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(stubApp.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- stubApp.Run(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("stub did not stop after context cancel")
	}
}
