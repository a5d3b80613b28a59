package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/whitesvil1-lab/JustCani/internal/stub"
	platformhealth "github.com/whitesvil1-lab/JustCani/platform/health/http"
)

func newTestServer(t *testing.T, checks map[string]platformhealth.Check) *httptest.Server {
	t.Helper()

	seed, err := stub.LoadSeedFile("")
	require.NoError(t, err)

	handler := NewHandler(stub.NewCatalog(seed), zap.NewNop())
	srv := httptest.NewServer(NewRouter(handler, checks, zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, body string, out any) int {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHandler_Search(t *testing.T) {
	srv := newTestServer(t, nil)

	var regular []map[string]any
	status := doJSON(t, http.MethodGet, srv.URL+"/api/search?q=kopi", "", &regular)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, regular, 1)
	assert.Equal(t, "8991001", regular[0]["no_SKU"])
	assert.Equal(t, "Kopi Susu Gula Aren", regular[0]["Name_product"])
	assert.EqualValues(t, 18000, regular[0]["Price"])
	assert.EqualValues(t, 25, regular[0]["stok"])
	assert.Equal(t, "biasa", regular[0]["type"])

	var auction []map[string]any
	status = doJSON(t, http.MethodGet, srv.URL+"/api/search_lelang?q=keju", "", &auction)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, auction, 1)
	assert.Equal(t, "lelang", auction[0]["type"])
	assert.NotContains(t, auction[0], "stok")
}

func TestHandler_Search_EmptyResultIsArray(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/api/search?q=zzz")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(body))
}

func TestHandler_Checkout(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name        string
		path        string
		body        string
		wantStatus  int
		wantSuccess bool
		wantMessage string
	}{
		{
			name:        "regular success with numeric sku",
			path:        "/api/checkout",
			body:        `{"items":[{"sku":8991001,"name":"Kopi","price":18000,"qty":2,"subtotal":36000,"mode":"regular"}]}`,
			wantStatus:  http.StatusOK,
			wantSuccess: true,
			wantMessage: "Total: Rp36000",
		},
		{
			name:        "insufficient stock",
			path:        "/api/checkout",
			body:        `{"items":[{"sku":"8991003","qty":1}]}`,
			wantStatus:  http.StatusOK,
			wantMessage: "insufficient stock",
		},
		{
			name:        "auction lot",
			path:        "/api/checkout_lelang",
			body:        `{"items":[{"sku":"7700102","qty":1}]}`,
			wantStatus:  http.StatusOK,
			wantSuccess: true,
			wantMessage: "Rp21000",
		},
		{
			name:       "invalid json",
			path:       "/api/checkout",
			body:       `{"items":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			status := doJSON(t, http.MethodPost, srv.URL+tt.path, tt.body, &result)
			require.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantSuccess, result.Success)
			assert.Contains(t, result.Message, tt.wantMessage)
		})
	}
}

func TestHandler_Barcode(t *testing.T) {
	srv := newTestServer(t, nil)

	var products struct {
		Success  bool `json:"success"`
		Products []struct {
			SKU  string `json:"sku"`
			Name string `json:"name"`
		} `json:"products"`
	}
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, srv.URL+"/api/products/for_barcode", "", &products))
	require.True(t, products.Success)
	require.Len(t, products.Products, 3)

	var barcode struct {
		Success bool   `json:"success"`
		Barcode string `json:"barcode"`
	}
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, srv.URL+"/api/barcode/8991001", "", &barcode))
	assert.True(t, barcode.Success)
	assert.True(t, strings.HasPrefix(barcode.Barcode, "data:image/png;base64,"))

	var missing struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.Equal(t, http.StatusNotFound, doJSON(t, http.MethodGet, srv.URL+"/api/barcode/nope", "", &missing))
	assert.False(t, missing.Success)

	resp, err := http.Get(srv.URL + "/api/barcode/8991001/download")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "barcode_8991001.png")

	page, err := http.Get(srv.URL + "/api/print_barcode/8991001")
	require.NoError(t, err)
	defer page.Body.Close()
	html, err := io.ReadAll(page.Body)
	require.NoError(t, err)
	assert.Contains(t, string(html), "window.print()")
	assert.Contains(t, string(html), "data:image/png;base64,")
}

func TestHandler_GenerateAllAndStatus(t *testing.T) {
	srv := newTestServer(t, nil)

	var generated struct {
		Success   bool `json:"success"`
		Generated int  `json:"generated"`
		Total     int  `json:"total"`
	}
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, srv.URL+"/api/barcode/generate_all", "", &generated))
	assert.True(t, generated.Success)
	assert.Equal(t, 5, generated.Generated)
	assert.Equal(t, 5, generated.Total)

	var status struct {
		Success bool `json:"success"`
		Status  struct {
			TotalProducts      int     `json:"total_products"`
			WithBarcode        int     `json:"with_barcode"`
			ProgressPercentage float64 `json:"progress_percentage"`
		} `json:"status"`
	}
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, srv.URL+"/api/barcode/status", "", &status))
	assert.Equal(t, 5, status.Status.WithBarcode)
	assert.InDelta(t, 100.0, status.Status.ProgressPercentage, 0.001)
}

func TestHandler_DebugCart(t *testing.T) {
	srv := newTestServer(t, nil)

	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	status := doJSON(t, http.MethodPost, srv.URL+"/api/debug_cart", `{"items":[{"sku":"12345","qty":1}],"test":true}`, &result)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, result.Success)
	assert.Equal(t, "Received 1 items (test=true)", result.Message)
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t, map[string]platformhealth.Check{
		"catalog": func(context.Context) error { return errors.New("down") },
	})

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
