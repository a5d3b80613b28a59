package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Mode
		wantErr  bool
	}{
		{name: "regular", input: "regular", expected: ModeRegular},
		{name: "auction with spaces and caps", input: "  Auction ", expected: ModeAuction},
		{name: "unknown", input: "biasa", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidMode)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestSKU_UnmarshalJSON_StringOrNumber(t *testing.T) {
	var products []Product
	err := json.Unmarshal([]byte(`[
		{"no_SKU": "A-1", "Name_product": "Kopi", "Price": 15000, "stok": 3},
		{"no_SKU": 12345, "Name_product": "Teh", "Price": "7500.5"}
	]`), &products)
	require.NoError(t, err)
	require.Len(t, products, 2)

	require.Equal(t, SKU("A-1"), products[0].SKU)
	require.Equal(t, 3, products[0].Stock)

	require.Equal(t, SKU("12345"), products[1].SKU)
	require.Equal(t, 0, products[1].Stock)
	require.Equal(t, "7500.5", products[1].Price.String())
}

func TestSKU_UnmarshalJSON_RejectsObjects(t *testing.T) {
	var sku SKU
	require.Error(t, json.Unmarshal([]byte(`{"a":1}`), &sku))
}

func TestParsePrice(t *testing.T) {
	price, err := ParsePrice(" 12500 ")
	require.NoError(t, err)
	require.Equal(t, "12500", price.String())

	_, err = ParsePrice("abc")
	require.ErrorIs(t, err, ErrInvalidPrice)

	_, err = ParsePrice("")
	require.ErrorIs(t, err, ErrInvalidPrice)
}

func TestLineItem_JSONPricesAreNumbers(t *testing.T) {
	price, err := ParsePrice("2000")
	require.NoError(t, err)

	item := LineItem{SKU: "A", Name: "Roti", Price: price, Qty: 2, Mode: ModeRegular}
	item.Subtotal = item.LineTotal()

	data, err := json.Marshal(item)
	require.NoError(t, err)
	require.JSONEq(t, `{"sku":"A","name":"Roti","price":2000,"qty":2,"subtotal":4000,"mode":"regular"}`, string(data))
}

func TestDataURI_RoundTrip(t *testing.T) {
	uri := EncodeDataURI("image/png", []byte{0x89, 'P', 'N', 'G'})

	mime, data, err := DecodeDataURI(uri)
	require.NoError(t, err)
	require.Equal(t, "image/png", mime)
	require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)

	_, _, err = DecodeDataURI("https://example.com/x.png")
	require.ErrorIs(t, err, ErrInvalidDataURI)
}

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "0", want: "Rp0"},
		{in: "950", want: "Rp950"},
		{in: "18000", want: "Rp18.000"},
		{in: "1234567.6", want: "Rp1.234.568"},
		{in: "-2500", want: "-Rp2.500"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			price, err := ParsePrice(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, FormatRupiah(price))
		})
	}
}
