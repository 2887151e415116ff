package barcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLabel_GS1(t *testing.T) {
	tests := []struct {
		name string
		code string
		want Label
	}{
		{
			name: "GTIN expiry and lot",
			code: "0114901234567895" + "17280131" + "10ABC123",
			want: Label{SKU: "14901234567895", Expiry: "202801", Lot: "ABC123"},
		},
		{
			name: "GTIN only",
			code: "0114901234567895",
			want: Label{SKU: "14901234567895"},
		},
		{
			name: "lot before expiry",
			code: "0114901234567895" + "10LOT9" + "17280131",
			want: Label{SKU: "14901234567895", Expiry: "202801", Lot: "LOT9"},
		},
		{
			name: "quantity AI delimited by fixed AI",
			code: "0114901234567895" + "3012" + "17280131",
			want: Label{SKU: "14901234567895", Qty: "12", Expiry: "202801"},
		},
		{
			name: "lot containing a bare 01 suffix keeps it",
			code: "0114901234567895" + "10AB01",
			want: Label{SKU: "14901234567895", Lot: "AB01"},
		},
		{
			name: "lot capped at maximum length",
			code: "0114901234567895" + "10" + "ABCDEFGHIJKLMNOPQRSTUVWX",
			want: Label{SKU: "14901234567895", Lot: "ABCDEFGHIJKLMNOPQRST"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLabel(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseLabel_PlainCodes(t *testing.T) {
	t.Run("GTIN-14 passes through", func(t *testing.T) {
		got, err := ParseLabel("14901234567895")
		require.NoError(t, err)
		assert.Equal(t, "14901234567895", got.SKU)
	})

	t.Run("JAN-13 is zero-padded", func(t *testing.T) {
		got, err := ParseLabel("4901234567894")
		require.NoError(t, err)
		assert.Equal(t, "04901234567894", got.SKU)
	})

	t.Run("JAN-8 is zero-padded", func(t *testing.T) {
		got, err := ParseLabel("49123456")
		require.NoError(t, err)
		assert.Equal(t, "00000049123456", got.SKU)
	})
}

func TestParseLabel_Delimited(t *testing.T) {
	tests := []struct {
		name string
		code string
		want Label
	}{
		{
			name: "sku qty and lot",
			code: "RES-0603,5,LOT42",
			want: Label{SKU: "RES-0603", Qty: "5", Lot: "LOT42"},
		},
		{
			name: "sku only with trailing comma",
			code: "RES-0603,",
			want: Label{SKU: "RES-0603"},
		},
		{
			name: "spaces around fields are trimmed",
			code: "RES-0603 , 5 , LOT42",
			want: Label{SKU: "RES-0603", Qty: "5", Lot: "LOT42"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLabel(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseLabel_Errors(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{name: "empty", code: ""},
		{name: "whitespace only", code: "   "},
		{name: "long code without AI 01 prefix", code: "991490123456789512345"},
		{name: "truncated GTIN", code: "011490123456789"},
		{name: "delimited with empty sku", code: ",5,LOT42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLabel(tt.code)
			assert.Error(t, err)
		})
	}
}
