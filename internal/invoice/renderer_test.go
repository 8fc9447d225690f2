package invoice

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInvoice() Invoice {
	return Invoice{
		Number:    42,
		Date:      time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
		LegalName: "Jordan Reyes",
		Email:     "jordan@example.com",
		Address:   "12 Harbor Lane, Portland",
		Items: []Line{
			{Name: "Ethiopia Yirgacheffe, Whole Bean 250g", UnitPrice: 14.50, Quantity: 2, Total: 29.00},
			{Name: "Ceramic Pour-Over Dripper", UnitPrice: 21.00, Quantity: 1, Total: 21.00},
		},
		Total: 50.00,
	}
}

func TestRenderProducesPDF(t *testing.T) {
	r := NewRenderer("")

	pdf, err := r.Render(sampleInvoice())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
	assert.Greater(t, len(pdf), 500)
}

func TestRenderAccentedNames(t *testing.T) {
	// without the DejaVu fonts the renderer falls back to cp1252
	// translation, which must still not error on accented names
	r := NewRenderer("")

	inv := sampleInvoice()
	inv.LegalName = "Renée Müller"
	inv.Items[0].Name = "Café Touba Blend"

	pdf, err := r.Render(inv)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
}

func TestRenderWideUnicodeFallback(t *testing.T) {
	// runes beyond Latin-1 have no slot in the built-in font's width
	// table; rendering must degrade, not crash
	r := NewRenderer("")

	inv := sampleInvoice()
	inv.LegalName = "山田 晴子"
	inv.Items[0].Name = "House Espresso ☕ — Sumatra 寿"

	pdf, err := r.Render(inv)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
}

func TestRenderLongOrderPaginates(t *testing.T) {
	r := NewRenderer("")

	inv := sampleInvoice()
	inv.Items = nil
	for i := 0; i < 80; i++ {
		inv.Items = append(inv.Items, Line{Name: "Single Origin Sample Pack With A Deliberately Long Product Name", UnitPrice: 3.00, Quantity: 1, Total: 3.00})
	}
	inv.Total = 240.00

	pdf, err := r.Render(inv)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
}
