package invoice

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	brandName = "DriftMood Coffee"
	brandSite = "www.driftmoodcoffee.com"
)

// Line is one frozen order line on the invoice.
type Line struct {
	Name      string
	UnitPrice float64
	Quantity  int
	Total     float64
}

// Invoice is the order snapshot the renderer lays out. The invoice
// number is the order id.
type Invoice struct {
	Number    int64
	Date      time.Time
	LegalName string
	Email     string
	Address   string
	Items     []Line
	Total     float64
}

// Renderer draws invoices with a fixed layout: brand header, INVOICE
// title, metadata block, a four-column item table with wrapped product
// names, a trailing total and a footer line. Large orders flow onto
// additional pages via fpdf's default page breaks.
type Renderer struct {
	fontDir string
}

// NewRenderer takes the directory holding DejaVuSans.ttf and
// DejaVuSans-Bold.ttf. When the fonts are absent the renderer falls
// back to the built-in Helvetica with cp1252 translation, which keeps
// Latin-1 accents but drops wider Unicode.
func NewRenderer(fontDir string) *Renderer {
	return &Renderer{fontDir: fontDir}
}

func (r *Renderer) Render(inv Invoice) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)

	family := "Helvetica"
	utf8Font := false
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	regular := filepath.Join(r.fontDir, "DejaVuSans.ttf")
	bold := filepath.Join(r.fontDir, "DejaVuSans-Bold.ttf")
	if fileExists(regular) && fileExists(bold) {
		pdf.AddUTF8Font("DejaVu", "", regular)
		pdf.AddUTF8Font("DejaVu", "B", bold)
		family = "DejaVu"
		utf8Font = true
		tr = func(s string) string { return s }
	}

	pdf.AddPage()

	// Header
	pdf.SetFont(family, "", 20)
	pdf.CellFormat(0, 10, tr(brandName), "", 1, "C", false, 0, "")
	pdf.SetFont(family, "", 10)
	pdf.CellFormat(0, 5, brandSite, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont(family, "", 14)
	pdf.CellFormat(0, 8, "INVOICE", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Customer / order metadata
	pdf.SetFont(family, "", 12)
	meta := []string{
		fmt.Sprintf("Invoice Number: %d", inv.Number),
		fmt.Sprintf("Date: %s", inv.Date.Format("01/02/2006")),
		fmt.Sprintf("Customer Name: %s", inv.LegalName),
		fmt.Sprintf("Customer Email: %s", inv.Email),
		fmt.Sprintf("Delivery Address: %s", inv.Address),
	}
	for _, line := range meta {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	// Table: Product | Unit Price | Quantity | Total
	colWidths := []float64{85, 35, 30, 40}
	colAligns := []string{"L", "R", "R", "R"}

	pdf.SetFont(family, "B", 12)
	drawRow(pdf, tr, utf8Font, colWidths, colAligns, []string{"Product", "Unit Price", "Quantity", "Total"})
	x, y := pdf.GetXY()
	pdf.Line(x, y, x+sum(colWidths), y)
	pdf.Ln(1)

	pdf.SetFont(family, "", 12)
	for _, it := range inv.Items {
		drawRow(pdf, tr, utf8Font, colWidths, colAligns, []string{
			it.Name,
			fmt.Sprintf("$%.2f", it.UnitPrice),
			fmt.Sprintf("%d", it.Quantity),
			fmt.Sprintf("$%.2f", it.Total),
		})
	}

	pdf.Ln(6)
	pdf.SetFont(family, "", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total Amount Due: $%.2f", inv.Total), "", 1, "R", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont(family, "", 10)
	pdf.CellFormat(0, 6, tr("Thank you for shopping with DriftMood Coffee!"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice: %w", err)
	}
	return buf.Bytes(), nil
}

// drawRow writes one table row, sizing the row to the wrapped height
// of its tallest cell so long product names never overlap.
func drawRow(pdf *fpdf.Fpdf, tr func(string) string, utf8Font bool, widths []float64, aligns []string, cells []string) {
	const lineHeight = 5.0

	maxLines := 1
	for i, cell := range cells {
		n := wrapCount(pdf, utf8Font, cell, tr(cell), widths[i])
		if n > maxLines {
			maxLines = n
		}
	}
	rowHeight := float64(maxLines)*lineHeight + 2

	startX, y := pdf.GetXY()
	x := startX
	for i, cell := range cells {
		pdf.SetXY(x, y)
		if i == 0 {
			pdf.MultiCell(widths[i], lineHeight, tr(cell), "", aligns[i], false)
		} else {
			pdf.CellFormat(widths[i], rowHeight, tr(cell), "", 0, aligns[i], false, 0, "")
		}
		x += widths[i]
	}
	pdf.SetXY(startX, y+rowHeight)
}

// wrapCount reports how many lines a cell needs in a column. SplitText
// indexes the current font's width table by rune and the built-in
// fonts only carry 256 entries, so it must never see translated bytes
// or runes beyond Latin-1 while a core font is active. Wider text in
// the fallback mode is sized from its rendered width instead; the core
// fonts measure strings byte-wise, so the translated form is safe
// there.
func wrapCount(pdf *fpdf.Fpdf, utf8Font bool, raw, translated string, width float64) int {
	if utf8Font || maxRune(raw) < 0x100 {
		return len(pdf.SplitText(raw, width))
	}
	avail := width - 2*pdf.GetCellMargin()
	if avail <= 0 {
		return 1
	}
	return 1 + int(pdf.GetStringWidth(translated)/avail)
}

func maxRune(s string) rune {
	var max rune
	for _, r := range s {
		if r > max {
			max = r
		}
	}
	return max
}

func sum(ws []float64) float64 {
	var s float64
	for _, w := range ws {
		s += w
	}
	return s
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
