// Package pdf renders simple business documents (payslips, invoices) with gofpdf.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const ContentType = "application/pdf"

// Document is a rendered file ready to be streamed, stored or attached.
type Document struct {
	Filename string
	Content  []byte
}

type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// Block is a headed group of lines, e.g. the issuer or the bill-to party.
type Block struct {
	Heading string
	Lines   []string
}

type Column struct {
	Header string
	Width  float64
	Align  Align
}

type Table struct {
	Columns []Column
	Rows    [][]string
}

// SummaryRow is a label/value pair printed right-aligned under the table.
type SummaryRow struct {
	Label string
	Value string
	Bold  bool
}

// Layout describes a one-column business document.
type Layout struct {
	Logo     []byte // JPEG, optional
	Title    string
	Subtitle string
	Meta     []SummaryRow
	Blocks   []Block
	Table    *Table
	Summary  []SummaryRow
	Footer   []string
}

const (
	margin     = 15.0
	pageWidth  = 210.0
	lineHeight = 6.0
	logoWidth  = 35.0
)

// Render draws l on A4 portrait pages.
func Render(l Layout) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(true, margin)
	doc.SetTitle(l.Title, true)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	if len(l.Logo) > 0 {
		drawLogo(doc, l.Logo)
	}

	doc.SetFont("Helvetica", "B", 16)
	doc.SetTextColor(33, 37, 41)
	doc.Cell(0, 10, tr(l.Title))
	doc.Ln(10)
	if l.Subtitle != "" {
		doc.SetFont("Helvetica", "", 11)
		doc.Cell(0, 7, tr(l.Subtitle))
		doc.Ln(9)
	}

	doc.SetFont("Helvetica", "", 10)
	for _, m := range l.Meta {
		doc.CellFormat(40, lineHeight, tr(m.Label), "", 0, string(AlignLeft), false, 0, "")
		doc.CellFormat(0, lineHeight, tr(m.Value), "", 1, string(AlignLeft), false, 0, "")
	}
	if len(l.Meta) > 0 {
		doc.Ln(4)
	}

	for _, b := range l.Blocks {
		doc.SetFont("Helvetica", "B", 11)
		doc.Cell(0, lineHeight+1, tr(b.Heading))
		doc.Ln(lineHeight + 1)
		doc.SetFont("Helvetica", "", 10)
		for _, line := range b.Lines {
			doc.Cell(0, lineHeight, tr(line))
			doc.Ln(lineHeight)
		}
		doc.Ln(3)
	}

	if l.Table != nil {
		drawTable(doc, tr, *l.Table)
	}

	if len(l.Summary) > 0 {
		doc.Ln(4)
		labelWidth := (pageWidth - 2*margin) * 0.7
		for _, s := range l.Summary {
			style := ""
			if s.Bold {
				style = "B"
			}
			doc.SetFont("Helvetica", style, 10)
			doc.CellFormat(labelWidth, lineHeight, tr(s.Label), "", 0, string(AlignRight), false, 0, "")
			doc.CellFormat(0, lineHeight, tr(s.Value), "", 1, string(AlignRight), false, 0, "")
		}
	}

	if len(l.Footer) > 0 {
		doc.Ln(8)
		doc.SetFont("Helvetica", "I", 9)
		doc.SetTextColor(108, 117, 125)
		for _, line := range l.Footer {
			doc.MultiCell(0, 5, tr(line), "", string(AlignLeft), false)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// drawLogo places the logo in the top-right corner. An undecodable logo is skipped.
func drawLogo(doc *gofpdf.Fpdf, logo []byte) {
	opts := gofpdf.ImageOptions{ImageType: "JPG"}
	if info := doc.RegisterImageOptionsReader("logo", opts, bytes.NewReader(logo)); info == nil || !doc.Ok() {
		doc.ClearError()
		return
	}
	doc.ImageOptions("logo", pageWidth-margin-logoWidth, margin, logoWidth, 0, false, opts, 0, "")
}

func drawTable(doc *gofpdf.Fpdf, tr func(string) string, t Table) {
	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(240, 240, 240)
	for _, c := range t.Columns {
		doc.CellFormat(c.Width, 8, tr(c.Header), "1", 0, string(AlignCenter), true, 0, "")
	}
	doc.Ln(8)

	doc.SetFont("Helvetica", "", 10)
	for _, row := range t.Rows {
		for i, c := range t.Columns {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			align := c.Align
			if align == "" {
				align = AlignLeft
			}
			doc.CellFormat(c.Width, 7, tr(value), "1", 0, string(align), false, 0, "")
		}
		doc.Ln(7)
	}
}
