package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const utf8Family = "records"

// PDFExporter renders datasets and documents into printable PDFs. Core PDF
// fonts only cover Latin-1, so a UTF-8 TrueType font should be supplied for
// Bangla text.
type PDFExporter struct {
	fontPath string
}

// NewPDFExporter constructs a PDF exporter. fontPath may be empty.
func NewPDFExporter(fontPath string) *PDFExporter {
	return &PDFExporter{fontPath: fontPath}
}

// Render creates a landscape PDF with an optional title and a table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := e.newDocument("L")

	if title != "" {
		e.font(pdf, "B", 14)
		pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	e.font(pdf, "B", 9)
	colWidth := 277.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	e.font(pdf, "", 9)
	for _, row := range data.Rows {
		for _, header := range data.Headers {
			pdf.CellFormat(colWidth, 7, row[header], "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return output(pdf)
}

// RenderDocument prints a portrait key/value sheet, one block per section.
func (e *PDFExporter) RenderDocument(doc Document) ([]byte, error) {
	if len(doc.Sections) == 0 {
		return nil, fmt.Errorf("pdf document requires at least one section")
	}
	pdf := e.newDocument("P")

	e.font(pdf, "B", 16)
	pdf.CellFormat(0, 10, doc.Title, "", 1, "C", false, 0, "")
	if doc.Subtitle != "" {
		e.font(pdf, "", 10)
		pdf.CellFormat(0, 6, doc.Subtitle, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	for _, section := range doc.Sections {
		e.font(pdf, "B", 11)
		pdf.CellFormat(0, 8, section.Heading, "B", 1, "L", false, 0, "")
		e.font(pdf, "", 10)
		for _, field := range section.Fields {
			pdf.CellFormat(60, 7, field.Label, "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 7, field.Value, "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	return output(pdf)
}

func (e *PDFExporter) newDocument(orientation string) *gofpdf.Fpdf {
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	if e.fontPath != "" {
		pdf.AddUTF8Font(utf8Family, "", e.fontPath)
		pdf.AddUTF8Font(utf8Family, "B", e.fontPath)
	}
	pdf.AddPage()
	return pdf
}

func (e *PDFExporter) font(pdf *gofpdf.Fpdf, style string, size float64) {
	if e.fontPath != "" {
		pdf.SetFont(utf8Family, style, size)
		return
	}
	pdf.SetFont("Arial", style, size)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
