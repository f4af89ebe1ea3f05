package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/madhupandey29/shopy-admin-api/internal/domain"
)

// column widths in mm for the landscape A4 product table.
var productColWidths = []float64{40, 20, 24, 20, 16, 16, 16, 16, 14, 18, 20, 20, 20}

// ProductsPDF renders the filtered rows as a landscape table, matching the
// list view's columns.
func ProductsPDF(w io.Writer, products []domain.Product) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 10, "Fabric Products")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(37, 99, 235)
	pdf.SetTextColor(255, 255, 255)
	for i, col := range productColumns {
		pdf.CellFormat(productColWidths[i], 7, col, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	for _, p := range products {
		for i, cell := range productRow(p) {
			pdf.CellFormat(productColWidths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

// GroupCodesPDF renders the group-code list as a portrait table.
func GroupCodesPDF(w io.Writer, codes []domain.GroupCode) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 10, "Group Codes")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(37, 99, 235)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(80, 7, "Name", "1", 0, "L", true, 0, "")
	pdf.CellFormat(100, 7, "Image", "1", 0, "L", true, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for _, gc := range codes {
		pdf.CellFormat(80, 6, gc.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(100, 6, gc.Image, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}
