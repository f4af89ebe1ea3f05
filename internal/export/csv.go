// Package export renders already-fetched, already-filtered rows into CSV and
// PDF documents. No backend round-trip happens here.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/madhupandey29/shopy-admin-api/internal/domain"
)

// productColumns are the list view's display columns, in table order.
var productColumns = []string{
	"Name", "SKU", "Product ID", "Location", "GSM", "OZ", "CM", "Inch",
	"Qty", "Unit", "Purchase", "Sales", "Currency",
}

func productRow(p domain.Product) []string {
	return []string{
		p.Name, p.SKU, p.ProductIdentifier, p.LocationCode, p.GSM, p.OZ, p.CM, p.Inch,
		strconv.FormatFloat(p.Quantity, 'f', -1, 64), p.Unit, p.PurchasePrice, p.SalesPrice, p.Currency,
	}
}

// ProductsCSV writes the filtered product rows with all display columns.
func ProductsCSV(w io.Writer, products []domain.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(productColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, p := range products {
		if err := cw.Write(productRow(p)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

var groupCodeColumns = []string{"Name", "Image"}

// GroupCodesCSV writes the filtered group-code rows.
func GroupCodesCSV(w io.Writer, codes []domain.GroupCode) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(groupCodeColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, gc := range codes {
		if err := cw.Write([]string{gc.Name, gc.Image}); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
