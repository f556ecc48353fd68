// Package report computes purchase summary statistics over a date range
// and renders the per-purchase export as an .xlsx workbook.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"crmsales/internal/repository"
)

// Summary holds the scalar aggregates over a set of purchases.
type Summary struct {
	TotalPurchases  int     // number of purchases in range
	UniqueCustomers int     // distinct customer ids among them
	TotalRevenue    float64 // sum of sale prices
	TotalDiscount   float64 // sum of (listing - sale)
}

// Summarize computes the aggregates over the given rows. The caller is
// responsible for treating an empty slice as the "no data" case.
func Summarize(rows []repository.PurchaseRow) Summary {
	var s Summary
	seen := make(map[uint64]struct{}, len(rows))
	for _, r := range rows {
		s.TotalPurchases++
		s.TotalRevenue += r.SalePrice
		s.TotalDiscount += r.ListingPrice - r.SalePrice
		seen[r.CustomerID] = struct{}{}
	}
	s.UniqueCustomers = len(seen)
	return s
}

var exportHeader = []interface{}{
	"Purchase ID", "Customer ID", "Purchase Date",
	"Listing Price", "Sale Price", "Discount %",
	"Customer Birthday", "Customer Gender",
}

// RenderExcel writes one row per purchase, in the order given, into a
// single-sheet workbook and returns the serialized file. Optional
// customer attributes render as empty cells.
func RenderExcel(rows []repository.PurchaseRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return nil, err
	}
	for i, r := range rows {
		birthday := ""
		if r.Birthday != nil {
			birthday = r.Birthday.Format("2006-01-02")
		}
		gender := ""
		if r.Gender != nil {
			gender = *r.Gender
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			r.PurchaseID,
			r.CustomerID,
			r.PurchaseDate.Format("2006-01-02"),
			r.ListingPrice,
			r.SalePrice,
			r.DiscountPercentage,
			birthday,
			gender,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
