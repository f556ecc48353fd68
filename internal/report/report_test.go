package report_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"crmsales/internal/report"
	"crmsales/internal/repository"
)

func strptr(s string) *string { return &s }

func sampleRows() []repository.PurchaseRow {
	birthday := time.Date(1990, 2, 3, 0, 0, 0, 0, time.UTC)
	return []repository.PurchaseRow{
		{
			PurchaseID: 1, CustomerID: 11,
			PurchaseDate: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
			ListingPrice: 100, SalePrice: 80, DiscountPercentage: 20,
			Birthday: &birthday, Gender: strptr("female"),
		},
		{
			PurchaseID: 2, CustomerID: 11,
			PurchaseDate: time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC),
			ListingPrice: 200, SalePrice: 200,
		},
		{
			PurchaseID: 3, CustomerID: 12,
			PurchaseDate: time.Date(2025, 5, 13, 0, 0, 0, 0, time.UTC),
			ListingPrice: 50, SalePrice: 40, DiscountPercentage: 20,
		},
	}
}

func TestSummarize(t *testing.T) {
	s := report.Summarize(sampleRows())
	assert.Equal(t, 3, s.TotalPurchases)
	assert.Equal(t, 2, s.UniqueCustomers)
	assert.InDelta(t, 320, s.TotalRevenue, 1e-9)
	assert.InDelta(t, 30, s.TotalDiscount, 1e-9)
}

func TestSummarizeSingleCustomer(t *testing.T) {
	// One customer, purchases (100,80) and (200,200).
	rows := sampleRows()[:2]
	s := report.Summarize(rows)
	assert.Equal(t, 2, s.TotalPurchases)
	assert.Equal(t, 1, s.UniqueCustomers)
	assert.InDelta(t, 280, s.TotalRevenue, 1e-9)
	assert.InDelta(t, 20, s.TotalDiscount, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := report.Summarize(nil)
	assert.Equal(t, report.Summary{}, s)
}

func TestRenderExcel(t *testing.T) {
	raw, err := report.RenderExcel(sampleRows())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 4) // header + 3 purchases

	assert.Equal(t, "Purchase ID", rows[0][0])
	assert.Equal(t, "Customer Gender", rows[0][7])

	// First data row carries the optional customer attributes.
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "2025-05-10", rows[1][2])
	assert.Equal(t, "1990-02-03", rows[1][6])
	assert.Equal(t, "female", rows[1][7])

	// Second data row has neither birthday nor gender; trailing empty
	// cells may be trimmed entirely.
	if len(rows[2]) > 6 {
		assert.Equal(t, "", rows[2][6])
	}
}

func TestRenderExcelEmpty(t *testing.T) {
	raw, err := report.RenderExcel(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	assert.Len(t, rows, 1) // header only
}
