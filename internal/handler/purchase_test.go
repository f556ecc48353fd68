package handler_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"crmsales/internal/handler"
	"crmsales/internal/model"
	"crmsales/internal/repository"
)

type MockCustomerGetter struct{ mock.Mock }

func (m *MockCustomerGetter) GetByID(ctx context.Context, id uint64) (model.Customer, error) {
	args := m.Called(id)
	return args.Get(0).(model.Customer), args.Error(1)
}

type MockPurchaseStore struct{ mock.Mock }

func (m *MockPurchaseStore) Create(ctx context.Context, p *model.Purchase) error {
	args := m.Called(p)
	if args.Error(0) == nil {
		p.ID = 42
	}
	return args.Error(0)
}

func (m *MockPurchaseStore) ListBetween(ctx context.Context, from, to time.Time) ([]repository.PurchaseRow, error) {
	args := m.Called(from, to)
	return args.Get(0).([]repository.PurchaseRow), args.Error(1)
}

func purchaseRouter(cg *MockCustomerGetter, ps *MockPurchaseStore) *echo.Echo {
	e := echo.New()
	h := handler.NewPurchaseHandler(cg, ps)
	e.POST("/create_purchase/", h.Create)
	e.POST("/purchase_summary/", h.Summary)
	return e
}

func TestCreatePurchase(t *testing.T) {
	customers := new(MockCustomerGetter)
	purchases := new(MockPurchaseStore)
	customers.On("GetByID", uint64(11)).Return(model.Customer{ID: 11}, nil).Once()
	purchases.On("Create", mock.MatchedBy(func(p *model.Purchase) bool {
		return p.CustomerID == 11 &&
			p.PurchaseDate.Equal(time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)) &&
			p.ListingPrice == 100 && p.SalePrice == 80 &&
			p.DiscountPercentage == 20
	})).Return(nil).Once()

	rec := doJSON(purchaseRouter(customers, purchases), http.MethodPost, "/create_purchase/",
		`{"customerId":11,"purchaseDate":"2025-05-10","listingPrice":100,"salePrice":80}`, "")

	require.Equal(t, http.StatusOK, rec.Code)
	out := envelope(t, rec)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, float64(42), out["purchase_id"])
	customers.AssertExpectations(t)
	purchases.AssertExpectations(t)
}

func TestCreatePurchaseNoDiscountWhenSaleAboveListing(t *testing.T) {
	customers := new(MockCustomerGetter)
	purchases := new(MockPurchaseStore)
	customers.On("GetByID", uint64(11)).Return(model.Customer{ID: 11}, nil).Once()
	purchases.On("Create", mock.MatchedBy(func(p *model.Purchase) bool {
		return p.DiscountPercentage == 0
	})).Return(nil).Once()

	rec := doJSON(purchaseRouter(customers, purchases), http.MethodPost, "/create_purchase/",
		`{"customerId":11,"purchaseDate":"2025-05-10","listingPrice":100,"salePrice":120}`, "")

	require.Equal(t, http.StatusOK, rec.Code)
	purchases.AssertExpectations(t)
}

func TestCreatePurchaseRejections(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setup          func(cg *MockCustomerGetter)
		expectedStatus int
		expectedReason string
	}{
		{
			name:           "missing customer id",
			body:           `{"purchaseDate":"2025-05-10","listingPrice":100,"salePrice":80}`,
			setup:          func(cg *MockCustomerGetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedReason: "Unexpected request!",
		},
		{
			name:           "bad purchase date",
			body:           `{"customerId":11,"purchaseDate":"10.05.2025","listingPrice":100,"salePrice":80}`,
			setup:          func(cg *MockCustomerGetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedReason: "Unexpected request!",
		},
		{
			name: "unknown customer",
			body: `{"customerId":99,"purchaseDate":"2025-05-10","listingPrice":100,"salePrice":80}`,
			setup: func(cg *MockCustomerGetter) {
				cg.On("GetByID", uint64(99)).
					Return(model.Customer{}, repository.ErrCustomerNotFound).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedReason: "Customer not found.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customers := new(MockCustomerGetter)
			purchases := new(MockPurchaseStore)
			tt.setup(customers)

			rec := doJSON(purchaseRouter(customers, purchases), http.MethodPost, "/create_purchase/", tt.body, "")

			assert.Equal(t, tt.expectedStatus, rec.Code)
			out := envelope(t, rec)
			assert.Equal(t, tt.expectedReason, out["unsuccess_reason"])
			purchases.AssertNotCalled(t, "Create")
		})
	}
}

func TestPurchaseSummary(t *testing.T) {
	// Customer A, purchases (100,80) and (200,200) inside the range:
	// 2 purchases, 1 unique customer, revenue 280, discount 20.
	d1 := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	rows := []repository.PurchaseRow{
		{PurchaseID: 1, CustomerID: 11, PurchaseDate: d1, ListingPrice: 100, SalePrice: 80, DiscountPercentage: 20},
		{PurchaseID: 2, CustomerID: 11, PurchaseDate: d2, ListingPrice: 200, SalePrice: 200},
	}

	customers := new(MockCustomerGetter)
	purchases := new(MockPurchaseStore)
	wantFrom := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2025, 5, 31, 23, 59, 59, 0, time.UTC)
	purchases.On("ListBetween", wantFrom, wantTo).Return(rows, nil).Once()

	rec := doJSON(purchaseRouter(customers, purchases), http.MethodPost, "/purchase_summary/",
		`{"beginningDate":"2025-05-01","endingDate":"2025-05-31"}`, "")

	require.Equal(t, http.StatusOK, rec.Code)
	out := envelope(t, rec)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, float64(2), out["total_purchases"])
	assert.Equal(t, float64(1), out["unique_customers"])
	assert.Equal(t, float64(280), out["total_revenue"])
	assert.Equal(t, float64(20), out["total_discount"])

	// The attachment decodes to a readable workbook with two data rows
	// sorted by date ascending.
	raw, err := base64.StdEncoding.DecodeString(out["base64_excel"].(string))
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	cells, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, cells, 3) // header + 2 purchases
	assert.Equal(t, "2025-05-10", cells[1][2])
	assert.Equal(t, "2025-05-12", cells[2][2])

	purchases.AssertExpectations(t)
}

func TestPurchaseSummaryNoData(t *testing.T) {
	customers := new(MockCustomerGetter)
	purchases := new(MockPurchaseStore)
	purchases.On("ListBetween", mock.Anything, mock.Anything).
		Return([]repository.PurchaseRow{}, nil).Once()

	rec := doJSON(purchaseRouter(customers, purchases), http.MethodPost, "/purchase_summary/",
		`{"beginningDate":"2025-01-01","endingDate":"2025-01-31"}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	out := envelope(t, rec)
	assert.Equal(t, "No purchases found in the given date range.", out["unsuccess_reason"])
}

func TestPurchaseSummaryBadDates(t *testing.T) {
	customers := new(MockCustomerGetter)
	purchases := new(MockPurchaseStore)

	rec := doJSON(purchaseRouter(customers, purchases), http.MethodPost, "/purchase_summary/",
		`{"beginningDate":"May 1","endingDate":"2025-01-31"}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	out := envelope(t, rec)
	assert.Equal(t, "Unexpected request!", out["unsuccess_reason"])
	purchases.AssertNotCalled(t, "ListBetween")
}
