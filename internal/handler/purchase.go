package handler

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"crmsales/internal/model"
	"crmsales/internal/queue"
	"crmsales/internal/report"
	"crmsales/internal/repository"
	queue_publisher "crmsales/internal/service"
)

// CustomerGetter resolves a customer id before a purchase is accepted.
type CustomerGetter interface {
	GetByID(ctx context.Context, id uint64) (model.Customer, error)
}

// PurchaseStore writes purchase rows and reads them back for reporting.
type PurchaseStore interface {
	Create(ctx context.Context, p *model.Purchase) error
	ListBetween(ctx context.Context, from, to time.Time) ([]repository.PurchaseRow, error)
}

// PurchaseHandler implements purchase recording and the summary report.
type PurchaseHandler struct {
	Customers CustomerGetter
	Purchases PurchaseStore
}

func NewPurchaseHandler(cg CustomerGetter, ps PurchaseStore) *PurchaseHandler {
	return &PurchaseHandler{Customers: cg, Purchases: ps}
}

type createPurchaseReq struct {
	CustomerID   uint64  `json:"customerId"`
	PurchaseDate string  `json:"purchaseDate"`
	ListingPrice float64 `json:"listingPrice"`
	SalePrice    float64 `json:"salePrice"`
}

type summaryReq struct {
	BeginningDate string `json:"beginningDate"`
	EndingDate    string `json:"endingDate"`
}

// Create handles POST /create_purchase/. The referenced customer must
// exist; the discount percentage is derived from the two prices and the
// row is immutable once inserted.
func (h *PurchaseHandler) Create(c echo.Context) error {
	var req createPurchaseReq
	if err := c.Bind(&req); err != nil || req.CustomerID == 0 {
		return fail(c, http.StatusBadRequest, reasonUnexpected)
	}
	date, err := time.Parse(dateLayout, req.PurchaseDate)
	if err != nil {
		return fail(c, http.StatusBadRequest, reasonUnexpected)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Customers.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return fail(c, http.StatusBadRequest, "Customer not found.")
		}
		return fail(c, http.StatusInternalServerError, reasonStorage)
	}

	p := &model.Purchase{
		CustomerID:         req.CustomerID,
		PurchaseDate:       date,
		ListingPrice:       req.ListingPrice,
		SalePrice:          req.SalePrice,
		DiscountPercentage: model.DiscountPercentage(req.ListingPrice, req.SalePrice),
	}
	if err := h.Purchases.Create(ctx, p); err != nil {
		return fail(c, http.StatusInternalServerError, reasonStorage)
	}

	// Best effort: the receipt trail must never fail the sale.
	go func(ev queue.PurchaseRecordedEvent) {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishPurchaseRecorded(pubCtx, ev)
	}(queue.PurchaseRecordedEvent{
		PurchaseID:         p.ID,
		CustomerID:         p.CustomerID,
		PurchaseDate:       p.PurchaseDate.Format(dateLayout),
		ListingPrice:       p.ListingPrice,
		SalePrice:          p.SalePrice,
		DiscountPercentage: p.DiscountPercentage,
		RecordedAt:         time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"purchase_id": p.ID,
	})
}

// Summary handles POST /purchase_summary/. It aggregates all purchases
// in the inclusive date range and attaches the per-purchase export as a
// base64-encoded .xlsx workbook.
func (h *PurchaseHandler) Summary(c echo.Context) error {
	var req summaryReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, reasonUnexpected)
	}
	begin, err := time.Parse(dateLayout, req.BeginningDate)
	if err != nil {
		return fail(c, http.StatusBadRequest, reasonUnexpected)
	}
	end, err := time.Parse(dateLayout, req.EndingDate)
	if err != nil {
		return fail(c, http.StatusBadRequest, reasonUnexpected)
	}
	// The ending date is inclusive: stretch it to the last second of the day.
	end = end.Add(23*time.Hour + 59*time.Minute + 59*time.Second)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Purchases.ListBetween(ctx, begin, end)
	if err != nil {
		return fail(c, http.StatusInternalServerError, reasonStorage)
	}
	if len(rows) == 0 {
		return fail(c, http.StatusBadRequest, "No purchases found in the given date range.")
	}

	sum := report.Summarize(rows)
	xlsx, err := report.RenderExcel(rows)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Could not generate report file.")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":          true,
		"total_purchases":  sum.TotalPurchases,
		"unique_customers": sum.UniqueCustomers,
		"total_revenue":    sum.TotalRevenue,
		"total_discount":   sum.TotalDiscount,
		"base64_excel":     base64.StdEncoding.EncodeToString(xlsx),
	})
}
