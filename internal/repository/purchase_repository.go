package repository

import (
	"context"
	"database/sql"
	"time"

	"crmsales/internal/model"
)

// PurchaseRepo writes purchase rows and reads them back for reporting.
// Purchases are immutable: there is no update or delete query here.
type PurchaseRepo struct{ DB *sql.DB }

func NewPurchaseRepo(db *sql.DB) *PurchaseRepo { return &PurchaseRepo{DB: db} }

// PurchaseRow is a purchase joined to its customer's current birthday
// and gender, as needed by the summary export. The join happens at
// query time, so edits to a customer show up in later reports.
type PurchaseRow struct {
	PurchaseID         uint64
	CustomerID         uint64
	PurchaseDate       time.Time
	ListingPrice       float64
	SalePrice          float64
	DiscountPercentage float64
	Birthday           *time.Time
	Gender             *string
}

// Create inserts a purchase and populates its ID. DiscountPercentage is
// expected to be computed by the caller before the insert.
func (r *PurchaseRepo) Create(ctx context.Context, p *model.Purchase) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO purchases (customer_id, purchase_date, listing_price, sale_price, discount_percentage) VALUES (?,?,?,?,?)",
		p.CustomerID, p.PurchaseDate, p.ListingPrice, p.SalePrice, p.DiscountPercentage)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// ListBetween returns all purchases with purchase_date in [from, to]
// inclusive, joined to customer attributes and sorted ascending by
// purchase date.
func (r *PurchaseRepo) ListBetween(ctx context.Context, from, to time.Time) ([]PurchaseRow, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT p.id, p.customer_id, p.purchase_date, p.listing_price, p.sale_price, p.discount_percentage,
		        c.birthday, c.gender
		 FROM purchases p
		 JOIN customers c ON c.id = p.customer_id
		 WHERE p.purchase_date >= ? AND p.purchase_date <= ?
		 ORDER BY p.purchase_date ASC`,
		from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PurchaseRow
	for rows.Next() {
		var pr PurchaseRow
		if err := rows.Scan(&pr.PurchaseID, &pr.CustomerID, &pr.PurchaseDate,
			&pr.ListingPrice, &pr.SalePrice, &pr.DiscountPercentage,
			&pr.Birthday, &pr.Gender); err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	return out, rows.Err()
}
