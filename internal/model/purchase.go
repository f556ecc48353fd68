package model

import "time"

// Purchase is a row in the `purchases` table. Rows are immutable once
// inserted; there is no update or delete path. DiscountPercentage is
// derived from the two prices at insert time.
type Purchase struct {
	ID                 uint64    // purchases.id
	CustomerID         uint64    // purchases.customer_id
	PurchaseDate       time.Time // purchases.purchase_date
	ListingPrice       float64   // purchases.listing_price
	SalePrice          float64   // purchases.sale_price
	DiscountPercentage float64   // purchases.discount_percentage
	CreatedAt          time.Time // purchases.created_at
}

// DiscountPercentage computes the discount implied by a listing and sale
// price. Selling at or above listing means no discount; otherwise the
// result is the percentage knocked off the listing price, in [0, 100)
// for any 0 <= sale <= listing.
func DiscountPercentage(listing, sale float64) float64 {
	if sale >= listing {
		return 0
	}
	return (listing - sale) / listing * 100
}
