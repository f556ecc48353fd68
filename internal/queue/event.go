// Package queue defines message payloads exchanged over the message broker.
package queue

// PurchaseRecordedEvent is published when a purchase is successfully
// inserted. It carries enough for downstream consumers (receipt trail,
// analytics) without querying the primary database.
type PurchaseRecordedEvent struct {
	PurchaseID         uint64  `json:"purchase_id"`
	CustomerID         uint64  `json:"customer_id"`
	PurchaseDate       string  `json:"purchase_date"`
	ListingPrice       float64 `json:"listing_price"`
	SalePrice          float64 `json:"sale_price"`
	DiscountPercentage float64 `json:"discount_percentage"`
	RecordedAt         string  `json:"recorded_at"`
}
