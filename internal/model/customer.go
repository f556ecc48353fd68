package model

import "time"

// Customer is a row in the `customers` table. The GSM number is the
// customer's unique business key; gender and birthday are optional and
// stored as NULL when never supplied.
type Customer struct {
	ID        uint64     // customers.id
	Name      string     // customers.name
	Surname   string     // customers.surname
	Gsm       string     // customers.gsm (unique)
	Gender    *string    // customers.gender (nullable)
	Birthday  *time.Time // customers.birthday (nullable)
	CreatedAt time.Time  // customers.created_at
}
