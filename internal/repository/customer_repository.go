package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"crmsales/internal/model"
)

// CustomerRepo encapsulates all database queries related to customers.
type CustomerRepo struct{ DB *sql.DB }

func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{DB: db} }

// CustomerUpdate carries the fields of a partial update. Nil pointers
// mean "not supplied, leave untouched"; a non-nil pointer is applied
// even when it points at an empty string.
type CustomerUpdate struct {
	Name     *string
	Surname  *string
	Gsm      *string
	Gender   *string
	Birthday *time.Time
}

// Create inserts a new customer. On success the ID field is populated
// with the auto-generated value. A duplicate GSM number surfaces as
// ErrGsmExists whether it is caught by the fast-path existence check in
// the handler or by the unique constraint here.
func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO customers (name, surname, gsm, gender, birthday) VALUES (?,?,?,?,?)",
		c.Name, c.Surname, c.Gsm, c.Gender, c.Birthday)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrGsmExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// GetByID fetches a customer by id, returning ErrCustomerNotFound when
// no row matches.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (model.Customer, error) {
	var c model.Customer
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, surname, gsm, gender, birthday, created_at FROM customers WHERE id=? LIMIT 1",
		id).Scan(&c.ID, &c.Name, &c.Surname, &c.Gsm, &c.Gender, &c.Birthday, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Customer{}, ErrCustomerNotFound
	}
	return c, err
}

// GsmExists reports whether any customer already holds the given GSM
// number. This is only the user-facing fast path; the unique constraint
// on customers.gsm remains the guarantee under concurrent inserts.
func (r *CustomerRepo) GsmExists(ctx context.Context, gsm string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM customers WHERE gsm=? LIMIT 1", gsm).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Update applies a partial update to an existing customer. Only the
// supplied fields appear in the SET clause. ErrCustomerNotFound is
// returned when the id is unknown, ErrGsmExists when a supplied GSM
// collides with another customer. Calling Update with no fields set is
// a no-op that still verifies the customer exists.
func (r *CustomerRepo) Update(ctx context.Context, id uint64, u CustomerUpdate) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}

	set := make([]string, 0, 5)
	args := make([]interface{}, 0, 6)
	if u.Name != nil {
		set = append(set, "name=?")
		args = append(args, *u.Name)
	}
	if u.Surname != nil {
		set = append(set, "surname=?")
		args = append(args, *u.Surname)
	}
	if u.Gsm != nil {
		set = append(set, "gsm=?")
		args = append(args, *u.Gsm)
	}
	if u.Gender != nil {
		set = append(set, "gender=?")
		args = append(args, *u.Gender)
	}
	if u.Birthday != nil {
		set = append(set, "birthday=?")
		args = append(args, *u.Birthday)
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)

	_, err := r.DB.ExecContext(ctx,
		"UPDATE customers SET "+strings.Join(set, ", ")+" WHERE id=?", args...)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrGsmExists
	}
	return err
}
