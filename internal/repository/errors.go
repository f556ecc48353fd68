// Package repository contains data access logic separated from the HTTP
// handlers. This file defines the sentinel errors shared across the
// repositories so that handlers can map each failure to the right
// response without inspecting driver error strings themselves.
package repository

import "errors"

// ErrUserNotFound is returned when no user row matches a username lookup.
var ErrUserNotFound = errors.New("user not found")

// ErrTokenNotFound is returned when a bearer token has no row in the
// tokens table, i.e. it was never issued by this service.
var ErrTokenNotFound = errors.New("token not found")

// ErrCustomerNotFound is returned when a customer id does not resolve
// to an existing row.
var ErrCustomerNotFound = errors.New("customer not found")

// ErrGsmExists is returned when an insert would violate the unique
// constraint on customers.gsm. The constraint is the actual guarantee;
// the pre-insert existence check only produces this error earlier.
var ErrGsmExists = errors.New("gsm already registered")
