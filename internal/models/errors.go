package models

import "errors"

var (
	// ErrInvalidAmount rejects deposits of zero or less.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrCustomerNotFound is returned for lookups of unknown customer ids.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrDuplicateCustomer is returned when registering an id that exists.
	ErrDuplicateCustomer = errors.New("customer already exists")

	// ErrNoAccount is returned when a customer has no account yet.
	ErrNoAccount = errors.New("customer has no account")

	// ErrAccountExists is returned when opening a second account for a customer.
	ErrAccountExists = errors.New("customer already has an account")

	// ErrMissingField is returned when a required registration field is empty.
	ErrMissingField = errors.New("required field is missing")

	// ErrEmptyBatch is returned when no entry in a batch validates.
	ErrEmptyBatch = errors.New("no valid entries in batch")
)
