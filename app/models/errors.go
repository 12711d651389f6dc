package models

import "errors"

var (
	// ErrOrderNotFound is returned when no order matches the given id.
	ErrOrderNotFound = errors.New("order not found")

	// ErrProductNotFound is returned when no product matches the given id.
	ErrProductNotFound = errors.New("product not found")

	// ErrCategoryNotFound is returned when no category matches the given id.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrInvalidStatus is returned for a status outside the pipeline.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidTransition is returned when a status change skips or reverses the pipeline.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrTotalOverflow is returned when an order total does not fit in int64.
	ErrTotalOverflow = errors.New("order total is too large")
)
