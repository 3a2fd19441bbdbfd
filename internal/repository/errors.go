package repository

import "errors"

var (
	// ErrOrderNotFound means no order exists for the given business id.
	ErrOrderNotFound = errors.New("order not found")

	// ErrReservationConflict means the conditional PENDING -> PROCESSING
	// update matched no row: another worker holds the order, or it already
	// reached a terminal state.
	ErrReservationConflict = errors.New("order reservation conflict")

	// ErrDuplicateTransaction means a processed-transaction record already
	// exists for the transaction nsu.
	ErrDuplicateTransaction = errors.New("transaction already processed")
)
