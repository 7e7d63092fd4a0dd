package storage

import "errors"

// ErrNotFound is returned when a user or payment id is unknown.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists is returned when creating a user whose id is already present.
var ErrAlreadyExists = errors.New("record already exists")

// ErrInvalidTransition is returned when a payment is not in the expected state, e.g., confirming a payment that has already left PENDING.
var ErrInvalidTransition = errors.New("payment not in a transitionable state")

// ErrInsufficientFunds is returned when an operation would drive a balance or coin counter negative.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrLimitExceeded is returned when an amount falls outside a configured limit, e.g., the daily withdrawal cap or a method's min/max.
var ErrLimitExceeded = errors.New("limit exceeded")

// ErrPersistenceFailure is returned when the write-through to durable storage failed.
// The in-memory state has been rolled back; callers should retry the whole operation.
var ErrPersistenceFailure = errors.New("persistence write-through failed")
