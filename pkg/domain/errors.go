package domain

import "errors"

// ErrNoOperands is returned when a query is made without any operands.
var ErrNoOperands = errors.New("no operands")

// ErrTooManyOperands is returned when a query exceeds the configured operand limit.
var ErrTooManyOperands = errors.New("too many operands")

// ErrResultNotFound is returned when a key cannot be found in a result cache.
var ErrResultNotFound = errors.New("result not found")
