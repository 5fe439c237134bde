package orderbookv1

import "errors"

var (
	// ErrDuplicateOrder is returned when inserting an order id that is already on the book.
	ErrDuplicateOrder = errors.New("order already on book")
	// ErrOrderNotFound is returned when an order id is not at the given side and price.
	ErrOrderNotFound = errors.New("order not found on book")
	// ErrInvalidQuantity is returned for non-positive remaining quantities.
	ErrInvalidQuantity = errors.New("remaining quantity must be positive")
	// ErrInvalidPrice is returned for non-positive prices.
	ErrInvalidPrice = errors.New("price must be positive")
	// ErrInvalidSide is returned for an unknown side.
	ErrInvalidSide = errors.New("invalid side")
	// ErrUnknownSymbol is returned by the manager for a symbol without a book.
	ErrUnknownSymbol = errors.New("no book for symbol")
)
