package domain

import "errors"

// Sentinel errors for the grocery domain. Use errors.Is() to check these.
var (
	// ErrListNotFound indicates no grocery list has the requested ID.
	ErrListNotFound = errors.New("list not found")

	// ErrItemNotFound indicates the list has no item with the requested ID.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemAlreadyExists indicates another item in the same list already uses the name.
	ErrItemAlreadyExists = errors.New("item already exists")

	// ErrInvalidListName indicates the list name violates domain constraints.
	ErrInvalidListName = errors.New("invalid list name")

	// ErrInvalidItemName indicates the item name violates domain constraints.
	ErrInvalidItemName = errors.New("invalid item name")

	// ErrInvalidSortField indicates a sort field that is not valid for the sequence.
	ErrInvalidSortField = errors.New("invalid sort field")

	// ErrPersistence indicates the collection could not be written to durable storage.
	// The in-memory mutation has already been applied when this is returned.
	ErrPersistence = errors.New("persist grocery lists")
)
