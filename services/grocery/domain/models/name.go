package models

import "errors"

// ListName is a value object representing a valid grocery list name.
type ListName string

// ItemName is a value object representing a valid item name. Item names are
// compared byte-for-byte, so "Milk" and "milk" are different names.
type ItemName string

// NewListName constructs a ListName or returns an error if s is empty.
func NewListName(s string) (ListName, error) {
	if s == "" {
		return "", errors.New("name is required")
	}
	return ListName(s), nil
}

// NewItemName constructs an ItemName or returns an error if s is empty.
func NewItemName(s string) (ItemName, error) {
	if s == "" {
		return "", errors.New("item name is required")
	}
	return ItemName(s), nil
}

// String returns the underlying string value.
func (n ListName) String() string {
	return string(n)
}

// String returns the underlying string value.
func (n ItemName) String() string {
	return string(n)
}
