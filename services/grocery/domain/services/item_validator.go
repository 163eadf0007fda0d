package services

import (
	"fmt"

	"github.com/ghuser/grocerylists/services/grocery/domain"
	"github.com/ghuser/grocerylists/services/grocery/domain/models"
)

// EnsureUniqueItemName returns ErrItemAlreadyExists when another item on list
// (any item but exceptID) already uses name. Pass an empty exceptID on create.
func EnsureUniqueItemName(list *models.GroceryList, name models.ItemName, exceptID string) error {
	if list.HasItemNamed(name, exceptID) {
		return fmt.Errorf("%w: item with name '%s' already exists in the list", domain.ErrItemAlreadyExists, name)
	}
	return nil
}

// ValidateItemSortField returns ErrInvalidSortField unless field can sort items.
func ValidateItemSortField(field string) error {
	if !IsItemSortField(field) {
		return fmt.Errorf("%w: sort_items_by must be one of %v", domain.ErrInvalidSortField, ItemSortFields)
	}
	return nil
}
