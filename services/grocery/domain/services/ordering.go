// Package services contains stateless domain services for the grocery bounded
// context: item ordering, sorting and filtering. They operate purely on domain
// types and never touch storage.
package services

import (
	"cmp"
	"slices"

	"github.com/ghuser/grocerylists/services/grocery/domain/models"
)

// NextPosition returns the position an item appended to items receives.
func NextPosition(items []*models.Item) int {
	return len(items) + 1
}

// sortItemsByPosition stable-sorts items ascending by Position in place.
func sortItemsByPosition(items []*models.Item) {
	slices.SortStableFunc(items, comparePosition)
}

// Renumber assigns positions 1..N following the current slice order.
func Renumber(items []*models.Item) {
	for i, item := range items {
		item.Position = i + 1
	}
}

// ClampPosition bounds a requested position to [1, n].
func ClampPosition(position, n int) int {
	return max(1, min(position, n))
}

// MoveItem returns items with target placed at the requested 1-based
// position and every position renumbered to 1..N.
//
// The remaining items keep their relative order by current position, whatever
// values those positions held before. Positions below 1 insert at the front and
// positions beyond the item count insert at the end. target must be one of items.
func MoveItem(items []*models.Item, target *models.Item, position int) []*models.Item {
	rest := make([]*models.Item, 0, len(items))
	for _, item := range items {
		if item != target {
			rest = append(rest, item)
		}
	}
	sortItemsByPosition(rest)

	idx := ClampPosition(position, len(rest)+1) - 1
	moved := slices.Insert(rest, idx, target)
	Renumber(moved)
	return moved
}

// RemoveItem returns items without the item at index, with the survivors
// renumbered 1..N-1 in their current position order, plus the removed item.
func RemoveItem(items []*models.Item, index int) ([]*models.Item, *models.Item) {
	removed := items[index]
	rest := slices.Delete(slices.Clone(items), index, index+1)
	sortItemsByPosition(rest)
	Renumber(rest)
	return rest, removed
}

func comparePosition(a, b *models.Item) int {
	return cmp.Compare(a.Position, b.Position)
}
