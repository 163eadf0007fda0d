package repositories

import (
	"context"
	"time"

	"github.com/ghuser/grocerylists/services/grocery/domain/models"
)

// ListRepository is the in-memory collection of grocery lists.
// The domain layer owns this interface; infrastructure implements it.
// Implementations are not safe for concurrent use; callers serialize access.
type ListRepository interface {
	// All returns every stored list in storage order.
	All() []*models.GroceryList

	// FindByID returns the list with the given ID or ErrListNotFound.
	FindByID(id string) (*models.GroceryList, error)

	// Insert appends a new list to the collection.
	Insert(list *models.GroceryList)

	// Remove deletes a list and all of its items, returning the removed list.
	// Returns ErrListNotFound if no list has the ID.
	Remove(id string) (*models.GroceryList, error)

	// Collection returns the backing collection for persistence.
	Collection() *models.Collection
}

// ItemRepository manages the items of the lists held by a ListRepository.
// Every method returns ErrListNotFound when the list does not exist.
type ItemRepository interface {
	// List returns the visible items of a list ordered by sortBy. Unknown
	// sort fields keep storage order. The returned items are copies.
	List(listID string, includeChecked bool, sortBy string) ([]*models.Item, error)

	// Add appends a new item at the end of the list.
	// Returns ErrItemAlreadyExists if the name is already used on the list.
	Add(listID string, name models.ItemName, quantity float64, category string, now time.Time) (*models.Item, error)

	// Update applies patch to an item, renumbering positions when the patch
	// moves it. Returns ErrItemNotFound or ErrItemAlreadyExists.
	Update(listID, itemID string, patch models.ItemPatch, now time.Time) (*models.Item, error)

	// Delete removes an item and closes the gap in positions.
	// Returns ErrItemNotFound if the list has no such item.
	Delete(listID, itemID string, now time.Time) (*models.Item, error)
}

// Store is the durable persistence boundary for the whole collection.
type Store interface {
	// Load reads the stored collection. Missing or unreadable storage yields
	// an empty collection, never an error.
	Load(ctx context.Context) *models.Collection

	// Save overwrites durable storage with the full collection.
	Save(ctx context.Context, coll *models.Collection) error
}
