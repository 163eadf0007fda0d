// Package memory implements the grocery repositories over an in-memory
// models.Collection. Durability is the caller's concern.
package memory

import (
	"slices"

	"github.com/ghuser/grocerylists/services/grocery/domain"
	"github.com/ghuser/grocerylists/services/grocery/domain/models"
)

// ListRepository implements repositories.ListRepository.
type ListRepository struct {
	coll *models.Collection
}

// NewListRepository returns a ListRepository owning coll. A nil coll starts empty.
func NewListRepository(coll *models.Collection) *ListRepository {
	if coll == nil {
		coll = models.NewCollection()
	}
	return &ListRepository{coll: coll}
}

// All returns every stored list in storage order.
func (r *ListRepository) All() []*models.GroceryList {
	return r.coll.Lists
}

// FindByID returns the list with the given ID or ErrListNotFound.
func (r *ListRepository) FindByID(id string) (*models.GroceryList, error) {
	if i := r.indexOf(id); i >= 0 {
		return r.coll.Lists[i], nil
	}
	return nil, domain.ErrListNotFound
}

// Insert appends a new list to the collection.
func (r *ListRepository) Insert(list *models.GroceryList) {
	r.coll.Lists = append(r.coll.Lists, list)
}

// Remove deletes a list together with its items.
func (r *ListRepository) Remove(id string) (*models.GroceryList, error) {
	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrListNotFound
	}
	removed := r.coll.Lists[i]
	r.coll.Lists = slices.Delete(r.coll.Lists, i, i+1)
	return removed, nil
}

// Collection returns the backing collection.
func (r *ListRepository) Collection() *models.Collection {
	return r.coll
}

func (r *ListRepository) indexOf(id string) int {
	return slices.IndexFunc(r.coll.Lists, func(l *models.GroceryList) bool {
		return l.ID == id
	})
}
