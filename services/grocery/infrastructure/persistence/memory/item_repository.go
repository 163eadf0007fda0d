package memory

import (
	"time"

	"github.com/ghuser/grocerylists/services/grocery/domain"
	"github.com/ghuser/grocerylists/services/grocery/domain/models"
	"github.com/ghuser/grocerylists/services/grocery/domain/repositories"
	domainsvcs "github.com/ghuser/grocerylists/services/grocery/domain/services"
)

// ItemRepository implements repositories.ItemRepository on top of the lists
// held by a ListRepository.
type ItemRepository struct {
	lists repositories.ListRepository
}

// NewItemRepository returns an ItemRepository over lists.
func NewItemRepository(lists repositories.ListRepository) *ItemRepository {
	return &ItemRepository{lists: lists}
}

// List returns copies of the visible items of a list, sorted ascending by sortBy.
func (r *ItemRepository) List(listID string, includeChecked bool, sortBy string) ([]*models.Item, error) {
	list, err := r.lists.FindByID(listID)
	if err != nil {
		return nil, err
	}
	visible := domainsvcs.FilterItems(list.Items, includeChecked)
	for i, item := range visible {
		visible[i] = item.Clone()
	}
	return domainsvcs.SortItems(visible, sortBy, domainsvcs.OrderAsc), nil
}

// Add appends a new item at position count+1.
func (r *ItemRepository) Add(listID string, name models.ItemName, quantity float64, category string, now time.Time) (*models.Item, error) {
	list, err := r.lists.FindByID(listID)
	if err != nil {
		return nil, err
	}
	if err := domainsvcs.EnsureUniqueItemName(list, name, ""); err != nil {
		return nil, err
	}

	item := models.NewItem(name, quantity, category, domainsvcs.NextPosition(list.Items))
	list.Items = append(list.Items, item)
	list.Touch(now)
	return item, nil
}

// Update applies patch to an item. The name check runs before any field is
// written, so a conflicting rename leaves the item untouched.
func (r *ItemRepository) Update(listID, itemID string, patch models.ItemPatch, now time.Time) (*models.Item, error) {
	list, item, _, err := r.find(listID, itemID)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		if err := domainsvcs.EnsureUniqueItemName(list, *patch.Name, itemID); err != nil {
			return nil, err
		}
	}

	patch.Apply(item)
	if patch.Position != nil {
		list.Items = domainsvcs.MoveItem(list.Items, item, *patch.Position)
	}
	list.Touch(now)
	return item, nil
}

// Delete removes an item and renumbers the rest 1..N-1.
func (r *ItemRepository) Delete(listID, itemID string, now time.Time) (*models.Item, error) {
	list, _, idx, err := r.find(listID, itemID)
	if err != nil {
		return nil, err
	}

	rest, removed := domainsvcs.RemoveItem(list.Items, idx)
	list.Items = rest
	list.Touch(now)
	return removed, nil
}

func (r *ItemRepository) find(listID, itemID string) (*models.GroceryList, *models.Item, int, error) {
	list, err := r.lists.FindByID(listID)
	if err != nil {
		return nil, nil, -1, err
	}
	item, idx := list.FindItem(itemID)
	if item == nil {
		return nil, nil, -1, domain.ErrItemNotFound
	}
	return list, item, idx, nil
}
