package models

import "github.com/google/uuid"

// DefaultQuantity is applied when an item is created without a quantity.
const DefaultQuantity = 1

// Item is a line on exactly one grocery list.
type Item struct {
	ID       string
	Name     ItemName
	Quantity float64
	Category string
	Position int // 1-based rank inside the owning list
	Checked  bool
}

// NewItem constructs an unchecked Item with a generated ID. A zero quantity
// is replaced with DefaultQuantity.
func NewItem(name ItemName, quantity float64, category string, position int) *Item {
	if quantity == 0 {
		quantity = DefaultQuantity
	}
	return &Item{
		ID:       uuid.NewString(),
		Name:     name,
		Quantity: quantity,
		Category: category,
		Position: position,
	}
}

// Clone returns a copy of the item that shares no memory with the receiver.
func (i *Item) Clone() *Item {
	c := *i
	return &c
}

// ItemPatch carries the whitelisted fields of an item update. A nil field
// leaves the current value untouched.
type ItemPatch struct {
	Name     *ItemName
	Quantity *float64
	Category *string
	Position *int
	Checked  *bool
}

// Apply copies every non-position field of the patch onto item. Position is
// handled by the owning list because moving one item renumbers its siblings.
func (p ItemPatch) Apply(item *Item) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Checked != nil {
		item.Checked = *p.Checked
	}
}
