package models

import (
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the ISO-8601 form used for list timestamps. Values in
// this layout sort lexicographically in chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp formats t in TimestampLayout after converting it to UTC.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// GroceryList is the aggregate root: a named list owning its items.
// Items are kept in position order; Position is authoritative.
type GroceryList struct {
	ID          string
	Name        ListName
	DateCreated string
	DateUpdated string
	Items       []*Item
}

// NewGroceryList constructs an empty list whose timestamps are both now.
func NewGroceryList(name ListName, now time.Time) *GroceryList {
	ts := Timestamp(now)
	return &GroceryList{
		ID:          uuid.NewString(),
		Name:        name,
		DateCreated: ts,
		DateUpdated: ts,
		Items:       []*Item{},
	}
}

// Touch records an item mutation at now. DateUpdated never moves before
// DateCreated, even when the clock goes backwards.
func (l *GroceryList) Touch(now time.Time) {
	ts := Timestamp(now)
	if ts < l.DateCreated {
		ts = l.DateCreated
	}
	l.DateUpdated = ts
}

// FindItem returns the item with the given ID and its index in Items,
// or (nil, -1) when absent.
func (l *GroceryList) FindItem(id string) (*Item, int) {
	for i, item := range l.Items {
		if item.ID == id {
			return item, i
		}
	}
	return nil, -1
}

// HasItemNamed reports whether an item other than exceptID already uses name.
// Pass an empty exceptID to check against every item.
func (l *GroceryList) HasItemNamed(name ItemName, exceptID string) bool {
	for _, item := range l.Items {
		if item.Name == name && item.ID != exceptID {
			return true
		}
	}
	return false
}

// ItemCount returns the number of items on the list.
func (l *GroceryList) ItemCount() int {
	return len(l.Items)
}

// Clone returns a deep copy of the list, items included.
func (l *GroceryList) Clone() *GroceryList {
	c := *l
	c.Items = make([]*Item, len(l.Items))
	for i, item := range l.Items {
		c.Items[i] = item.Clone()
	}
	return &c
}
