package models

// Collection is the full set of grocery lists: the unit that is loaded at
// startup and written back after every mutation.
type Collection struct {
	Lists []*GroceryList
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{Lists: []*GroceryList{}}
}
