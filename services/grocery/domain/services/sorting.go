package services

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ghuser/grocerylists/services/grocery/domain/models"
)

// Sort fields understood by the engine.
const (
	SortByName        = "name"
	SortByDateCreated = "date_created"
	SortByItemCount   = "item_count"
	SortByCategory    = "category"
	SortByPosition    = "position"
)

// Sort orders. Anything other than OrderDesc sorts ascending.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Defaults applied by the HTTP layer when the caller omits a sort parameter.
const (
	DefaultListSortField = SortByDateCreated
	DefaultListSortOrder = OrderDesc
	DefaultItemSortField = SortByPosition
)

// ListSortFields and ItemSortFields are the fields a caller may request for
// each kind of sequence.
var (
	ListSortFields = []string{SortByName, SortByDateCreated, SortByItemCount}
	ItemSortFields = []string{SortByName, SortByCategory, SortByPosition}
)

// Comparator is a total order over T returning <0, 0 or >0.
type Comparator[T any] func(a, b T) int

// IsListSortField reports whether field is accepted for sorting lists.
func IsListSortField(field string) bool {
	return slices.Contains(ListSortFields, field)
}

// IsItemSortField reports whether field is accepted for sorting items.
func IsItemSortField(field string) bool {
	return slices.Contains(ItemSortFields, field)
}

// SortLists orders lists in place by field and returns them.
// An unknown field leaves the order untouched.
func SortLists(lists []*models.GroceryList, field, order string) []*models.GroceryList {
	return sortBy(lists, listComparators(newCollator()), field, order)
}

// SortItems orders items in place by field and returns them.
// An unknown field leaves the order untouched.
func SortItems(items []*models.Item, field, order string) []*models.Item {
	return sortBy(items, itemComparators(newCollator()), field, order)
}

// FilterItems returns the items visible for the includeChecked flag. The
// input slice is never modified.
func FilterItems(items []*models.Item, includeChecked bool) []*models.Item {
	out := make([]*models.Item, 0, len(items))
	for _, item := range items {
		if includeChecked || !item.Checked {
			out = append(out, item)
		}
	}
	return out
}

// sortBy stable-sorts ascending with the named comparator, then reverses the
// whole sequence for OrderDesc.
func sortBy[T any](seq []T, comparators map[string]Comparator[T], field, order string) []T {
	compare, ok := comparators[field]
	if !ok {
		return seq
	}
	slices.SortStableFunc(seq, compare)
	if order == OrderDesc {
		slices.Reverse(seq)
	}
	return seq
}

// newCollator returns a root-locale collator. Collators keep internal buffers,
// so each sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.Und)
}

func listComparators(c *collate.Collator) map[string]Comparator[*models.GroceryList] {
	return map[string]Comparator[*models.GroceryList]{
		SortByName: func(a, b *models.GroceryList) int {
			return c.CompareString(a.Name.String(), b.Name.String())
		},
		SortByDateCreated: func(a, b *models.GroceryList) int {
			return compareTimestamps(a.DateCreated, b.DateCreated)
		},
		SortByItemCount: func(a, b *models.GroceryList) int {
			return cmp.Compare(a.ItemCount(), b.ItemCount())
		},
	}
}

func itemComparators(c *collate.Collator) map[string]Comparator[*models.Item] {
	return map[string]Comparator[*models.Item]{
		SortByName: func(a, b *models.Item) int {
			return c.CompareString(a.Name.String(), b.Name.String())
		},
		SortByCategory: func(a, b *models.Item) int {
			aEmpty := strings.TrimSpace(a.Category) == ""
			bEmpty := strings.TrimSpace(b.Category) == ""
			switch {
			case aEmpty && !bEmpty:
				return 1
			case !aEmpty && bEmpty:
				return -1
			}
			return c.CompareString(a.Category, b.Category)
		},
		SortByPosition: comparePosition,
	}
}

// compareTimestamps orders ISO-8601 strings chronologically, falling back to
// plain string order when either side does not parse.
func compareTimestamps(a, b string) int {
	ta, errA := time.Parse(time.RFC3339Nano, a)
	tb, errB := time.Parse(time.RFC3339Nano, b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	return ta.Compare(tb)
}
