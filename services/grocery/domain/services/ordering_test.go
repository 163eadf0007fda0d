package services

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/ghuser/grocerylists/services/grocery/domain/models"
)

func makeItems(names ...string) []*models.Item {
	items := make([]*models.Item, len(names))
	for i, n := range names {
		items[i] = &models.Item{ID: n, Name: models.ItemName(n), Position: i + 1}
	}
	return items
}

func ids(items []*models.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

// assertDense checks that sorting by position yields exactly 1..N.
func assertDense(t *testing.T, items []*models.Item) {
	t.Helper()
	sorted := slices.Clone(items)
	sortItemsByPosition(sorted)
	for i, item := range sorted {
		if item.Position != i+1 {
			t.Fatalf("positions not dense: got %v", positions(sorted))
		}
	}
}

func positions(items []*models.Item) []int {
	out := make([]int, len(items))
	for i, item := range items {
		out[i] = item.Position
	}
	return out
}

func TestNextPosition(t *testing.T) {
	if got := NextPosition(nil); got != 1 {
		t.Fatalf("empty list: expected 1, got %d", got)
	}
	if got := NextPosition(makeItems("a", "b", "c")); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
}

func TestMoveItem(t *testing.T) {
	tests := []struct {
		name     string
		from     int // 0-based index of the item to move
		position int
		want     []string
	}{
		{"last to second", 3, 2, []string{"a", "d", "b", "c"}},
		{"first to last", 0, 4, []string{"b", "c", "d", "a"}},
		{"same position", 1, 2, []string{"a", "b", "c", "d"}},
		{"zero clamps to front", 2, 0, []string{"c", "a", "b", "d"}},
		{"negative clamps to front", 3, -5, []string{"d", "a", "b", "c"}},
		{"beyond count clamps to end", 0, 99, []string{"b", "c", "d", "a"}},
		{"exactly count goes to end", 1, 4, []string{"a", "c", "d", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := makeItems("a", "b", "c", "d")
			got := MoveItem(items, items[tt.from], tt.position)

			if !slices.Equal(ids(got), tt.want) {
				t.Fatalf("order: got %v, want %v", ids(got), tt.want)
			}
			if !slices.Equal(positions(got), []int{1, 2, 3, 4}) {
				t.Fatalf("positions: got %v", positions(got))
			}
		})
	}
}

func TestMoveItem_RepairsInvalidPositions(t *testing.T) {
	items := []*models.Item{
		{ID: "x", Position: 7},
		{ID: "y", Position: 0},
		{ID: "z", Position: 7},
		{ID: "w", Position: 3},
	}
	got := MoveItem(items, items[3], 1)

	// Remaining are stable-sorted by position (y=0, x=7, z=7) behind w.
	if want := []string{"w", "y", "x", "z"}; !slices.Equal(ids(got), want) {
		t.Fatalf("order: got %v, want %v", ids(got), want)
	}
	assertDense(t, got)
}

func TestMoveItem_SingleItem(t *testing.T) {
	items := makeItems("only")
	got := MoveItem(items, items[0], 3)
	if len(got) != 1 || got[0].Position != 1 {
		t.Fatalf("expected single item at position 1, got %v", positions(got))
	}
}

func TestRemoveItem(t *testing.T) {
	items := makeItems("a", "b", "c", "d")
	rest, removed := RemoveItem(items, 1)

	if removed.ID != "b" {
		t.Fatalf("expected to remove b, got %s", removed.ID)
	}
	if want := []string{"a", "c", "d"}; !slices.Equal(ids(rest), want) {
		t.Fatalf("order: got %v, want %v", ids(rest), want)
	}
	if !slices.Equal(positions(rest), []int{1, 2, 3}) {
		t.Fatalf("positions: got %v", positions(rest))
	}
	if len(items) != 4 || items[1].ID != "b" {
		t.Fatal("RemoveItem must not modify the input slice")
	}
}

func TestRemoveItem_LastItem(t *testing.T) {
	items := makeItems("a")
	rest, removed := RemoveItem(items, 0)
	if removed.ID != "a" || len(rest) != 0 {
		t.Fatalf("expected empty remainder, got %v", ids(rest))
	}
}

// TestPositionsStayDense runs random add/move/remove sequences and checks the
// 1..N invariant after every step.
func TestPositionsStayDense(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var items []*models.Item
	next := 0

	for step := 0; step < 500; step++ {
		switch op := rng.Intn(3); {
		case op == 0 || len(items) == 0:
			next++
			items = append(items, &models.Item{ID: fmt.Sprint(next), Position: NextPosition(items)})
		case op == 1:
			target := items[rng.Intn(len(items))]
			items = MoveItem(items, target, rng.Intn(len(items)+4)-2)
		default:
			items, _ = RemoveItem(items, rng.Intn(len(items)))
		}
		assertDense(t, items)
	}
}

func TestClampPosition(t *testing.T) {
	tests := []struct{ in, n, want int }{
		{-1, 3, 1}, {0, 3, 1}, {1, 3, 1}, {2, 3, 2}, {3, 3, 3}, {4, 3, 3},
	}
	for _, tt := range tests {
		if got := ClampPosition(tt.in, tt.n); got != tt.want {
			t.Errorf("ClampPosition(%d, %d) = %d, want %d", tt.in, tt.n, got, tt.want)
		}
	}
}
