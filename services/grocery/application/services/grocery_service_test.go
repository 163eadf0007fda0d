package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/go-cmp/cmp"

	"github.com/ghuser/grocerylists/pkg/config"
	"github.com/ghuser/grocerylists/pkg/logger"
	"github.com/ghuser/grocerylists/services/grocery/domain"
	groceryevents "github.com/ghuser/grocerylists/services/grocery/domain/events"
	"github.com/ghuser/grocerylists/services/grocery/domain/models"
	"github.com/ghuser/grocerylists/services/grocery/infrastructure/persistence/memory"
)

type fakeStore struct {
	mu    sync.Mutex
	err   error
	saves int
}

func (s *fakeStore) Load(context.Context) *models.Collection { return models.NewCollection() }

func (s *fakeStore) Save(_ context.Context, _ *models.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	return s.err
}

func (s *fakeStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

type fakePublisher struct {
	mu     sync.Mutex
	events []groceryevents.ListChangedEvent
}

func (p *fakePublisher) Publish(_ context.Context, topic string, msgs ...*message.Message) error {
	if topic != groceryevents.TopicListChanged {
		return errors.New("unexpected topic " + topic)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, msg := range msgs {
		var evt groceryevents.ListChangedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}
		p.events = append(p.events, evt)
	}
	return nil
}

func (p *fakePublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, evt := range p.events {
		out[i] = evt.Action
	}
	return out
}

func newTestService(t *testing.T) (*GroceryService, *fakeStore, *fakePublisher) {
	t.Helper()
	lists := memory.NewListRepository(nil)
	items := memory.NewItemRepository(lists)
	store := &fakeStore{}
	pub := &fakePublisher{}
	log := logger.New(&config.Config{LogLevel: "error"})

	svc := NewGroceryService(lists, items, store, pub, log, nil)
	clock := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc, store, pub
}

func TestGroceryService_Scenario(t *testing.T) {
	ctx := context.Background()
	svc, store, pub := newTestService(t)

	list, err := svc.CreateList(ctx, "Weekly")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	milk, err := svc.AddItem(ctx, list.ID, "Milk", 0, "")
	if err != nil {
		t.Fatalf("add milk: %v", err)
	}
	if milk.Quantity != 1 || milk.Position != 1 || milk.Checked {
		t.Fatalf("unexpected new item: %+v", milk)
	}

	if _, err := svc.AddItem(ctx, list.ID, "Milk", 2, "dairy"); !errors.Is(err, domain.ErrItemAlreadyExists) {
		t.Fatalf("expected ErrItemAlreadyExists, got %v", err)
	}

	if _, err := svc.DeleteItem(ctx, list.ID, milk.ID); err != nil {
		t.Fatalf("delete milk: %v", err)
	}
	got, err := svc.GetList(ctx, list.ID, true, "position")
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	if len(got.Items) != 0 {
		t.Fatalf("expected empty list, got %d items", len(got.Items))
	}

	if store.saveCount() != 3 {
		t.Errorf("expected 3 saves, got %d", store.saveCount())
	}
	want := []string{
		groceryevents.ActionListCreated,
		groceryevents.ActionItemAdded,
		groceryevents.ActionItemDeleted,
	}
	if diff := cmp.Diff(want, pub.actions()); diff != "" {
		t.Errorf("published actions mismatch (-want +got):\n%s", diff)
	}
}

func TestGroceryService_Validation(t *testing.T) {
	ctx := context.Background()
	svc, store, pub := newTestService(t)

	tests := []struct {
		name    string
		call    func() error
		wantErr error
	}{
		{"empty list name", func() error { _, err := svc.CreateList(ctx, ""); return err }, domain.ErrInvalidListName},
		{"empty item name", func() error { _, err := svc.AddItem(ctx, "x", "", 1, ""); return err }, domain.ErrInvalidItemName},
		{"add to missing list", func() error { _, err := svc.AddItem(ctx, "x", "Milk", 1, ""); return err }, domain.ErrListNotFound},
		{"delete missing list", func() error { _, err := svc.DeleteList(ctx, "x"); return err }, domain.ErrListNotFound},
		{"update missing list", func() error { _, err := svc.UpdateItem(ctx, "x", "y", models.ItemPatch{}); return err }, domain.ErrListNotFound},
		{"sort checked before lookup", func() error { _, err := svc.GetList(ctx, "missing", true, "checked"); return err }, domain.ErrInvalidSortField},
		{"get missing list", func() error { _, err := svc.GetList(ctx, "missing", true, "name"); return err }, domain.ErrListNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if store.saveCount() != 0 {
		t.Errorf("rejected operations must not save, got %d saves", store.saveCount())
	}
	if len(pub.actions()) != 0 {
		t.Errorf("rejected operations must not publish, got %v", pub.actions())
	}
}

func TestGroceryService_PersistFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	svc, store, pub := newTestService(t)

	list, err := svc.CreateList(ctx, "Weekly")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}

	store.err = errors.New("disk full")
	_, err = svc.AddItem(ctx, list.ID, "Milk", 1, "")
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}

	got, err := svc.GetList(ctx, list.ID, true, "position")
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Name != "Milk" {
		t.Fatalf("expected the in-memory add to remain, got %+v", got.Items)
	}
	if diff := cmp.Diff([]string{groceryevents.ActionListCreated}, pub.actions()); diff != "" {
		t.Errorf("failed commits must not publish (-want +got):\n%s", diff)
	}
}

func TestGroceryService_UpdateItem(t *testing.T) {
	ctx := context.Background()
	svc, _, pub := newTestService(t)

	list, _ := svc.CreateList(ctx, "Weekly")
	var ids []string
	for _, name := range []string{"a", "b", "c", "d"} {
		item, err := svc.AddItem(ctx, list.ID, name, 1, "")
		if err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
		ids = append(ids, item.ID)
	}

	pos := 2
	checked := true
	moved, err := svc.UpdateItem(ctx, list.ID, ids[3], models.ItemPatch{Position: &pos, Checked: &checked})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if moved.Position != 2 || !moved.Checked {
		t.Fatalf("unexpected moved item: %+v", moved)
	}

	t.Run("positions renumbered", func(t *testing.T) {
		got, _ := svc.GetList(ctx, list.ID, true, "position")
		names := make([]string, len(got.Items))
		for i, item := range got.Items {
			names[i] = item.Name.String()
		}
		if diff := cmp.Diff([]string{"a", "d", "b", "c"}, names); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("checked items hidden", func(t *testing.T) {
		got, _ := svc.GetList(ctx, list.ID, false, "position")
		if len(got.Items) != 3 {
			t.Fatalf("expected 3 unchecked items, got %d", len(got.Items))
		}
	})

	t.Run("rename onto sibling conflicts", func(t *testing.T) {
		name := models.ItemName("a")
		_, err := svc.UpdateItem(ctx, list.ID, ids[1], models.ItemPatch{Name: &name})
		if !errors.Is(err, domain.ErrItemAlreadyExists) {
			t.Fatalf("expected ErrItemAlreadyExists, got %v", err)
		}
	})

	t.Run("event carries item id", func(t *testing.T) {
		pub.mu.Lock()
		last := pub.events[len(pub.events)-1]
		pub.mu.Unlock()
		if last.Action != groceryevents.ActionItemUpdated || last.ItemID != ids[3] || last.ItemCount != 4 {
			t.Fatalf("unexpected event: %+v", last)
		}
	})
}

func TestGroceryService_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	list, _ := svc.CreateList(ctx, "Weekly")
	item, _ := svc.AddItem(ctx, list.ID, "Milk", 1, "")

	list.Name = "changed"
	item.Name = "changed"
	lists := svc.ListLists(ctx, "name", "asc")
	lists[0].Items = nil

	got, _ := svc.GetList(ctx, list.ID, true, "position")
	if got.Name != "Weekly" {
		t.Errorf("list name leaked: %q", got.Name)
	}
	if len(got.Items) != 1 || got.Items[0].Name != "Milk" {
		t.Errorf("items leaked: %+v", got.Items)
	}
}

func TestGroceryService_DateUpdatedAdvances(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	list, _ := svc.CreateList(ctx, "Weekly")
	if _, err := svc.AddItem(ctx, list.ID, "Milk", 1, ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	got, _ := svc.GetList(ctx, list.ID, true, "position")
	if got.DateCreated != list.DateCreated {
		t.Errorf("date_created changed: %q -> %q", list.DateCreated, got.DateCreated)
	}
	if got.DateUpdated <= got.DateCreated {
		t.Errorf("expected date_updated after date_created, got %q <= %q", got.DateUpdated, got.DateCreated)
	}
}

func TestGroceryService_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	svc.now = time.Now

	list, _ := svc.CreateList(ctx, "Weekly")

	const n = 50
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := string(rune('A'+i%26)) + string(rune('a'+i/26))
			if _, err := svc.AddItem(ctx, list.ID, name, 1, ""); err != nil {
				t.Errorf("add %s: %v", name, err)
			}
			_, _ = svc.GetList(ctx, list.ID, true, "position")
		}()
	}
	wg.Wait()

	got, _ := svc.GetList(ctx, list.ID, true, "position")
	if len(got.Items) != n {
		t.Fatalf("expected %d items, got %d", n, len(got.Items))
	}
	for i, item := range got.Items {
		if item.Position != i+1 {
			t.Fatalf("positions not contiguous at %d: %d", i, item.Position)
		}
	}
}

func TestGroceryService_ListListsUnknownSortKeepsStorageOrder(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	for _, name := range []string{"b", "c", "a"} {
		if _, err := svc.CreateList(ctx, name); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	for _, order := range []string{"asc", "desc"} {
		t.Run(order, func(t *testing.T) {
			lists := svc.ListLists(ctx, "quantity", order)
			names := make([]string, len(lists))
			for i, l := range lists {
				names[i] = l.Name.String()
			}
			if diff := cmp.Diff([]string{"b", "c", "a"}, names); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
