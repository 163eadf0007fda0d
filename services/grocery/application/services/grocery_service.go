package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/grocerylists/pkg/logger"
	"github.com/ghuser/grocerylists/pkg/telemetry"
	"github.com/ghuser/grocerylists/services/grocery/domain"
	groceryevents "github.com/ghuser/grocerylists/services/grocery/domain/events"
	"github.com/ghuser/grocerylists/services/grocery/domain/models"
	"github.com/ghuser/grocerylists/services/grocery/domain/repositories"
	domainsvcs "github.com/ghuser/grocerylists/services/grocery/domain/services"
)

// Operation names used for spans, metrics and logs.
const (
	OpCreateList = "list.create"
	OpDeleteList = "list.delete"
	OpAddItem    = "item.add"
	OpUpdateItem = "item.update"
	OpDeleteItem = "item.delete"
)

// EventPublisher publishes messages to a topic. *events.EventBus satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// GroceryService coordinates the list and item repositories with the Store.
//
// One RWMutex guards the whole collection: a mutation holds the write lock
// from validation through the Save call, so a successful return means the
// change is on disk. Reads hold the read lock only long enough to copy.
// Every returned list or item is a copy that callers may keep or modify.
type GroceryService struct {
	mu        sync.RWMutex
	lists     repositories.ListRepository
	items     repositories.ItemRepository
	store     repositories.Store
	publisher EventPublisher
	log       logger.Logger
	metrics   *telemetry.MutationMetrics
	tracer    trace.Tracer
	now       func() time.Time
}

// NewGroceryService returns a GroceryService. publisher and metrics may be nil.
func NewGroceryService(
	lists repositories.ListRepository,
	items repositories.ItemRepository,
	store repositories.Store,
	publisher EventPublisher,
	log logger.Logger,
	metrics *telemetry.MutationMetrics,
) *GroceryService {
	return &GroceryService{
		lists:     lists,
		items:     items,
		store:     store,
		publisher: publisher,
		log:       log,
		metrics:   metrics,
		tracer:    otel.Tracer(telemetry.InstrumentationName),
		now:       time.Now,
	}
}

// ListLists returns every list ordered by sortBy and order. An unrecognized
// sortBy keeps storage order and ignores order.
func (s *GroceryService) ListLists(ctx context.Context, sortBy, order string) []*models.GroceryList {
	_, span := s.tracer.Start(ctx, "grocery.list.all", trace.WithAttributes(
		attribute.String("grocery.sort_by", sortBy),
		attribute.Bool("grocery.sort_applied", domainsvcs.IsListSortField(sortBy)),
	))
	defer span.End()

	s.mu.RLock()
	all := s.lists.All()
	out := make([]*models.GroceryList, len(all))
	for i, list := range all {
		out[i] = list.Clone()
	}
	s.mu.RUnlock()

	span.SetAttributes(attribute.Int("grocery.list_count", len(out)))
	return domainsvcs.SortLists(out, sortBy, order)
}

// GetList returns one list with its items filtered by checked state and
// sorted ascending by sortItemsBy. The sort field is validated before the
// list is looked up.
func (s *GroceryService) GetList(ctx context.Context, id string, includeChecked bool, sortItemsBy string) (*models.GroceryList, error) {
	if err := domainsvcs.ValidateItemSortField(sortItemsBy); err != nil {
		return nil, err
	}
	_, span := s.tracer.Start(ctx, "grocery.list.get", trace.WithAttributes(attribute.String("grocery.list_id", id)))
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	list, err := s.lists.FindByID(id)
	if err != nil {
		return nil, err
	}
	items, err := s.items.List(id, includeChecked, sortItemsBy)
	if err != nil {
		return nil, err
	}

	out := list.Clone()
	out.Items = items
	return out, nil
}

// CreateList appends a new empty list and persists it.
// Returns ErrInvalidListName when name is empty.
func (s *GroceryService) CreateList(ctx context.Context, name string) (*models.GroceryList, error) {
	listName, err := models.NewListName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidListName, err)
	}

	var created *models.GroceryList
	err = s.commit(ctx, OpCreateList, func(now time.Time) (groceryevents.ListChangedEvent, error) {
		list := models.NewGroceryList(listName, now)
		s.lists.Insert(list)
		created = list.Clone()
		return groceryevents.NewListChangedEvent(groceryevents.ActionListCreated, list, "", now), nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteList removes a list with all of its items and returns the removed list.
func (s *GroceryService) DeleteList(ctx context.Context, id string) (*models.GroceryList, error) {
	var removed *models.GroceryList
	err := s.commit(ctx, OpDeleteList, func(now time.Time) (groceryevents.ListChangedEvent, error) {
		list, err := s.lists.Remove(id)
		if err != nil {
			return groceryevents.ListChangedEvent{}, err
		}
		removed = list.Clone()
		return groceryevents.NewListChangedEvent(groceryevents.ActionListDeleted, list, "", now), nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// AddItem appends a new item to a list. A zero quantity becomes 1.
// Returns ErrInvalidItemName, ErrListNotFound or ErrItemAlreadyExists.
func (s *GroceryService) AddItem(ctx context.Context, listID, name string, quantity float64, category string) (*models.Item, error) {
	itemName, err := models.NewItemName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidItemName, err)
	}

	var added *models.Item
	err = s.commit(ctx, OpAddItem, func(now time.Time) (groceryevents.ListChangedEvent, error) {
		item, err := s.items.Add(listID, itemName, quantity, category, now)
		if err != nil {
			return groceryevents.ListChangedEvent{}, err
		}
		added = item.Clone()
		return s.itemEvent(groceryevents.ActionItemAdded, listID, item.ID, now)
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// UpdateItem applies patch to an item. A Position in the patch moves the item
// and renumbers its siblings. Returns ErrListNotFound, ErrItemNotFound or
// ErrItemAlreadyExists.
func (s *GroceryService) UpdateItem(ctx context.Context, listID, itemID string, patch models.ItemPatch) (*models.Item, error) {
	var updated *models.Item
	err := s.commit(ctx, OpUpdateItem, func(now time.Time) (groceryevents.ListChangedEvent, error) {
		item, err := s.items.Update(listID, itemID, patch, now)
		if err != nil {
			return groceryevents.ListChangedEvent{}, err
		}
		updated = item.Clone()
		return s.itemEvent(groceryevents.ActionItemUpdated, listID, itemID, now)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteItem removes an item and closes the gap in positions.
// Returns ErrListNotFound or ErrItemNotFound.
func (s *GroceryService) DeleteItem(ctx context.Context, listID, itemID string) (*models.Item, error) {
	var removed *models.Item
	err := s.commit(ctx, OpDeleteItem, func(now time.Time) (groceryevents.ListChangedEvent, error) {
		item, err := s.items.Delete(listID, itemID, now)
		if err != nil {
			return groceryevents.ListChangedEvent{}, err
		}
		removed = item.Clone()
		return s.itemEvent(groceryevents.ActionItemDeleted, listID, itemID, now)
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// commit runs apply under the write lock and saves the collection when it
// succeeds. A failed save leaves the in-memory change in place and returns
// ErrPersistence; the divergence is logged, counted and reported, never retried.
func (s *GroceryService) commit(ctx context.Context, op string, apply func(now time.Time) (groceryevents.ListChangedEvent, error)) error {
	ctx, span := s.tracer.Start(ctx, "grocery."+op)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	evt, err := apply(now)
	if err != nil {
		s.metrics.Record(ctx, op, telemetry.OutcomeRejected)
		span.SetAttributes(attribute.String("grocery.outcome", telemetry.OutcomeRejected))
		return err
	}
	span.SetAttributes(attribute.String("grocery.list_id", evt.ListID))

	if saveErr := s.store.Save(ctx, s.lists.Collection()); saveErr != nil {
		err := fmt.Errorf("%w: %w", domain.ErrPersistence, saveErr)
		s.log.ErrorContext(ctx, "grocery lists not persisted",
			"op", op,
			"list_id", evt.ListID,
			"item_id", evt.ItemID,
			"state_divergent", true,
			"error", saveErr,
		)
		s.metrics.Record(ctx, op, telemetry.OutcomeDivergent)
		telemetry.CaptureError(ctx, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist failed")
		return err
	}

	s.metrics.Record(ctx, op, telemetry.OutcomeOK)
	s.log.InfoContext(ctx, "grocery list updated",
		"op", op,
		"list_id", evt.ListID,
		"item_id", evt.ItemID,
		"item_count", evt.ItemCount,
	)
	// Publishing under the lock keeps events in commit order; the bus
	// does not block on subscribers.
	s.publish(ctx, evt)
	return nil
}

func (s *GroceryService) itemEvent(action, listID, itemID string, now time.Time) (groceryevents.ListChangedEvent, error) {
	list, err := s.lists.FindByID(listID)
	if err != nil {
		return groceryevents.ListChangedEvent{}, err
	}
	return groceryevents.NewListChangedEvent(action, list, itemID, now), nil
}

func (s *GroceryService) publish(ctx context.Context, evt groceryevents.ListChangedEvent) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		s.log.ErrorContext(ctx, "marshal list changed event", "error", err, "list_id", evt.ListID)
		return
	}
	msg := message.NewMessage(evt.EventID.String(), payload)
	if err := s.publisher.Publish(ctx, groceryevents.TopicListChanged, msg); err != nil {
		s.log.WarnContext(ctx, "publish list changed event",
			"error", err,
			"list_id", evt.ListID,
			"action", evt.Action,
		)
	}
}
