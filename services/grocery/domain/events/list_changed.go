package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/grocerylists/services/grocery/domain/models"
)

// TopicListChanged is the Watermill topic published after every persisted
// grocery list mutation.
const TopicListChanged = "grocery.list.changed"

// ListChangedVersion is the current schema version of ListChangedEvent.
const ListChangedVersion = 1

// Action names carried by ListChangedEvent.
const (
	ActionListCreated = "list.created"
	ActionListDeleted = "list.deleted"
	ActionItemAdded   = "item.added"
	ActionItemUpdated = "item.updated"
	ActionItemDeleted = "item.deleted"
)

// ListChangedEvent describes one mutation of a grocery list.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicListChanged).
type ListChangedEvent struct {
	EventID     uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int       `json:"version"`  // Schema version; increment on breaking changes
	ListID      string    `json:"list_id"`
	ItemID      string    `json:"item_id,omitempty"`
	Action      string    `json:"action"`
	ListName    string    `json:"list_name"`
	ItemCount   int       `json:"item_count"`
	DateUpdated string    `json:"date_updated"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewListChangedEvent snapshots list after action. itemID is empty for
// list-level actions.
func NewListChangedEvent(action string, list *models.GroceryList, itemID string, now time.Time) ListChangedEvent {
	return ListChangedEvent{
		EventID:     uuid.New(),
		Version:     ListChangedVersion,
		ListID:      list.ID,
		ItemID:      itemID,
		Action:      action,
		ListName:    list.Name.String(),
		ItemCount:   list.ItemCount(),
		DateUpdated: list.DateUpdated,
		OccurredAt:  now.UTC(),
	}
}

// Deleted reports whether the event removed the whole list.
func (e ListChangedEvent) Deleted() bool {
	return e.Action == ActionListDeleted
}
