// Package subscribers holds the consumers of grocery list change events.
package subscribers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/grocerylists/pkg/app"
	"github.com/ghuser/grocerylists/pkg/cache"
	"github.com/ghuser/grocerylists/pkg/logger"
	"github.com/ghuser/grocerylists/pkg/realtime"
	groceryevents "github.com/ghuser/grocerylists/services/grocery/domain/events"
)

// Handler processes one event bus message.
type Handler func(context.Context, *message.Message) error

// ListSummaryStore is the write side of the list read model.
// *cache.ListCache satisfies it.
type ListSummaryStore interface {
	Set(ctx context.Context, list *cache.CachedList) error
	Delete(ctx context.Context, listID string) error
}

// Register subscribes the grocery consumers to TopicListChanged: the
// websocket broadcaster always, the Redis read model when Redis is configured.
// Subscriptions end when ctx is cancelled or the bus is closed.
func Register(ctx context.Context, a *app.Application) error {
	handlers := map[string]Handler{}
	if a.Realtime != nil {
		handlers["realtime"] = Broadcast(a.Realtime)
	}
	if a.Redis != nil {
		handlers["list_cache"] = ProjectListSummary(cache.NewListCache(a.Redis))
	}

	for name, h := range handlers {
		errCh, err := a.EventBus.Subscribe(ctx, groceryevents.TopicListChanged, h)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", name, err)
		}
		go drain(ctx, a.Logger.With("subscriber", name), errCh)
		a.Logger.Info("subscriber registered", "subscriber", name, "topic", groceryevents.TopicListChanged)
	}
	return nil
}

// Broadcast forwards every change event to the websocket hub.
func Broadcast(hub *realtime.Hub) Handler {
	return func(_ context.Context, msg *message.Message) error {
		evt, err := decode(msg)
		if err != nil {
			return err
		}
		hub.Broadcast(realtime.Message{
			Type:   groceryevents.TopicListChanged,
			ListID: evt.ListID,
			Data:   json.RawMessage(msg.Payload),
		})
		return nil
	}
}

// ProjectListSummary mirrors each changed list into the read model and drops
// deleted lists from it.
func ProjectListSummary(store ListSummaryStore) Handler {
	return func(ctx context.Context, msg *message.Message) error {
		evt, err := decode(msg)
		if err != nil {
			return err
		}
		if evt.Deleted() {
			return store.Delete(ctx, evt.ListID)
		}
		return store.Set(ctx, &cache.CachedList{
			ID:          evt.ListID,
			Name:        evt.ListName,
			ItemCount:   evt.ItemCount,
			DateUpdated: evt.DateUpdated,
		})
	}
}

func decode(msg *message.Message) (groceryevents.ListChangedEvent, error) {
	var evt groceryevents.ListChangedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return evt, fmt.Errorf("decode %s: %w", groceryevents.TopicListChanged, err)
	}
	return evt, nil
}

func drain(ctx context.Context, log logger.Logger, errCh <-chan error) {
	for err := range errCh {
		log.ErrorContext(ctx, "subscriber error", "error", err)
	}
}
