package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"cafe45/internal/feed"
	"cafe45/internal/metrics"
	"cafe45/internal/models"
)

// ErrNotFound means no card with the given (id, kind) is on the board.
var ErrNotFound = errors.New("item not on the board")

// Notifier surfaces the outcome of a board action to the acting staff
// member, the way the storefront shows toasts.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Board is the server-side state of the admin workflow board. It applies
// status moves optimistically: the in-memory list changes first, the write
// follows, and a failed write restores the pre-move snapshot. The list can
// therefore never show a rejected status for longer than the failed
// round-trip.
type Board struct {
	service  *Service
	store    Store
	notifier Notifier
	feed     feed.Publisher

	mu    sync.Mutex
	items []Item
}

// NewBoard assembles a board; call Refresh (or Run) to load it.
func NewBoard(store Store, notifier Notifier, publisher feed.Publisher) *Board {
	return &Board{
		service:  NewService(store),
		store:    store,
		notifier: notifier,
		feed:     publisher,
	}
}

// Refresh replaces the whole list with a fresh fetch-and-normalize. Any
// unconfirmed optimistic state is discarded; the store is the source of
// truth.
func (b *Board) Refresh(ctx context.Context) error {
	items, err := b.service.FetchAll(ctx)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.items = items
	b.mu.Unlock()
	return nil
}

// Items returns a copy of the current list.
func (b *Board) Items() []Item {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Item, len(b.items))
	copy(out, b.items)
	return out
}

// MoveItem advances the item identified by (id, kind) to the target column.
// Moving onto the current column is a no-op: no write, no notification, the
// list untouched.
func (b *Board) MoveItem(ctx context.Context, id uint, kind Kind, target models.WorkflowStatus) error {
	if !target.Valid() {
		return fmt.Errorf("invalid workflow status %d", target)
	}

	b.mu.Lock()
	index := b.indexLocked(id, kind)
	if index < 0 {
		b.mu.Unlock()
		return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}
	if b.items[index].WorkflowStatus == target {
		b.mu.Unlock()
		return nil
	}

	// Immutable pre-move snapshot; rollback is a plain assignment.
	snapshot := make([]Item, len(b.items))
	copy(snapshot, b.items)

	b.items[index].WorkflowStatus = target
	b.mu.Unlock()

	var err error
	switch kind {
	case KindInquiry:
		err = b.store.UpdateInquiryStatus(ctx, id, target)
	case KindOrder:
		err = b.store.UpdateOrderStatus(ctx, id, target)
	default:
		err = fmt.Errorf("unknown item kind %q", kind)
	}

	if err != nil {
		b.mu.Lock()
		b.items = snapshot
		b.mu.Unlock()
		b.notifier.Error("Kunde inte spara ändringen")
		return fmt.Errorf("persist status move: %w", err)
	}

	metrics.RecordStatusTransition(string(kind), target.ColumnName())
	b.notifier.Success("Flyttad till " + target.ColumnName())
	b.publish(kind, feed.ActionUpdate)
	return nil
}

// Remove deletes the record behind the card and refreshes the list.
func (b *Board) Remove(ctx context.Context, id uint, kind Kind) error {
	var err error
	switch kind {
	case KindInquiry:
		err = b.store.DeleteInquiry(ctx, id)
	case KindOrder:
		err = b.store.DeleteOrder(ctx, id)
	default:
		err = fmt.Errorf("unknown item kind %q", kind)
	}
	if err != nil {
		b.notifier.Error("Kunde inte ta bort")
		return fmt.Errorf("delete %s %d: %w", kind, id, err)
	}

	b.notifier.Success("Borttagen")
	b.publish(kind, feed.ActionDelete)
	return b.Refresh(ctx)
}

// Run keeps the board synchronized with the change feed: any notification
// triggers a full re-fetch until the context ends or the feed closes.
func (b *Board) Run(ctx context.Context, events <-chan feed.Event) {
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
			if err := b.Refresh(ctx); err != nil {
				log.Printf("board: refresh after change event: %v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (b *Board) indexLocked(id uint, kind Kind) int {
	for i := range b.items {
		if b.items[i].ID == id && b.items[i].Kind == kind {
			return i
		}
	}
	return -1
}

func (b *Board) publish(kind Kind, action string) {
	if b.feed == nil {
		return
	}
	table := feed.TableInquiries
	if kind == KindOrder {
		table = feed.TableOrders
	}
	b.feed.Publish(feed.Event{Table: table, Action: action})
}
