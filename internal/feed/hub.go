package feed

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lunorise/platform/internal/domain/model"
	"github.com/lunorise/platform/internal/domain/repository"
)

// Loader fetches the current feed snapshot for a user.
type Loader interface {
	ListByUser(ctx context.Context, userID int64) ([]model.Transaction, error)
}

// Subscription is a live handle onto one user's feed. C delivers full
// snapshots; the initial state arrives first, every later delivery
// replaces the previous one. Close via Unsubscribe.
type Subscription struct {
	C <-chan []model.Transaction

	hub    *Hub
	userID int64
	ch     chan []model.Transaction
	once   sync.Once
}

// Unsubscribe detaches the subscription and closes C. Safe to call
// more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}

// Hub fans transaction snapshots out to active subscriptions. Writes
// go through storage as usual; callers signal Invalidate afterwards
// and subscribers receive the reloaded feed.
type Hub struct {
	loader Loader
	log    *slog.Logger

	mu   sync.Mutex
	subs map[int64]map[*Subscription]struct{}
}

// NewHub constructs Hub over the transaction repository.
func NewHub(transactions repository.TransactionRepository, log *slog.Logger) *Hub {
	return &Hub{
		loader: transactions,
		log:    log,
		subs:   make(map[int64]map[*Subscription]struct{}),
	}
}

// Subscribe registers a listener for the user's feed and pushes the
// current snapshot before returning.
func (h *Hub) Subscribe(ctx context.Context, userID int64) (*Subscription, error) {
	snapshot, err := h.loader.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ch := make(chan []model.Transaction, 1)
	sub := &Subscription{C: ch, hub: h, userID: userID, ch: ch}
	ch <- snapshot

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[*Subscription]struct{})
	}
	h.subs[userID][sub] = struct{}{}
	h.mu.Unlock()

	return sub, nil
}

// Invalidate reloads the user's feed and pushes it to every
// subscription. Deliveries coalesce: a subscriber that has not drained
// the previous snapshot gets only the newest one.
func (h *Hub) Invalidate(ctx context.Context, userID int64) {
	h.mu.Lock()
	count := len(h.subs[userID])
	h.mu.Unlock()
	if count == 0 {
		return
	}

	snapshot, err := h.loader.ListByUser(ctx, userID)
	if err != nil {
		h.log.Error("feed reload failed", "user_id", userID, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[userID] {
		select {
		case <-sub.ch:
		default:
		}
		sub.ch <- snapshot
	}
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[sub.userID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, sub.userID)
		}
	}
	close(sub.ch)
}
