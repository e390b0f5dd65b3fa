// Package query holds the fetched property collection and its derived
// views for the browsing screens: the full list, the featured top-10, the
// loading flag and the last error. It is the Go rendering of a fetch hook:
// state lives here, derivation is recomputed from the base collection,
// and a manual Refresh re-runs the fetch.
package query

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/estatekeeper/internal/client/models"
	"github.com/dmitrijs2005/estatekeeper/internal/client/services"
	"github.com/dmitrijs2005/estatekeeper/internal/logging"
)

// FeaturedCount is how many most-recent listings make the featured slice.
const FeaturedCount = 10

// Properties fetches and holds the full listing collection.
//
// Concurrent fetches are allowed; every fetch is stamped with a monotonic
// sequence and a completion older than the newest applied one is discarded,
// so a slow stale response can never overwrite fresher data.
type Properties struct {
	svc services.PropertyService
	log logging.Logger

	mu      sync.Mutex
	seq     uint64 // last issued fetch
	applied uint64 // fetch whose result is currently held
	items   []models.Property
	loading bool
	errMsg  string
}

// NewProperties builds an empty query over the given service.
func NewProperties(svc services.PropertyService, log logging.Logger) *Properties {
	return &Properties{svc: svc, log: log.With("component", "properties-query")}
}

// Fetch loads the full collection. On failure the previous collection is
// kept (no flash-to-empty on a transient error) and the error is both
// recorded for display and returned.
func (q *Properties) Fetch(ctx context.Context) error {
	q.mu.Lock()
	q.seq++
	mine := q.seq
	q.loading = true
	q.mu.Unlock()

	items, err := q.svc.List(ctx)

	q.mu.Lock()
	defer q.mu.Unlock()

	if mine < q.applied {
		// A strictly newer fetch already landed; this result is stale.
		q.log.Debug(ctx, "discarding stale fetch", "seq", mine, "applied", q.applied)
		return nil
	}
	q.applied = mine
	if mine == q.seq {
		q.loading = false
	}

	if err != nil {
		q.errMsg = err.Error()
		return err
	}

	q.errMsg = ""
	q.items = items
	return nil
}

// Refresh re-runs the fetch; pull-to-refresh semantics.
func (q *Properties) Refresh(ctx context.Context) error {
	return q.Fetch(ctx)
}

// All returns a copy of the current collection in backend order.
func (q *Properties) All() []models.Property {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.items)
}

// Featured returns the FeaturedCount most recently created listings,
// newest first. Purely derived; recomputed from the current collection on
// every call.
func (q *Properties) Featured() []models.Property {
	q.mu.Lock()
	items := slices.Clone(q.items)
	q.mu.Unlock()

	slices.SortStableFunc(items, func(a, b models.Property) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if len(items) > FeaturedCount {
		items = items[:FeaturedCount]
	}
	return items
}

// Err returns the message of the last failed fetch, or "".
func (q *Properties) Err() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.errMsg
}

// Loading reports whether a fetch is in flight.
func (q *Properties) Loading() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.loading
}
