// internal/adapters/out/firestore/catalog_watcher_fs.go
package firestore

import (
	"context"
	"errors"
	"log"
	"sync"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	itemdom "storefront/internal/domain/item"
)

// CatalogWatcherFS keeps an in-memory copy of the items collection fed by a
// Firestore snapshot listener, so the storefront grid reflects price and
// stock edits without polling.
//
// It implements catalog.Source: Current() returns (snapshot, true) once the
// first listener payload arrived; callers fall back to a direct read until
// then, and again after Stop.
type CatalogWatcherFS struct {
	Client *firestore.Client

	mu    sync.RWMutex
	items []itemdom.Item
	ready bool

	cancel context.CancelFunc
	done   chan struct{}
}

func NewCatalogWatcherFS(client *firestore.Client) *CatalogWatcherFS {
	return &CatalogWatcherFS{Client: client}
}

// Start begins listening. The listener goroutine stops when ctx is
// cancelled or Stop is called.
func (w *CatalogWatcherFS) Start(ctx context.Context) error {
	if w == nil || w.Client == nil {
		return errors.New("catalog_watcher_fs: firestore client is nil")
	}
	if w.done != nil {
		return errors.New("catalog_watcher_fs: already started")
	}

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})

	go w.run(ctx)
	return nil
}

// Current returns the latest snapshot. ok is false before the first
// listener payload and after Stop.
func (w *CatalogWatcherFS) Current() ([]itemdom.Item, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.ready {
		return nil, false
	}
	out := make([]itemdom.Item, len(w.items))
	copy(out, w.items)
	return out, true
}

// Stop cancels the listener and waits for it to drain.
func (w *CatalogWatcherFS) Stop() {
	if w == nil || w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done

	w.mu.Lock()
	w.ready = false
	w.mu.Unlock()
}

func (w *CatalogWatcherFS) run(ctx context.Context) {
	defer close(w.done)

	snaps := w.Client.Collection("items").Snapshots(ctx)
	defer snaps.Stop()

	for {
		qs, err := snaps.Next()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			// listener errors are terminal for the stream; queries fall
			// back to direct reads
			log.Printf("[catalog_watcher] listener stopped: %v", err)
			w.mu.Lock()
			w.ready = false
			w.mu.Unlock()
			return
		}

		var items []itemdom.Item
		docs := qs.Documents
		for {
			snap, err := docs.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				log.Printf("[catalog_watcher] decode failed: %v", err)
				break
			}
			items = append(items, itemFromSnapshot(snap))
		}

		w.mu.Lock()
		w.items = items
		w.ready = true
		w.mu.Unlock()
	}
}
