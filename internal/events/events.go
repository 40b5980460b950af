// Package events provides a small in-process event bus for data changes.
// CRUD services emit an event after each successful mutation; reaction logic
// (approval statistics cache invalidation, audit fan-out) registers through
// OnDataChanged.
package events

import (
	"context"
	"sync"
)

// CRUD operation kinds.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// DataChangeEvent describes one data mutation. Document is the record after
// the change (nil for delete).
type DataChangeEvent struct {
	CollectionName string
	Operation      string
	Document       interface{}
}

// DataChangeHandler reacts to a data change.
type DataChangeHandler func(ctx context.Context, e DataChangeEvent)

var (
	handlers   []DataChangeHandler
	handlersMu sync.RWMutex
)

// OnDataChanged registers a handler. Call during init, e.g. from the
// approval package.
func OnDataChanged(h DataChangeHandler) {
	handlersMu.Lock()
	defer handlersMu.Unlock()
	handlers = append(handlers, h)
}

// EmitDataChanged dispatches the event to every handler. Each handler runs
// in its own goroutine with panics recovered so one handler cannot take down
// another or the server.
func EmitDataChanged(ctx context.Context, e DataChangeEvent) {
	handlersMu.RLock()
	list := make([]DataChangeHandler, len(handlers))
	copy(list, handlers)
	handlersMu.RUnlock()

	for _, h := range list {
		go func(fn DataChangeHandler) {
			defer func() {
				if r := recover(); r != nil {
					// The logger may not be initialized when events fire
					// early in boot
					_ = r
				}
			}()
			fn(ctx, e)
		}(h)
	}
}
