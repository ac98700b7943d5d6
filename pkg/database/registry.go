package database

import (
	"context"
	"errors"
	"sync"
)

var shared = struct {
	mu         sync.Mutex
	connectors map[string]*Connector
}{connectors: map[string]*Connector{}}

// Shared returns the process-wide connector for the URI and database,
// creating it on first use. Used in development so that rebuilding the app
// reuses the open connection.
func Shared(opts Options) *Connector {
	key := opts.URI + "|" + opts.Database

	shared.mu.Lock()
	defer shared.mu.Unlock()

	if connector, ok := shared.connectors[key]; ok {
		return connector
	}
	connector := NewConnector(opts)
	shared.connectors[key] = connector
	return connector
}

// CloseShared closes and forgets every shared connector.
func CloseShared(ctx context.Context) error {
	shared.mu.Lock()
	connectors := shared.connectors
	shared.connectors = map[string]*Connector{}
	shared.mu.Unlock()

	var errs []error
	for _, connector := range connectors {
		errs = append(errs, connector.Close(ctx))
	}
	return errors.Join(errs...)
}
