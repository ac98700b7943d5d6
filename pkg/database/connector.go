package database

import (
	"Leaf-Love-Backend/pkg/plant"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/sync/singleflight"
)

const defaultDialTimeout = 10 * time.Second

var (
	ErrMissingURI        = errors.New("database: connection URI is not defined")
	ErrUnsupportedScheme = errors.New("database: unsupported connection URI scheme")
	ErrClosedDuringDial  = errors.New("database: connector closed while dialing")
)

type (
	// Store is an open connection to the plant store.
	Store interface {
		Plants() plant.PlantRepository
		Ping(ctx context.Context) error
		Migrate(ctx context.Context) error
		Close(ctx context.Context) error
	}

	// Dialer opens a store. database is the fallback database name for
	// URIs that do not carry one.
	Dialer func(ctx context.Context, uri, database string) (Store, error)

	Options struct {
		URI         string
		Database    string
		DialTimeout time.Duration
		// Dialers by URI scheme. Nil uses the MongoDB and Postgres dialers.
		Dialers map[string]Dialer
	}

	// Connector dials the store on first use and hands the same store to
	// every later caller. Concurrent first calls share a single dial, and a
	// failed dial is retried by the next call.
	Connector struct {
		opts  Options
		group singleflight.Group

		mu    sync.RWMutex
		store Store
		// generation is bumped by Close; a dial started in an older
		// generation must not publish its store.
		generation uint64
	}
)

func DefaultDialers() map[string]Dialer {
	return map[string]Dialer{
		"mongodb":     DialMongo,
		"mongodb+srv": DialMongo,
		"postgres":    DialPostgres,
		"postgresql":  DialPostgres,
	}
}

func NewConnector(opts Options) *Connector {
	if opts.Dialers == nil {
		opts.Dialers = DefaultDialers()
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = defaultDialTimeout
	}
	return &Connector{opts: opts}
}

func (c *Connector) cached() Store {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store
}

func (c *Connector) currentGeneration() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

func (c *Connector) Store(ctx context.Context) (Store, error) {
	if store := c.cached(); store != nil {
		return store, nil
	}

	uri := strings.TrimSpace(c.opts.URI)
	if uri == "" {
		return nil, ErrMissingURI
	}

	dial, err := c.dialerFor(uri)
	if err != nil {
		return nil, err
	}

	ch := c.group.DoChan("store", func() (any, error) {
		if store := c.cached(); store != nil {
			return store, nil
		}
		generation := c.currentGeneration()

		dialCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.opts.DialTimeout)
		defer cancel()

		store, err := dial(dialCtx, uri, c.opts.Database)
		if err != nil {
			log.Errorf("database connection failed: %v", err)
			return nil, err
		}

		c.mu.Lock()
		stale := c.generation != generation
		if !stale {
			c.store = store
		}
		c.mu.Unlock()

		if stale {
			if err := store.Close(dialCtx); err != nil {
				log.Warnf("error closing database dialed after close: %v", err)
			}
			return nil, ErrClosedDuringDial
		}
		log.Info("database connected")
		return store, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(Store), nil
	}
}

func (c *Connector) dialerFor(uri string) (Dialer, error) {
	scheme, _, ok := strings.Cut(uri, "://")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, redact(uri))
	}
	dial, ok := c.opts.Dialers[strings.ToLower(scheme)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
	return dial, nil
}

// PlantRepository resolves the repository of the connected store.
func (c *Connector) PlantRepository(ctx context.Context) (plant.PlantRepository, error) {
	store, err := c.Store(ctx)
	if err != nil {
		return nil, err
	}
	return store.Plants(), nil
}

func (c *Connector) Ping(ctx context.Context) error {
	store, err := c.Store(ctx)
	if err != nil {
		return err
	}
	return store.Ping(ctx)
}

// Close releases the store if one was dialed. A dial still in flight is
// closed as soon as it completes. The next Store call dials again.
func (c *Connector) Close(ctx context.Context) error {
	c.mu.Lock()
	store := c.store
	c.store = nil
	c.generation++
	c.mu.Unlock()

	if store == nil {
		return nil
	}
	return store.Close(ctx)
}

// redact hides credentials so URIs can be logged.
func redact(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "<invalid uri>"
	}
	return parsed.Redacted()
}
