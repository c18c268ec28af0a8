package db

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/duodex/internal/domain/search/predicate"
)

// Compile-time check: Lazy implements Store.
var _ Store = (*Lazy)(nil)

// Dialer opens a ready-to-use store.
type Dialer func(ctx context.Context) (Store, error)

type connected struct{ store Store }

// Lazy connects on first use. Concurrent cold callers share a single
// in-flight dial; a failed dial is not remembered, so the next call dials again.
type Lazy struct {
	dial  Dialer
	group singleflight.Group
	conn  atomic.Pointer[connected]
}

// NewLazy wraps dial in a once-only connection barrier.
func NewLazy(dial Dialer) *Lazy {
	return &Lazy{dial: dial}
}

// Get returns the connected store, dialing if needed.
func (l *Lazy) Get(ctx context.Context) (Store, error) {
	if c := l.conn.Load(); c != nil {
		return c.store, nil
	}
	// The dial outlives the caller that happened to trigger it.
	dialCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan("dial", func() (any, error) {
		if c := l.conn.Load(); c != nil {
			return c.store, nil
		}
		s, err := l.dial(dialCtx)
		if err != nil {
			return nil, &Error{Op: OpConnect, Err: err}
		}
		l.conn.Store(&connected{store: s})
		return s, nil
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

// Close closes the underlying store if it was ever opened.
func (l *Lazy) Close() {
	if c := l.conn.Swap(nil); c != nil {
		c.store.Close()
	}
}

// WaitForReady dials and waits for the store to answer.
func (l *Lazy) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	s, err := l.Get(ctx)
	if err != nil {
		return err
	}
	return s.WaitForReady(ctx, timeout)
}

// Ping checks connectivity.
func (l *Lazy) Ping(ctx context.Context) error {
	s, err := l.Get(ctx)
	if err != nil {
		return err
	}
	return s.Ping(ctx)
}

// HSet sets hash fields.
func (l *Lazy) HSet(ctx context.Context, key string, fields map[string]string) error {
	s, err := l.Get(ctx)
	if err != nil {
		return err
	}
	return s.HSet(ctx, key, fields)
}

// HSetMulti stores multiple hashes.
func (l *Lazy) HSetMulti(ctx context.Context, items []HashSetItem) error {
	s, err := l.Get(ctx)
	if err != nil {
		return err
	}
	return s.HSetMulti(ctx, items)
}

// HGetAll returns all fields of a hash.
func (l *Lazy) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	s, err := l.Get(ctx)
	if err != nil {
		return nil, err
	}
	return s.HGetAll(ctx, key)
}

// Scan iterates keys matching a pattern.
func (l *Lazy) Scan(ctx context.Context, pattern string) ([]string, error) {
	s, err := l.Get(ctx)
	if err != nil {
		return nil, err
	}
	return s.Scan(ctx, pattern)
}

// CreateIndex creates an FT index.
func (l *Lazy) CreateIndex(ctx context.Context, def *IndexDefinition) error {
	s, err := l.Get(ctx)
	if err != nil {
		return err
	}
	return s.CreateIndex(ctx, def)
}

// DropIndex removes an FT index.
func (l *Lazy) DropIndex(ctx context.Context, name string) error {
	s, err := l.Get(ctx)
	if err != nil {
		return err
	}
	return s.DropIndex(ctx, name)
}

// IndexExists reports whether an FT index exists.
func (l *Lazy) IndexExists(ctx context.Context, name string) (bool, error) {
	s, err := l.Get(ctx)
	if err != nil {
		return false, err
	}
	return s.IndexExists(ctx, name)
}

// SupportsTextSearch reports native relevance support; false while disconnected.
func (l *Lazy) SupportsTextSearch(ctx context.Context) bool {
	s, err := l.Get(ctx)
	if err != nil {
		return false
	}
	return s.SupportsTextSearch(ctx)
}

// SearchText runs a relevance-scored search.
func (l *Lazy) SearchText(ctx context.Context, q *TextQuery) (*SearchResult, error) {
	s, err := l.Get(ctx)
	if err != nil {
		return nil, err
	}
	return s.SearchText(ctx, q)
}

// SearchList runs a filtered, sorted, paginated search.
func (l *Lazy) SearchList(ctx context.Context, q *ListQuery) (*SearchResult, error) {
	s, err := l.Get(ctx)
	if err != nil {
		return nil, err
	}
	return s.SearchList(ctx, q)
}

// SearchCount counts documents matching filter.
func (l *Lazy) SearchCount(ctx context.Context, index string, filter predicate.Predicate) (int, error) {
	s, err := l.Get(ctx)
	if err != nil {
		return 0, err
	}
	return s.SearchCount(ctx, index, filter)
}
