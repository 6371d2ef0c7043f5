// Package preferences keeps the set of blog ids the user has liked.
//
// The set lives only on this device: it is never sent to the backend and
// survives sign-out. It is loaded lazily from the likedBlogs key and every
// Toggle writes the whole set back before returning.
package preferences

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/dmitrijs2005/grievdesk/internal/client/kv"
	"github.com/dmitrijs2005/grievdesk/internal/common"
	"github.com/dmitrijs2005/grievdesk/internal/logging"
)

type Cache struct {
	mu     sync.Mutex
	store  kv.Store
	log    logging.Logger
	key    string
	loaded bool
	ids    map[string]struct{}
}

func NewCache(store kv.Store, log logging.Logger) *Cache {
	return &Cache{store: store, log: log, key: common.KeyLikedBlogs}
}

func (c *Cache) ensureLoaded(ctx context.Context) error {
	if c.loaded {
		return nil
	}

	data, err := c.store.Get(ctx, c.key)
	if err != nil {
		return fmt.Errorf("load %s: %w", c.key, err)
	}

	ids := make(map[string]struct{})
	if len(data) > 0 {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			// A corrupt list is replaced on the next toggle.
			c.log.Warn(ctx, "discarding unreadable liked set", "error", err)
			list = nil
		}
		for _, id := range list {
			ids[id] = struct{}{}
		}
	}

	c.ids = ids
	c.loaded = true
	return nil
}

func (c *Cache) IsMarked(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoaded(ctx); err != nil {
		return false, err
	}
	_, ok := c.ids[id]
	return ok, nil
}

// Toggle flips membership of id and returns the new state. The in-memory set
// is only changed once the write has succeeded.
func (c *Cache) Toggle(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoaded(ctx); err != nil {
		return false, err
	}

	_, marked := c.ids[id]
	next := make([]string, 0, len(c.ids)+1)
	for k := range c.ids {
		if k != id {
			next = append(next, k)
		}
	}
	if !marked {
		next = append(next, id)
	}
	sort.Strings(next)

	data, err := json.Marshal(next)
	if err != nil {
		return marked, fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, data); err != nil {
		c.log.Error(ctx, "failed to persist liked set", "error", err)
		return marked, fmt.Errorf("save %s: %w", c.key, err)
	}

	if marked {
		delete(c.ids, id)
	} else {
		c.ids[id] = struct{}{}
	}
	return !marked, nil
}

// Marked returns the liked ids in sorted order.
func (c *Cache) Marked(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(c.ids))
	for k := range c.ids {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}
