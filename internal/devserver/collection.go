package devserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"sync"

	"nathanbeddoewebdev/opsdeck/internal/domain"

	"github.com/google/uuid"
)

type validatable interface {
	Validate() error
}

// collection is one in-memory resource collection. C and U are the create
// and partial-update bodies accepted by the API.
type collection[T domain.Entity, C, U validatable] struct {
	mu     sync.Mutex
	noun   string
	prefix string
	items  []T

	// build turns a validated create body into a stored item.
	build func(id string, opts C) T
	// setID restores the id after a patch has been applied.
	setID func(item *T, id string)
}

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func (c *collection[T, C, U]) notFound(id string) error {
	return fmt.Errorf("%w: %s %s not found", domain.ErrNotFound, c.noun, id)
}

func (c *collection[T, C, U]) index(id string) int {
	return slices.IndexFunc(c.items, func(it T) bool { return it.Key() == id })
}

// list returns the items whose JSON attributes equal every query value.
func (c *collection[T, C, U]) list(query url.Values) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]T, 0, len(c.items))
	for _, it := range c.items {
		ok, err := matches(it, query)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func (c *collection[T, C, U]) get(id string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		var zero T
		return zero, c.notFound(id)
	}
	return c.items[i], nil
}

func (c *collection[T, C, U]) create(body []byte) (T, error) {
	var zero T
	var opts C
	if err := decodeBody(body, &opts); err != nil {
		return zero, err
	}
	if err := opts.Validate(); err != nil {
		return zero, err
	}

	item := c.build(newID(c.prefix), opts)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
	return item, nil
}

// update applies only the members present in body. Fields absent from U,
// such as server-managed counters, cannot be changed.
func (c *collection[T, C, U]) update(id string, body []byte) (T, error) {
	var zero T
	var patch U
	if err := decodeBody(body, &patch); err != nil {
		return zero, err
	}
	if err := patch.Validate(); err != nil {
		return zero, err
	}
	normalized, err := json.Marshal(patch)
	if err != nil {
		return zero, err
	}

	return c.mutate(id, func(item *T) error {
		next, err := detach(*item)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(normalized, &next); err != nil {
			return err
		}
		c.setID(&next, id)
		*item = next
		return nil
	})
}

// detach returns a deep copy of v. Stored items are copy-on-write: values
// already handed out by get and list keep their own slices and pointers.
func detach[T any](v T) (T, error) {
	var out T
	data, err := json.Marshal(v)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(data, &out)
	return out, err
}

// mutate runs fn against a copy of the stored item and stores the result
// only when fn succeeds.
func (c *collection[T, C, U]) mutate(id string, fn func(item *T) error) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	i := c.index(id)
	if i < 0 {
		return zero, c.notFound(id)
	}
	item := c.items[i]
	if err := fn(&item); err != nil {
		return zero, err
	}
	c.items[i] = item
	return item, nil
}

func (c *collection[T, C, U]) remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return c.notFound(id)
	}
	c.items = slices.Delete(c.items, i, i+1)
	return nil
}

func (c *collection[T, C, U]) load(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = slices.Clone(items)
}

func decodeBody(body []byte, dst any) error {
	if err := json.Unmarshal(body, dst); err != nil {
		if errors.Is(err, domain.ErrInvalid) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalid, err)
	}
	return nil
}

// matches compares query values with the item's top-level JSON members,
// the same exact-match semantics the API applies to list filters.
func matches(item any, query url.Values) (bool, error) {
	if len(query) == 0 {
		return true, nil
	}
	data, err := json.Marshal(item)
	if err != nil {
		return false, err
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return false, err
	}
	for key, values := range query {
		if len(values) == 0 || values[0] == "" {
			continue
		}
		v, ok := fields[key]
		if !ok || fmt.Sprint(v) != values[0] {
			return false, nil
		}
	}
	return true, nil
}
