package api

import (
	"context"
	"net/http"
	"net/url"
)

// Resource is a REST collection of T at a fixed path. C and U are the
// request bodies for create and partial update.
type Resource[T, C, U any] struct {
	client *Client
	path   string
}

// NewResource binds a collection path such as "/servers" to client.
func NewResource[T, C, U any](client *Client, path string) *Resource[T, C, U] {
	return &Resource[T, C, U]{client: client, path: path}
}

// Path returns the collection path.
func (r *Resource[T, C, U]) Path() string { return r.path }

func (r *Resource[T, C, U]) item(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

// List returns every item matching the exact-match filters in query.
func (r *Resource[T, C, U]) List(ctx context.Context, query url.Values) ([]T, error) {
	var out []T
	if _, err := r.client.Do(ctx, http.MethodGet, r.path, query, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Get fetches one item by id.
func (r *Resource[T, C, U]) Get(ctx context.Context, id string) (*T, error) {
	var out T
	if _, err := r.client.Do(ctx, http.MethodGet, r.item(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create posts a new item and returns it with its server-assigned fields.
func (r *Resource[T, C, U]) Create(ctx context.Context, opts C) (*T, error) {
	var out T
	if _, err := r.client.Do(ctx, http.MethodPost, r.path, nil, opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update sends a partial update and returns the item as stored.
func (r *Resource[T, C, U]) Update(ctx context.Context, id string, opts U) (*T, error) {
	var out T
	if _, err := r.client.Do(ctx, http.MethodPut, r.item(id), nil, opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an item. A missing item is reported as domain.ErrNotFound.
func (r *Resource[T, C, U]) Delete(ctx context.Context, id string) error {
	_, err := r.client.Do(ctx, http.MethodDelete, r.item(id), nil, nil, nil)
	return err
}
