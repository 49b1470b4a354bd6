// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package recordtest provides an in-memory record.Repository for tests.
package recordtest

import (
	"context"
	"sort"
	"sync"

	"github.com/taibuivan/recursos/internal/platform/dberr"
	"github.com/taibuivan/recursos/internal/platform/docstore"
)

// Repository keeps one collection in a map guarded by a mutex.
type Repository[T docstore.Document] struct {
	mu     sync.Mutex
	docs   map[string]T
	writes int
}

// New returns an empty repository.
func New[T docstore.Document]() *Repository[T] {
	return &Repository[T]{docs: make(map[string]T)}
}

func (r *Repository[T]) FindByID(_ context.Context, id string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[id]
	if !ok {
		var zero T
		return zero, dberr.ErrNotFound
	}
	return doc, nil
}

func (r *Repository[T]) Find(_ context.Context, offset, limit int) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]T, 0, len(r.docs))
	for _, doc := range r.docs {
		all = append(all, doc)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].DocumentKey() != all[j].DocumentKey() {
			return all[i].DocumentKey() < all[j].DocumentKey()
		}
		return all[i].DocumentID() < all[j].DocumentID()
	})

	if offset >= len(all) {
		return []T{}, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}

func (r *Repository[T]) Count(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs), nil
}

func (r *Repository[T]) Insert(_ context.Context, doc T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.DocumentID()] = doc
	r.writes++
	return nil
}

func (r *Repository[T]) Replace(_ context.Context, doc T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[doc.DocumentID()]; !ok {
		return dberr.ErrNotFound
	}
	r.docs[doc.DocumentID()] = doc
	r.writes++
	return nil
}

func (r *Repository[T]) Delete(_ context.Context, id string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		var zero T
		return zero, dberr.ErrNotFound
	}
	delete(r.docs, id)
	r.writes++
	return doc, nil
}

// Len reports how many documents are stored.
func (r *Repository[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs)
}

// Writes reports how many successful Insert, Replace and Delete calls were made.
func (r *Repository[T]) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}
