// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package referencetest provides an in-memory reference.Repository for tests.
package referencetest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/taibuivan/recursos/internal/catalog/reference"
	"github.com/taibuivan/recursos/internal/platform/dberr"
)

// Repository keeps every collection in a map guarded by a mutex.
type Repository struct {
	mu   sync.Mutex
	data map[string]map[string]reference.Entity
}

// New returns an empty repository.
func New() *Repository {
	return &Repository{data: make(map[string]map[string]reference.Entity)}
}

// Seed stores entities directly, bypassing validation.
func (r *Repository) Seed(kind *reference.Kind, entities ...reference.Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entity := range entities {
		r.bucket(kind)[entity.ID] = entity
	}
}

func (r *Repository) bucket(kind *reference.Kind) map[string]reference.Entity {
	bucket, ok := r.data[kind.Name()]
	if !ok {
		bucket = make(map[string]reference.Entity)
		r.data[kind.Name()] = bucket
	}
	return bucket
}

func (r *Repository) List(_ context.Context, kind *reference.Kind, offset, limit int) ([]reference.Entity, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]reference.Entity, 0, len(r.bucket(kind)))
	for _, entity := range r.bucket(kind) {
		all = append(all, entity)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Nombre != all[j].Nombre {
			return all[i].Nombre < all[j].Nombre
		}
		return all[i].ID < all[j].ID
	})

	total := len(all)
	if offset >= total {
		return []reference.Entity{}, total, nil
	}
	end := min(offset+limit, total)
	return all[offset:end], total, nil
}

func (r *Repository) Get(_ context.Context, kind *reference.Kind, id string) (reference.Entity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entity, ok := r.bucket(kind)[id]
	if !ok {
		return reference.Entity{}, dberr.ErrNotFound
	}
	return entity, nil
}

func (r *Repository) NameTaken(_ context.Context, kind *reference.Kind, name, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, entity := range r.bucket(kind) {
		if id != excludeID && strings.EqualFold(entity.Nombre, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *Repository) Create(_ context.Context, kind *reference.Kind, entity reference.Entity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bucket(kind)[entity.ID] = entity
	return nil
}

func (r *Repository) Update(_ context.Context, kind *reference.Kind, entity reference.Entity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bucket(kind)[entity.ID]; !ok {
		return dberr.ErrNotFound
	}
	r.bucket(kind)[entity.ID] = entity
	return nil
}

// Len returns the number of stored entities of kind.
func (r *Repository) Len(kind *reference.Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bucket(kind))
}
