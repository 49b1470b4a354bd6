// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/recursos/internal/platform/apperr"
	"github.com/taibuivan/recursos/internal/platform/ctxutil"
	"github.com/taibuivan/recursos/internal/platform/dberr"
	"github.com/taibuivan/recursos/internal/platform/redis"
	"github.com/taibuivan/recursos/internal/platform/validate"
	"github.com/taibuivan/recursos/pkg/objectid"
	"github.com/taibuivan/recursos/pkg/pagination"
)

// # Service Layer

// lockRetryDelay is how long a writer waits for a concurrent holder of the
// same name before its single retry.
const lockRetryDelay = 50 * time.Millisecond

// Service orchestrates business rules for every reference kind.
type Service struct {
	repo       Repository
	locks      redis.NameLock
	retryDelay time.Duration
}

// NewService constructs a new reference [Service]. A nil lock disables
// cross-instance name locking.
func NewService(repo Repository, locks redis.NameLock) *Service {
	if locks == nil {
		locks = redis.NoopNameLock{}
	}
	return &Service{repo: repo, locks: locks, retryDelay: lockRetryDelay}
}

// WithLockRetry overrides the wait before a busy name lock is retried.
func (service *Service) WithLockRetry(delay time.Duration) *Service {
	service.retryDelay = delay
	return service
}

/*
ValidateName checks a candidate name against the rules of kind.

Returns:
  - string: The trimmed name
  - error: VALIDATION_ERROR describing the failing rule
*/
func ValidateName(kind *Kind, input Input) (string, error) {
	name := strings.TrimSpace(input.Nombre)

	validator := &validate.Validator{}
	validator.Required(FieldNombre, name).MaxLen(FieldNombre, name, kind.MaxLen)

	return name, validator.Err()
}

/*
List returns one page of entities ordered by name.

Returns:
  - []Entity: The page
  - int: Total entities of this kind
  - error: Storage failures
*/
func (service *Service) List(context context.Context, kind *Kind, page pagination.Params) ([]Entity, int, error) {
	return service.repo.List(context, kind, page.Offset(), page.Limit)
}

/*
Get retrieves an entity by identifier.

A malformed identifier is reported exactly like a missing one.
*/
func (service *Service) Get(context context.Context, kind *Kind, id string) (Entity, error) {
	if !objectid.IsValid(id) {
		return Entity{}, apperr.NotFound(kind.NotFound)
	}

	entity, err := service.repo.Get(context, kind, objectid.Normalize(id))
	if dberr.IsNotFound(err) {
		return Entity{}, apperr.NotFound(kind.NotFound)
	}
	return entity, err
}

/*
Create validates and stores a new entity.

Returns:
  - Entity: The stored entity with its new identifier
  - error: VALIDATION_ERROR, ALREADY_EXISTS or storage failures
*/
func (service *Service) Create(context context.Context, kind *Kind, input Input) (Entity, error) {
	name, err := ValidateName(kind, input)
	if err != nil {
		return Entity{}, err
	}

	release, err := service.claim(context, kind, name)
	if err != nil {
		return Entity{}, err
	}
	defer release(context)

	if err := service.ensureUnique(context, kind, name, ""); err != nil {
		return Entity{}, err
	}

	entity := Entity{ID: objectid.New(), Nombre: name}
	if err := service.repo.Create(context, kind, entity); err != nil {
		return Entity{}, err
	}

	ctxutil.GetLogger(context).Info("reference_created",
		slog.String("collection", kind.Name()),
		slog.String("id", entity.ID),
	)

	return entity, nil
}

/*
Update renames an existing entity.

Snapshots of the entity already embedded in records keep the old name.

Returns:
  - Entity: The updated entity
  - error: NOT_FOUND, VALIDATION_ERROR, ALREADY_EXISTS or storage failures
*/
func (service *Service) Update(context context.Context, kind *Kind, id string, input Input) (Entity, error) {
	if !objectid.IsValid(id) {
		return Entity{}, apperr.NotFound(kind.NotFound)
	}
	id = objectid.Normalize(id)

	name, err := ValidateName(kind, input)
	if err != nil {
		return Entity{}, err
	}

	if _, err := service.Get(context, kind, id); err != nil {
		return Entity{}, err
	}

	release, err := service.claim(context, kind, name)
	if err != nil {
		return Entity{}, err
	}
	defer release(context)

	if err := service.ensureUnique(context, kind, name, id); err != nil {
		return Entity{}, err
	}

	entity := Entity{ID: id, Nombre: name}
	if err := service.repo.Update(context, kind, entity); err != nil {
		if dberr.IsNotFound(err) {
			return Entity{}, apperr.NotFound(kind.NotFound)
		}
		return Entity{}, err
	}

	return entity, nil
}

func (service *Service) ensureUnique(context context.Context, kind *Kind, name, excludeID string) error {
	taken, err := service.repo.NameTaken(context, kind, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.AlreadyExists(kind.Exists)
	}
	return nil
}

// claim takes the distributed name lock. A busy lock is retried once after
// retryDelay, since the holder may be renaming away or may fail. If it is still
// held the name is about to exist. Lock backend failures only lose the
// cross-instance guard, so they are logged and the request proceeds.
func (service *Service) claim(ctx context.Context, kind *Kind, name string) (redis.Release, error) {
	release, err := service.locks.Acquire(ctx, kind.Name(), name)
	if errors.Is(err, redis.ErrLocked) {
		timer := time.NewTimer(service.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		release, err = service.locks.Acquire(ctx, kind.Name(), name)
	}

	switch {
	case err == nil:
		return release, nil
	case errors.Is(err, redis.ErrLocked):
		return nil, apperr.AlreadyExists(kind.Exists)
	default:
		ctxutil.GetLogger(ctx).Warn("name_lock_unavailable",
			slog.String("collection", kind.Name()),
			slog.Any("error", err),
		)
		return func(context.Context) {}, nil
	}
}
