// Package service exposes one facade per entity type. Every operation runs in
// exactly one gateway scope: ReadWrite for mutations, ReadOnly for reads.
package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/light-bringer/inventory-service/internal/app/inventory/contracts"
	"github.com/light-bringer/inventory-service/internal/app/inventory/domain"
	"github.com/light-bringer/inventory-service/internal/pkg/cache"
	"github.com/light-bringer/inventory-service/internal/pkg/clock"
)

// Cache is the read-through cache used by FindOne. Implemented by cache.Cache.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

// Deps holds the collaborators shared by every facade. Cache may be nil.
type Deps struct {
	Store contracts.Store
	Clock clock.Clock
	Cache Cache
	Log   zerolog.Logger
}

type base struct {
	store contracts.Store
	clock clock.Clock
	cache Cache
	log   zerolog.Logger
}

func newBase(deps Deps, component string) base {
	return base{
		store: deps.Store,
		clock: deps.Clock,
		cache: deps.Cache,
		log:   deps.Log.With().Str("component", component).Logger(),
	}
}

// write runs fn in a read-write scope and drops the cache entries of every row
// fn touched before the scope commits.
func (b *base) write(ctx context.Context, fn func(ctx context.Context, tx contracts.Tx) error) error {
	return b.store.ReadWrite(ctx, func(ctx context.Context, tx contracts.Tx) error {
		itx := newInvalidatingTx(tx)
		if err := fn(ctx, itx); err != nil {
			return err
		}
		return b.invalidate(ctx, itx.keys())
	})
}

func (b *base) invalidate(ctx context.Context, keys []string) error {
	if b.cache == nil || len(keys) == 0 {
		return nil
	}
	if err := b.cache.Delete(ctx, keys...); err != nil {
		return err
	}
	b.log.Debug().Strs("keys", keys).Msg("Invalidated cache entries")
	return nil
}

func (b *base) logChanges(id int64, ct *domain.ChangeTracker) {
	b.log.Debug().Int64("id", id).Strs("changed", ct.DirtyFields()).Msg("Applying partial update")
}

// findOne reads one entity through the cache. A missing entity yields nil, nil
// and is not cached. Cache failures fall back to the store.
func findOne[T any](ctx context.Context, b *base, kind domain.Kind, id int64, load func(ctx context.Context, tx contracts.ReadTx) (*T, error)) (*T, error) {
	key := cache.Key(string(kind), id)

	if b.cache != nil {
		var cached T
		found, err := b.cache.Get(ctx, key, &cached)
		if err != nil {
			b.log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		} else if found {
			return &cached, nil
		}
	}

	var result *T
	err := b.store.ReadOnly(ctx, func(ctx context.Context, tx contracts.ReadTx) error {
		var err error
		result, err = load(ctx, tx)
		return err
	})
	if domain.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if b.cache != nil {
		if err := b.cache.Set(ctx, key, result); err != nil {
			b.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
		}
	}
	return result, nil
}

// checkCreate rejects a new entity that already carries an id.
func checkCreate(kind domain.Kind, id int64) error {
	if id != 0 {
		return &domain.ConflictError{Entity: kind, Reason: domain.ReasonIDExists}
	}
	return nil
}

// checkUpdate rejects a payload without an id or with an id other than the addressed one.
func checkUpdate(kind domain.Kind, id, payloadID int64) error {
	if payloadID == 0 {
		return &domain.ConflictError{Entity: kind, Reason: domain.ReasonIDNull}
	}
	if payloadID != id {
		return &domain.ConflictError{Entity: kind, Reason: domain.ReasonIDInvalid}
	}
	return nil
}

// deleteIfExists removes the row unless it is already gone. before runs first
// when the row exists.
func deleteIfExists(ctx context.Context, tx contracts.Tx, kind domain.Kind, id int64, before func() error) error {
	ok, err := tx.Exists(ctx, kind, id)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if before != nil {
		if err := before(); err != nil {
			return err
		}
	}
	return tx.Delete(ctx, kind, id)
}
