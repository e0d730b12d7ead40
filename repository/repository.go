package repository

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-crm-store/apperror"
	"github.com/goliatone/go-crm-store/cache"
	"github.com/goliatone/go-crm-store/codec"
)

// Handlers is the entity descriptor driving the generic repository: how to
// allocate a record and how to reach its primary key. Supplying it per
// concrete entity keeps the generic code free of runtime reflection.
type Handlers[T any] struct {
	NewRecord func() T
	GetID     func(T) int64
}

// Page bundles one page of records with the total collection count. When
// cached, both travel as a single blob, so Total reflects the count at cache
// population time.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// Repository provides CRUD and pagination over one entity type with per-call
// opt-in cache-aside semantics: a non-nil *cache.Spec makes reads consult the
// cache before the store and repopulate it on miss, and makes writes keep the
// cached entry coherent with the just-committed state.
type Repository[T any] struct {
	db       *bun.DB
	cache    cache.Port
	handlers Handlers[T]
}

// New constructs a repository over db and port for the entity described by
// handlers. Both db and port are externally owned; the repository neither
// pools nor retries connections.
func New[T any](db *bun.DB, port cache.Port, handlers Handlers[T]) *Repository[T] {
	return &Repository[T]{db: db, cache: port, handlers: handlers}
}

// DB exposes the backing store handle for entity-specific queries.
func (r *Repository[T]) DB() *bun.DB { return r.db }

// Cache exposes the cache port for entity-specific queries.
func (r *Repository[T]) Cache() cache.Port { return r.cache }

// Handlers exposes the entity descriptor.
func (r *Repository[T]) Handlers() Handlers[T] { return r.handlers }

// Create inserts record into the backing store and commits. On success, if
// spec is given, the inserted record is serialized and cached; a cache
// failure at that point surfaces to the caller. Exactly one store round
// trip, at most one cache write, cache strictly after commit.
func (r *Repository[T]) Create(ctx context.Context, record T, spec *cache.Spec) (T, error) {
	var zero T
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(record).Exec(ctx)
		return err
	})
	if err != nil {
		return zero, apperror.Persistence(err, "creating record")
	}
	if err := r.populate(ctx, record, spec); err != nil {
		return zero, err
	}
	return record, nil
}

// FindByID returns the record with the given primary key. With a spec, the
// cache is consulted first; a hit deserializes and returns without touching
// the store, a miss falls through to the store and repopulates the cache.
func (r *Repository[T]) FindByID(ctx context.Context, id int64, spec *cache.Spec) (T, error) {
	var zero T
	if spec != nil {
		payload, ok, err := r.cache.Get(ctx, spec.Key)
		if err != nil {
			return zero, err
		}
		if ok {
			return codec.Decode[T](payload)
		}
	}

	record := r.handlers.NewRecord()
	err := r.db.NewSelect().Model(record).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, apperror.NotFound("record with id %d not found", id)
	}
	if err != nil {
		return zero, apperror.Persistence(err, "finding record by id")
	}
	if err := r.populate(ctx, record, spec); err != nil {
		return zero, err
	}
	return record, nil
}

// Update issues a bulk update filtered by id carrying only the provided
// fields. Zero rows affected rolls back and reports NotFound. On success the
// record is re-read from the store (cache bypassed) and, with a spec, the
// cache is repopulated from that fresh read, so it never holds stale data
// after a successful update.
func (r *Repository[T]) Update(ctx context.Context, id int64, fields map[string]any, spec *cache.Spec) (T, error) {
	var zero T
	if len(fields) == 0 {
		return zero, apperror.Persistence(nil, "update requires at least one field")
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		query := tx.NewUpdate().Model(r.handlers.NewRecord()).Where("id = ?", id)
		for _, column := range sortedColumns(fields) {
			query = query.Set("? = ?", bun.Ident(column), fields[column])
		}
		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperror.NotFound("record with id %d not found", id)
		}
		return nil
	})
	if err != nil {
		if apperror.IsTyped(err) {
			return zero, err
		}
		return zero, apperror.Persistence(err, "updating record")
	}

	refreshed, err := r.FindByID(ctx, id, nil)
	if err != nil {
		return zero, err
	}
	if err := r.populate(ctx, refreshed, spec); err != nil {
		return zero, err
	}
	return refreshed, nil
}

// Delete removes the record with the given primary key. Zero rows affected
// rolls back and reports NotFound; otherwise the commit is followed by a
// cache delete when a spec is given.
func (r *Repository[T]) Delete(ctx context.Context, id int64, spec *cache.Spec) (bool, error) {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().Model(r.handlers.NewRecord()).Where("id = ?", id).Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperror.NotFound("record with id %d not found", id)
		}
		return nil
	})
	if err != nil {
		if apperror.IsTyped(err) {
			return false, err
		}
		return false, apperror.Persistence(err, "deleting record")
	}

	if spec != nil {
		if err := r.cache.Delete(ctx, spec.Key); err != nil {
			return false, err
		}
	}
	return true, nil
}

// FindAll returns the entire collection, cache-aside over a single list blob
// keyed by the spec. An empty table yields an empty list, not an error.
func (r *Repository[T]) FindAll(ctx context.Context, spec *cache.Spec) ([]T, error) {
	if spec != nil {
		payload, ok, err := r.cache.Get(ctx, spec.Key)
		if err != nil {
			return nil, err
		}
		if ok {
			return codec.DecodeList[T](payload)
		}
	}

	records := []T{}
	if err := r.db.NewSelect().Model(&records).Order("id ASC").Scan(ctx); err != nil {
		return nil, apperror.Persistence(err, "finding all records")
	}
	if spec != nil {
		payload, err := codec.EncodeList(records)
		if err != nil {
			return nil, err
		}
		if err := r.cache.Set(ctx, spec.Key, payload, spec.TTL); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// FindPage returns records skip..skip+take together with the total count.
// The page and the count are cached and retrieved atomically as one blob; a
// cached Total is the count at population time, not necessarily current
// state.
func (r *Repository[T]) FindPage(ctx context.Context, skip, take int, spec *cache.Spec) (Page[T], error) {
	var zero Page[T]
	if spec != nil {
		payload, ok, err := r.cache.Get(ctx, spec.Key)
		if err != nil {
			return zero, err
		}
		if ok {
			return codec.Decode[Page[T]](payload)
		}
	}

	records := []T{}
	total, err := r.db.NewSelect().Model(&records).Order("id ASC").Offset(skip).Limit(take).ScanAndCount(ctx)
	if err != nil {
		return zero, apperror.Persistence(err, "paginating records")
	}
	page := Page[T]{Items: records, Total: total}
	if spec != nil {
		payload, err := codec.Encode(page)
		if err != nil {
			return zero, err
		}
		if err := r.cache.Set(ctx, spec.Key, payload, spec.TTL); err != nil {
			return zero, err
		}
	}
	return page, nil
}

// populate serializes record and writes it at the spec's key. Callers invoke
// it strictly after the store write or read it reflects.
func (r *Repository[T]) populate(ctx context.Context, record T, spec *cache.Spec) error {
	if spec == nil {
		return nil
	}
	payload, err := codec.Encode(record)
	if err != nil {
		return err
	}
	return r.cache.Set(ctx, spec.Key, payload, spec.TTL)
}

// cachedList is the shared cache-aside shape for entity-specific collection
// finders: consult the cache, fall through to query, repopulate.
func cachedList[T any](ctx context.Context, r *Repository[T], spec *cache.Spec, query func(context.Context) ([]T, error)) ([]T, error) {
	if spec != nil {
		payload, ok, err := r.cache.Get(ctx, spec.Key)
		if err != nil {
			return nil, err
		}
		if ok {
			return codec.DecodeList[T](payload)
		}
	}

	records, err := query(ctx)
	if err != nil {
		return nil, err
	}
	if spec != nil {
		payload, err := codec.EncodeList(records)
		if err != nil {
			return nil, err
		}
		if err := r.cache.Set(ctx, spec.Key, payload, spec.TTL); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// cachedOne is the shared cache-aside shape for entity-specific single-record
// finders.
func cachedOne[T any](ctx context.Context, r *Repository[T], spec *cache.Spec, query func(context.Context) (T, error)) (T, error) {
	var zero T
	if spec != nil {
		payload, ok, err := r.cache.Get(ctx, spec.Key)
		if err != nil {
			return zero, err
		}
		if ok {
			return codec.Decode[T](payload)
		}
	}

	record, err := query(ctx)
	if err != nil {
		return zero, err
	}
	if err := r.populate(ctx, record, spec); err != nil {
		return zero, err
	}
	return record, nil
}

func sortedColumns(fields map[string]any) []string {
	columns := make([]string, 0, len(fields))
	for column := range fields {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	return columns
}
