package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/goliatone/go-crm-store/apperror"
	"github.com/goliatone/go-crm-store/cache"
	"github.com/goliatone/go-crm-store/repository"
)

// Store is the persistence contract the service delegates to. It is
// implemented by repository.Repository[T] and faked in tests.
type Store[T any] interface {
	Create(ctx context.Context, record T, spec *cache.Spec) (T, error)
	FindByID(ctx context.Context, id int64, spec *cache.Spec) (T, error)
	Update(ctx context.Context, id int64, fields map[string]any, spec *cache.Spec) (T, error)
	Delete(ctx context.Context, id int64, spec *cache.Spec) (bool, error)
	FindAll(ctx context.Context, spec *cache.Spec) ([]T, error)
	FindPage(ctx context.Context, skip, take int, spec *cache.Spec) (repository.Page[T], error)
}

// Validatable is implemented by records that carry field invariants. The
// service checks it before persisting a new record.
type Validatable interface {
	Validate() error
}

// Service is the orchestration layer over a Store: pure delegation with
// structured logging around each call and uniform error wrapping. Errors
// already belonging to the closed set pass through unchanged; anything else
// wraps as an operation error.
type Service[T any] struct {
	store  Store[T]
	log    *slog.Logger
	entity string
}

// New constructs a service for the given entity name. The logger is used as
// the base for per-call logging; pass slog.Default() when in doubt.
func New[T any](store Store[T], entity string, log *slog.Logger) *Service[T] {
	if log == nil {
		log = slog.Default()
	}
	return &Service[T]{
		store:  store,
		log:    log.With("component", "service", "entity", entity),
		entity: entity,
	}
}

// Save validates (when the record supports it) and persists a new record.
func (s *Service[T]) Save(ctx context.Context, record T, spec *cache.Spec) (T, error) {
	var zero T
	log := s.opLogger("save", spec)
	log.InfoContext(ctx, "saving record")

	if v, ok := any(record).(Validatable); ok {
		if err := v.Validate(); err != nil {
			log.WarnContext(ctx, "record failed validation", "error", err)
			return zero, apperror.Operation(err, "invalid "+s.entity)
		}
	}

	created, err := s.store.Create(ctx, record, spec)
	if err != nil {
		return zero, s.fail(ctx, log, "saving record", err)
	}
	log.InfoContext(ctx, "record saved")
	return created, nil
}

// FindByID returns the record with the given id.
func (s *Service[T]) FindByID(ctx context.Context, id int64, spec *cache.Spec) (T, error) {
	var zero T
	log := s.opLogger("find_by_id", spec).With("id", id)
	log.DebugContext(ctx, "finding record")

	record, err := s.store.FindByID(ctx, id, spec)
	if err != nil {
		return zero, s.fail(ctx, log, "finding record", err)
	}
	log.DebugContext(ctx, "record found")
	return record, nil
}

// Update applies the given fields to the record with the given id.
func (s *Service[T]) Update(ctx context.Context, id int64, fields map[string]any, spec *cache.Spec) (T, error) {
	var zero T
	log := s.opLogger("update", spec).With("id", id, "fields", len(fields))
	log.InfoContext(ctx, "updating record")

	record, err := s.store.Update(ctx, id, fields, spec)
	if err != nil {
		return zero, s.fail(ctx, log, "updating record", err)
	}
	log.InfoContext(ctx, "record updated")
	return record, nil
}

// Delete removes the record with the given id.
func (s *Service[T]) Delete(ctx context.Context, id int64, spec *cache.Spec) (bool, error) {
	log := s.opLogger("delete", spec).With("id", id)
	log.InfoContext(ctx, "deleting record")

	ok, err := s.store.Delete(ctx, id, spec)
	if err != nil {
		return false, s.fail(ctx, log, "deleting record", err)
	}
	log.InfoContext(ctx, "record deleted")
	return ok, nil
}

// FindAll returns the entire collection.
func (s *Service[T]) FindAll(ctx context.Context, spec *cache.Spec) ([]T, error) {
	log := s.opLogger("find_all", spec)
	log.DebugContext(ctx, "finding all records")

	records, err := s.store.FindAll(ctx, spec)
	if err != nil {
		return nil, s.fail(ctx, log, "finding all records", err)
	}
	log.DebugContext(ctx, "records found", "count", len(records))
	return records, nil
}

// FindPage returns one page of records plus the total count.
func (s *Service[T]) FindPage(ctx context.Context, skip, take int, spec *cache.Spec) (repository.Page[T], error) {
	log := s.opLogger("find_page", spec).With("skip", skip, "take", take)
	log.DebugContext(ctx, "finding page")

	page, err := s.store.FindPage(ctx, skip, take, spec)
	if err != nil {
		return repository.Page[T]{}, s.fail(ctx, log, "finding page", err)
	}
	log.DebugContext(ctx, "page found", "count", len(page.Items), "total", page.Total)
	return page, nil
}

// opLogger tags the base logger with the operation, a correlation id, and
// the cache key when one is in play.
func (s *Service[T]) opLogger(op string, spec *cache.Spec) *slog.Logger {
	log := s.log.With("op", op, "call_id", uuid.NewString())
	if spec != nil {
		log = log.With("cache_key", spec.Key)
	}
	return log
}

// fail logs the failure and re-raises it typed. The service never swallows
// errors.
func (s *Service[T]) fail(ctx context.Context, log *slog.Logger, msg string, err error) error {
	log.ErrorContext(ctx, msg, "error", err)
	if apperror.IsTyped(err) {
		return err
	}
	return apperror.Operation(err, msg)
}
