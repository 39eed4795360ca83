package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/neet-pulse/internal/domain"
	"github.com/phrazzld/neet-pulse/internal/events"
	"github.com/phrazzld/neet-pulse/internal/platform/logger"
	"github.com/phrazzld/neet-pulse/internal/store"
)

// Storage keys.
const (
	RecordsKey = "neet_pulse_tests"
	TargetKey  = "neet_target_score"
)

// RecordService manages the persisted test records and target score.
type RecordService interface {
	// ListAll returns every stored record, newest first. Missing, unreadable
	// or undecodable storage yields an empty slice.
	ListAll(ctx context.Context) []domain.TestRecord

	// Append stores record and returns the full collection, newest first.
	// Records sharing a date keep their insertion order.
	Append(ctx context.Context, record domain.TestRecord) ([]domain.TestRecord, error)

	// Add builds a record from form input with a fresh ID and appends it.
	Add(ctx context.Context, input domain.RecordInput) (domain.TestRecord, []domain.TestRecord, error)

	// Remove deletes the record with id and returns the remaining records.
	// An unknown id leaves the collection unchanged and is not an error.
	Remove(ctx context.Context, id string) ([]domain.TestRecord, error)

	// TargetScore returns the stored target, or domain.DefaultTargetScore.
	TargetScore(ctx context.Context) int

	// SetTargetScore stores a target in [0, domain.MaxScoreTotal].
	SetTargetScore(ctx context.Context, target int) error

	// Summary computes dashboard figures from the stored records and target.
	Summary(ctx context.Context) domain.Summary
}

// recordServiceImpl implements RecordService.
type recordServiceImpl struct {
	kv      store.KeyValueStore
	newID   func() string
	emitter events.Emitter
	logger  *slog.Logger

	// mu serialises read-modify-write cycles on the collection.
	mu sync.Mutex
}

// Option configures the record service.
type Option func(*recordServiceImpl)

// WithIDGenerator replaces the UUID generator used by Add.
func WithIDGenerator(fn func() string) Option {
	return func(s *recordServiceImpl) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithEmitter publishes a change event after every successful write.
func WithEmitter(e events.Emitter) Option {
	return func(s *recordServiceImpl) {
		s.emitter = e
	}
}

// NewRecordService creates a RecordService writing through kv.
// It returns an error if kv is nil.
func NewRecordService(kv store.KeyValueStore, log *slog.Logger, opts ...Option) (RecordService, error) {
	if kv == nil {
		return nil, &RecordServiceError{
			Operation: "create_service",
			Message:   "key-value store cannot be nil",
		}
	}
	if log == nil {
		log = slog.Default()
	}

	s := &recordServiceImpl{
		kv:     kv,
		newID:  uuid.NewString,
		logger: log.With(slog.String("component", "record_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ListAll implements RecordService.
func (s *recordServiceImpl) ListAll(ctx context.Context) []domain.TestRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// load reads and decodes the collection. Callers hold mu.
func (s *recordServiceImpl) load(ctx context.Context) []domain.TestRecord {
	log := logger.FromContextOrDefault(ctx, s.logger)

	raw, err := s.kv.Get(ctx, RecordsKey)
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.ErrorContext(ctx, "failed to read records, treating as empty",
				slog.String("error", err.Error()))
		}
		return []domain.TestRecord{}
	}

	records, err := decodeRecords(raw)
	if err != nil {
		log.ErrorContext(ctx, "failed to parse stored records, treating as empty",
			slog.String("error", err.Error()),
			slog.Int("value_length", len(raw)))
		return []domain.TestRecord{}
	}
	return records
}

// save writes the collection. Callers hold mu.
func (s *recordServiceImpl) save(ctx context.Context, operation string, records []domain.TestRecord) error {
	raw, err := encodeRecords(records)
	if err != nil {
		return NewRecordServiceError(operation, "failed to encode records", err)
	}
	if err := s.kv.Set(ctx, RecordsKey, raw); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).ErrorContext(ctx, "failed to persist records",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
		return NewRecordServiceError(operation, "failed to persist records", ensureWriteFailed(err))
	}
	return nil
}

// Append implements RecordService.
func (s *recordServiceImpl) Append(ctx context.Context, record domain.TestRecord) ([]domain.TestRecord, error) {
	if err := record.Validate(); err != nil {
		return nil, NewRecordServiceError("append", "invalid record", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load(ctx)
	if slices.ContainsFunc(records, func(r domain.TestRecord) bool { return r.ID == record.ID }) {
		return nil, NewRecordServiceError("append", record.ID, ErrDuplicateRecord)
	}

	updated := make([]domain.TestRecord, 0, len(records)+1)
	updated = append(updated, records...)
	updated = append(updated, record)
	domain.SortByDateDesc(updated)

	if err := s.save(ctx, "append", updated); err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).InfoContext(ctx, "record appended",
		slog.String("record_id", record.ID),
		slog.String("date", record.Date),
		slog.Int("total", record.Total),
		slog.Int("count", len(updated)))
	s.emit(ctx, events.TypeRecordAdded, events.RecordPayload{
		RecordID: record.ID,
		Date:     record.Date,
		Total:    record.Total,
		Count:    len(updated),
	})
	return updated, nil
}

// Add implements RecordService.
func (s *recordServiceImpl) Add(
	ctx context.Context,
	input domain.RecordInput,
) (domain.TestRecord, []domain.TestRecord, error) {
	record, err := domain.NewTestRecord(s.newID(), input)
	if err != nil {
		return domain.TestRecord{}, nil, NewRecordServiceError("add", "invalid input", err)
	}
	records, err := s.Append(ctx, record)
	if err != nil {
		return domain.TestRecord{}, nil, err
	}
	return record, records, nil
}

// Remove implements RecordService.
func (s *recordServiceImpl) Remove(ctx context.Context, id string) ([]domain.TestRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load(ctx)
	remaining := slices.DeleteFunc(slices.Clone(records), func(r domain.TestRecord) bool {
		return r.ID == id
	})

	if err := s.save(ctx, "remove", remaining); err != nil {
		return nil, err
	}

	found := len(remaining) < len(records)
	logger.FromContextOrDefault(ctx, s.logger).InfoContext(ctx, "record removed",
		slog.String("record_id", id),
		slog.Bool("found", found),
		slog.Int("count", len(remaining)))
	if found {
		s.emit(ctx, events.TypeRecordRemoved, events.RecordPayload{RecordID: id, Count: len(remaining)})
	}
	return remaining, nil
}

// TargetScore implements RecordService.
func (s *recordServiceImpl) TargetScore(ctx context.Context) int {
	log := logger.FromContextOrDefault(ctx, s.logger)

	raw, err := s.kv.Get(ctx, TargetKey)
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.ErrorContext(ctx, "failed to read target score, using default",
				slog.String("error", err.Error()))
		}
		return domain.DefaultTargetScore
	}

	target, ok := domain.LeadingInt(raw)
	if !ok {
		log.WarnContext(ctx, "stored target score is not a number, using default",
			slog.String("value", raw))
		return domain.DefaultTargetScore
	}
	return target
}

// SetTargetScore implements RecordService.
func (s *recordServiceImpl) SetTargetScore(ctx context.Context, target int) error {
	if target < 0 || target > domain.MaxScoreTotal {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidTarget, target, domain.MaxScoreTotal)
	}
	if err := s.kv.Set(ctx, TargetKey, strconv.Itoa(target)); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).ErrorContext(ctx, "failed to persist target score",
			slog.String("error", err.Error()))
		return NewRecordServiceError("set_target", "failed to persist target score", ensureWriteFailed(err))
	}
	s.emit(ctx, events.TypeTargetUpdated, events.TargetPayload{Target: target})
	return nil
}

// Summary implements RecordService.
func (s *recordServiceImpl) Summary(ctx context.Context) domain.Summary {
	return domain.Summarize(s.ListAll(ctx), s.TargetScore(ctx))
}

// emit publishes a change event. Delivery failures are logged; the write
// they describe has already succeeded.
func (s *recordServiceImpl) emit(ctx context.Context, eventType string, payload interface{}) {
	if s.emitter == nil {
		return
	}
	log := logger.FromContextOrDefault(ctx, s.logger)
	event, err := events.NewChangeEvent(eventType, payload)
	if err != nil {
		log.ErrorContext(ctx, "failed to build change event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}
	if err := s.emitter.Emit(ctx, event); err != nil {
		log.WarnContext(ctx, "change event delivery failed",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
	}
}

// ensureWriteFailed guarantees the returned error matches store.ErrWriteFailed
// even when a backend returned a bare error.
func ensureWriteFailed(err error) error {
	if errors.Is(err, store.ErrWriteFailed) {
		return err
	}
	return errors.Join(store.ErrWriteFailed, err)
}
