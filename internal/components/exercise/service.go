package exercise

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tailtrack/tailtrack/internal/shared/metrics"
	"github.com/tailtrack/tailtrack/internal/summary"
)

type (
	servicer interface {
		CreateRecord(ctx context.Context, req CreateRecordIn) (*Record, error)
		ListRecords(ctx context.Context, query ListQuery) ([]Record, error)
		GetRecord(ctx context.Context, id string) (*Record, error)
		UpdateRecord(ctx context.Context, id string, req UpdateRecordIn) (*Record, error)
		DeleteRecord(ctx context.Context, id string) (bool, error)
		WeeklySummary(ctx context.Context, query ListQuery, now time.Time) (summary.WeeklyTotals, error)
	}

	service struct {
		repo   Repository
		logger zerolog.Logger
	}
)

func NewService(repo Repository, logger zerolog.Logger) servicer {
	return &service{
		repo:   repo,
		logger: logger.With().Str("component", "exercise").Logger(),
	}
}

func (s *service) CreateRecord(ctx context.Context, req CreateRecordIn) (*Record, error) {
	if err := req.Validate(); err != nil {
		observe("create", err)
		return nil, err
	}

	record, err := s.repo.Create(ctx, req)
	observe("create", err)
	if err != nil {
		return nil, err
	}

	metrics.RecordCreated(record.CreatedAt)
	s.logger.Debug().
		Str("id", record.ID).
		Str("pet_id", record.PetID).
		Str("activity_type", string(record.ActivityType)).
		Msg("Record created")
	return record, nil
}

func (s *service) ListRecords(ctx context.Context, query ListQuery) ([]Record, error) {
	records, err := s.repo.List(ctx, query)
	observe("list", err)
	return records, err
}

func (s *service) GetRecord(ctx context.Context, id string) (*Record, error) {
	record, err := s.repo.GetByID(ctx, id)
	observe("get", err)
	return record, err
}

func (s *service) UpdateRecord(ctx context.Context, id string, req UpdateRecordIn) (*Record, error) {
	if err := req.Validate(); err != nil {
		observe("update", err)
		return nil, err
	}

	record, err := s.repo.Update(ctx, id, req)
	observe("update", err)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("id", record.ID).Msg("Record updated")
	return record, nil
}

// DeleteRecord reports false, not an error, when there was nothing to delete.
func (s *service) DeleteRecord(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	switch {
	case err != nil:
		observe("delete", err)
	case !ok:
		metrics.RecordOperation("delete", metrics.OutcomeNotFound)
	default:
		metrics.RecordOperation("delete", metrics.OutcomeOK)
		s.logger.Debug().Str("id", id).Msg("Record deleted")
	}
	return ok, err
}

func (s *service) WeeklySummary(ctx context.Context, query ListQuery, now time.Time) (summary.WeeklyTotals, error) {
	records, err := s.ListRecords(ctx, query)
	if err != nil {
		return summary.WeeklyTotals{}, err
	}
	return summary.Weekly(now, Entries(records)), nil
}

// Entries projects records onto the fields the weekly aggregation reads.
func Entries(records []Record) []summary.Entry {
	entries := make([]summary.Entry, len(records))
	for i, r := range records {
		entries[i] = summary.Entry{
			Date:            r.Date.Time,
			DurationMinutes: r.DurationMinutes,
			DistanceMiles:   r.DistanceMiles,
		}
	}
	return entries
}

func observe(operation string, err error) {
	switch {
	case err == nil:
		metrics.RecordOperation(operation, metrics.OutcomeOK)
	case IsValidation(err):
		metrics.RecordOperation(operation, metrics.OutcomeInvalid)
	case errors.Is(err, ErrNotFound):
		metrics.RecordOperation(operation, metrics.OutcomeNotFound)
	default:
		metrics.RecordOperation(operation, metrics.OutcomeError)
	}
}
