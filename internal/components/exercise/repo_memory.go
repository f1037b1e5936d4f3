package exercise

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryRepo keeps records in process. Used by tests and STORE_DRIVER=memory.
type memoryRepo struct {
	mu      sync.RWMutex
	records []Record
	now     func() time.Time
}

func NewMemoryRepo() Repository {
	return &memoryRepo{now: time.Now}
}

func (r *memoryRepo) Create(_ context.Context, req CreateRecordIn) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	record := Record{
		ID:              uuid.NewString(),
		PetID:           req.PetID,
		Date:            req.Date,
		ActivityType:    req.ActivityType,
		DurationMinutes: req.minutes(),
		DistanceMiles:   req.DistanceMiles,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	r.records = append(r.records, record)
	return &record, nil
}

func (r *memoryRepo) List(_ context.Context, query ListQuery) ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Record{}
	for _, record := range r.records {
		if query.PetID != "" && record.PetID != query.PetID {
			continue
		}
		out = append(out, record)
	}

	// newest session first, then newest insert
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	record := r.records[i]
	return &record, nil
}

func (r *memoryRepo) Update(_ context.Context, id string, req UpdateRecordIn) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	if !req.Empty() {
		req.Apply(&r.records[i])
		r.records[i].UpdatedAt = r.now().UTC()
	}
	record := r.records[i]
	return &record, nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	r.records = append(r.records[:i], r.records[i+1:]...)
	return true, nil
}

func (r *memoryRepo) Ping(context.Context) error {
	return nil
}

// indexOf expects the caller to hold the lock.
func (r *memoryRepo) indexOf(id string) int {
	for i := range r.records {
		if r.records[i].ID == id {
			return i
		}
	}
	return -1
}
