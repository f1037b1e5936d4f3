package exercise

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClockedMemoryRepo(start time.Time) *memoryRepo {
	now := start
	return &memoryRepo{now: func() time.Time {
		now = now.Add(time.Second)
		return now
	}}
}

func TestMemoryRepoListOrdering(t *testing.T) {
	ctx := context.Background()
	repo := newClockedMemoryRepo(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))
	day := func(d int) Timestamp {
		return NewTimestamp(time.Date(2025, time.March, d, 9, 0, 0, 0, time.UTC))
	}

	older, err := repo.Create(ctx, CreateRecordIn{PetID: "a", Date: day(1), ActivityType: ActivityWalk})
	require.NoError(t, err)
	sameDayFirst, err := repo.Create(ctx, CreateRecordIn{PetID: "a", Date: day(3), ActivityType: ActivityRun})
	require.NoError(t, err)
	sameDaySecond, err := repo.Create(ctx, CreateRecordIn{PetID: "a", Date: day(3), ActivityType: ActivityPlay})
	require.NoError(t, err)
	_, err = repo.Create(ctx, CreateRecordIn{PetID: "b", Date: day(5), ActivityType: ActivitySwim})
	require.NoError(t, err)

	records, err := repo.List(ctx, ListQuery{PetID: "a"})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, sameDaySecond.ID, records[0].ID)
	assert.Equal(t, sameDayFirst.ID, records[1].ID)
	assert.Equal(t, older.ID, records[2].ID)

	all, err := repo.List(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "b", all[0].PetID)
}

func TestMemoryRepoListEmptyIsNotNil(t *testing.T) {
	records, err := NewMemoryRepo().List(context.Background(), ListQuery{PetID: "nobody"})
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestMemoryRepoUpdate(t *testing.T) {
	ctx := context.Background()
	repo := newClockedMemoryRepo(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))

	created, err := repo.Create(ctx, CreateRecordIn{PetID: "a", Date: NewTimestamp(time.Now()), ActivityType: ActivityWalk, Notes: "x"})
	require.NoError(t, err)

	unchanged, err := repo.Update(ctx, created.ID, UpdateRecordIn{})
	require.NoError(t, err)
	assert.Equal(t, created.UpdatedAt, unchanged.UpdatedAt)

	activity := ActivityHike
	updated, err := repo.Update(ctx, created.ID, UpdateRecordIn{ActivityType: &activity})
	require.NoError(t, err)
	assert.Equal(t, ActivityHike, updated.ActivityType)
	assert.Equal(t, "x", updated.Notes)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, err = repo.Update(ctx, "missing", UpdateRecordIn{ActivityType: &activity})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepoDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	created, err := repo.Create(ctx, CreateRecordIn{PetID: "a", Date: NewTimestamp(time.Now()), ActivityType: ActivityWalk})
	require.NoError(t, err)

	ok, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
