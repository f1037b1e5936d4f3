//go:build integration

package exercise

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mongocontainer "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func newMongoTestDB(t *testing.T) *mongo.Database {
	t.Helper()
	ctx := context.Background()

	mc, err := mongocontainer.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = mc.Terminate(ctx) })

	uri, err := mc.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	db := client.Database("tailtrack")
	require.NoError(t, EnsureIndexes(ctx, db))
	// a second run must be a no-op
	require.NoError(t, EnsureIndexes(ctx, db))
	return db
}

func TestMongoRepoIndexes(t *testing.T) {
	ctx := context.Background()
	db := newMongoTestDB(t)

	specs, err := db.Collection(mongoCollection).Indexes().ListSpecifications(ctx)
	require.NoError(t, err)

	names := make([]string, 0, len(specs))
	for _, s := range specs {
		names = append(names, s.Name)
	}
	assert.ElementsMatch(t, []string{"_id_", "petId_1", "date_-1_createdAt_-1"}, names)
}

func TestMongoRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewMongoRepo(newMongoTestDB(t))
	require.NoError(t, repo.Ping(ctx))

	date := NewTimestamp(time.Date(2025, time.March, 9, 8, 0, 0, 123456789, time.UTC))
	created, err := repo.Create(ctx, CreateRecordIn{
		PetID:           "demo-pet-1",
		Date:            date,
		ActivityType:    ActivityWalk,
		DurationMinutes: minutes(30),
		DistanceMiles:   3,
		Notes:           "loop",
	})
	require.NoError(t, err)
	assert.Len(t, created.ID, 24)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt), "createdAt %s != %s", created.CreatedAt, got.CreatedAt)
	assert.True(t, created.UpdatedAt.Equal(got.UpdatedAt), "updatedAt %s != %s", created.UpdatedAt, got.UpdatedAt)
	assert.True(t, created.Date.Equal(got.Date.Time))
	assert.Equal(t, "loop", got.Notes)

	notes := ""
	updated, err := repo.Update(ctx, created.ID, UpdateRecordIn{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "", updated.Notes)
	assert.Equal(t, 30.0, updated.DurationMinutes)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	unchanged, err := repo.Update(ctx, created.ID, UpdateRecordIn{})
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.Equal(unchanged.UpdatedAt))

	ok, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	duration := 5.0
	_, err = repo.Update(ctx, created.ID, UpdateRecordIn{DurationMinutes: &duration})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMongoRepoListOrdering(t *testing.T) {
	ctx := context.Background()
	repo := NewMongoRepo(newMongoTestDB(t))

	day := func(d int) Timestamp {
		return NewTimestamp(time.Date(2025, time.March, d, 9, 0, 0, 0, time.UTC))
	}
	create := func(pet string, date Timestamp, activity ActivityType) *Record {
		t.Helper()
		record, err := repo.Create(ctx, CreateRecordIn{PetID: pet, Date: date, ActivityType: activity, DurationMinutes: minutes(10)})
		require.NoError(t, err)
		// createdAt is millisecond precision; keep same-day inserts apart
		time.Sleep(5 * time.Millisecond)
		return record
	}

	older := create("a", day(1), ActivityWalk)
	first := create("a", day(3), ActivityRun)
	second := create("a", day(3), ActivityPlay)
	create("b", day(5), ActivitySwim)

	records, err := repo.List(ctx, ListQuery{PetID: "a"})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{second.ID, first.ID, older.ID}, []string{records[0].ID, records[1].ID, records[2].ID})

	all, err := repo.List(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "b", all[0].PetID)

	none, err := repo.List(ctx, ListQuery{PetID: "nobody"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
