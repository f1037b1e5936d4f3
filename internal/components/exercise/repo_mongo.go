package exercise

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const mongoCollection = "exercises"

type (
	mongoRepo struct {
		db   *mongo.Database
		coll *mongo.Collection
	}

	recordDoc struct {
		ID              primitive.ObjectID `bson:"_id,omitempty"`
		PetID           string             `bson:"petId"`
		Date            time.Time          `bson:"date"`
		ActivityType    string             `bson:"activityType"`
		DurationMinutes float64            `bson:"durationMinutes"`
		DistanceMiles   float64            `bson:"distanceMiles"`
		Notes           string             `bson:"notes,omitempty"`
		CreatedAt       time.Time          `bson:"createdAt"`
		UpdatedAt       time.Time          `bson:"updatedAt"`
	}
)

func NewMongoRepo(db *mongo.Database) Repository {
	return &mongoRepo{db: db, coll: db.Collection(mongoCollection)}
}

// EnsureIndexes backs the list query: filter by petId, sort by date then createdAt.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(mongoCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "petId", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("ensure exercise indexes: %w", err)
	}
	return nil
}

func (r *mongoRepo) Create(ctx context.Context, req CreateRecordIn) (*Record, error) {
	doc := newRecordDoc(req, time.Now())

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	doc.ID = id

	record := doc.toRecord()
	return &record, nil
}

func (r *mongoRepo) List(ctx context.Context, query ListQuery) ([]Record, error) {
	filter := bson.M{}
	if query.PetID != "" {
		filter["petId"] = query.PetID
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var docs []recordDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, doc.toRecord())
	}
	return records, nil
}

func (r *mongoRepo) GetByID(ctx context.Context, id string) (*Record, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc recordDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapMongoErr(err)
	}

	record := doc.toRecord()
	return &record, nil
}

func (r *mongoRepo) Update(ctx context.Context, id string, req UpdateRecordIn) (*Record, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	if req.Empty() {
		return r.GetByID(ctx, id)
	}

	set := bson.M{"updatedAt": mongoTime(time.Now())}
	if req.PetID != nil {
		set["petId"] = *req.PetID
	}
	if req.Date != nil {
		set["date"] = mongoTime(req.Date.Time)
	}
	if req.ActivityType != nil {
		set["activityType"] = string(*req.ActivityType)
	}
	if req.DurationMinutes != nil {
		set["durationMinutes"] = *req.DurationMinutes
	}
	if req.DistanceMiles != nil {
		set["distanceMiles"] = *req.DistanceMiles
	}
	if req.Notes != nil {
		set["notes"] = *req.Notes
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc recordDoc
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		return nil, mapMongoErr(err)
	}

	record := doc.toRecord()
	return &record, nil
}

func (r *mongoRepo) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *mongoRepo) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, readpref.Primary())
}

// newRecordDoc builds the inserted document. Times are cut to what BSON keeps
// so the record returned by Create matches a later read.
func newRecordDoc(req CreateRecordIn, now time.Time) recordDoc {
	now = mongoTime(now)
	return recordDoc{
		PetID:           req.PetID,
		Date:            mongoTime(req.Date.Time),
		ActivityType:    string(req.ActivityType),
		DurationMinutes: req.minutes(),
		DistanceMiles:   req.DistanceMiles,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// mongoTime is t at BSON datetime precision (milliseconds, UTC).
func mongoTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func (d recordDoc) toRecord() Record {
	return Record{
		ID:              d.ID.Hex(),
		PetID:           d.PetID,
		Date:            NewTimestamp(d.Date),
		ActivityType:    ActivityType(d.ActivityType),
		DurationMinutes: d.DurationMinutes,
		DistanceMiles:   d.DistanceMiles,
		Notes:           d.Notes,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func mapMongoErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
