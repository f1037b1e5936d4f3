package exercise

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

const recordColumns = `id, pet_id, date, activity_type, duration_minutes, distance_miles, notes, created_at, updated_at`

type (
	// Repository is the record store. Implementations: Postgres, MongoDB, memory.
	Repository interface {
		Create(ctx context.Context, req CreateRecordIn) (*Record, error)
		List(ctx context.Context, query ListQuery) ([]Record, error)
		GetByID(ctx context.Context, id string) (*Record, error)
		Update(ctx context.Context, id string, req UpdateRecordIn) (*Record, error)
		Delete(ctx context.Context, id string) (bool, error)
		Ping(ctx context.Context) error
	}

	repo struct {
		pool *pgxpool.Pool
	}
)

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repo{pool: pool}
}

// EnsureSchema creates the records table and its indexes if they are missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure exercise schema: %w", err)
	}
	return nil
}

func (r *repo) Create(ctx context.Context, req CreateRecordIn) (*Record, error) {
	stmt := `
	INSERT INTO exercise_records (
		id, pet_id, date, activity_type, duration_minutes, distance_miles, notes
	)
	VALUES (
		$1, $2, $3, $4, $5, $6, $7
	)
	RETURNING ` + recordColumns

	return scanRecord(r.pool.QueryRow(
		ctx,
		stmt,
		uuid.New(),
		req.PetID,
		req.Date.Time,
		string(req.ActivityType),
		req.minutes(),
		req.DistanceMiles,
		req.Notes,
	))
}

// List returns records ordered by date DESC, then created_at DESC.
// An empty PetID returns every record.
func (r *repo) List(ctx context.Context, query ListQuery) ([]Record, error) {
	whereClause := ""
	args := []interface{}{}

	if query.PetID != "" {
		whereClause = "WHERE pet_id = $1"
		args = append(args, query.PetID)
	}

	stmt := fmt.Sprintf(`
	SELECT %s
	FROM exercise_records
	%s
	ORDER BY date DESC, created_at DESC`, recordColumns, whereClause)

	rows, err := r.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *repo) GetByID(ctx context.Context, id string) (*Record, error) {
	recordID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	stmt := `
	SELECT ` + recordColumns + `
	FROM exercise_records
	WHERE id = $1`

	return scanRecord(r.pool.QueryRow(ctx, stmt, recordID))
}

// Update performs a partial update by building SET clauses only for non-nil fields.
// If no fields are provided it returns the current record.
func (r *repo) Update(ctx context.Context, id string, req UpdateRecordIn) (*Record, error) {
	recordID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	if req.Empty() {
		return r.GetByID(ctx, id)
	}

	setParts := []string{}
	args := []interface{}{recordID}
	argIndex := 2

	set := func(column string, value interface{}) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if req.PetID != nil {
		set("pet_id", *req.PetID)
	}
	if req.Date != nil {
		set("date", req.Date.Time)
	}
	if req.ActivityType != nil {
		set("activity_type", string(*req.ActivityType))
	}
	if req.DurationMinutes != nil {
		set("duration_minutes", *req.DurationMinutes)
	}
	if req.DistanceMiles != nil {
		set("distance_miles", *req.DistanceMiles)
	}
	if req.Notes != nil {
		set("notes", *req.Notes)
	}

	setParts = append(setParts, "updated_at = NOW()")

	stmt := fmt.Sprintf(`
	UPDATE exercise_records
	SET %s
	WHERE id = $1
	RETURNING %s`,
		strings.Join(setParts, ", "), recordColumns)

	return scanRecord(r.pool.QueryRow(ctx, stmt, args...))
}

func (r *repo) Delete(ctx context.Context, id string) (bool, error) {
	recordID, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}

	result, err := r.pool.Exec(ctx, `DELETE FROM exercise_records WHERE id = $1`, recordID)
	if err != nil {
		return false, err
	}

	return result.RowsAffected() > 0, nil
}

func (r *repo) Ping(ctx context.Context) error {
	var res int
	if err := r.pool.QueryRow(ctx, "SELECT 1").Scan(&res); err != nil {
		return err
	}
	if res != 1 {
		return fmt.Errorf("unexpected ping result %d", res)
	}
	return nil
}

func scanRecord(row pgx.Row) (*Record, error) {
	var (
		record       Record
		id           uuid.UUID
		date         time.Time
		activityType string
	)
	err := row.Scan(
		&id,
		&record.PetID,
		&date,
		&activityType,
		&record.DurationMinutes,
		&record.DistanceMiles,
		&record.Notes,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	record.ID = id.String()
	record.Date = NewTimestamp(date)
	record.ActivityType = ActivityType(activityType)
	return &record, nil
}
