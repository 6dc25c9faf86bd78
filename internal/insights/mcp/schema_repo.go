package mcp

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SchemaRepo reads the column layout of the workout tables.
type SchemaRepo interface {
	GetWorkoutColumns(ctx context.Context) ([]SchemaColumn, error)
}

type SchemaColumn struct {
	TableName  string
	ColumnName string
	DataType   string
	Nullable   bool
	Default    *string
}

// columnNotes explains the columns whose meaning is not obvious from the
// type alone. Keyed by table.column.
var columnNotes = map[string]string{
	"workout.id":                      "session id, client supplied or generated",
	"workout.user_id":                 "owner; every query is scoped by it",
	"workout.performed_at":            "when the session happened (UTC), drives every time window",
	"workout.duration_minutes":        "0 when the client sent none",
	"workout.exercises":               `[{"name", "sets": [{"reps", "weight", "restSeconds"?}]}], weights in kg`,
	"workout.notes":                   "free text, not analyzed",
	"workout.created_at":              "insert time, tie breaker for sessions at the same performed_at",
	"workout_history_version.user_id": "owner",
	"workout_history_version.version": "bumped on every add/delete; part of the insights cache key",
}

// Note returns the description of the column, or "".
func (c SchemaColumn) Note() string {
	return columnNotes[c.TableName+"."+c.ColumnName]
}

type poolSchemaRepo struct {
	pool *pgxpool.Pool
}

func NewPoolSchemaRepo(pool *pgxpool.Pool) SchemaRepo {
	return &poolSchemaRepo{pool: pool}
}

// GetWorkoutColumns lists the columns of workout and workout_history_version
// in table order. Columns added outside the migrations are left out, so the
// tool only shows what the service reads and writes.
func (r *poolSchemaRepo) GetWorkoutColumns(ctx context.Context) ([]SchemaColumn, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT table_name, column_name, data_type, is_nullable = 'YES', column_default
		FROM information_schema.columns
		WHERE table_schema = current_schema()
		  AND table_name IN ('workout', 'workout_history_version')
		ORDER BY table_name, ordinal_position`)
	if err != nil {
		return nil, fmt.Errorf("query workout columns: %w", err)
	}
	defer rows.Close()

	var cols []SchemaColumn
	for rows.Next() {
		var c SchemaColumn
		if err := rows.Scan(&c.TableName, &c.ColumnName, &c.DataType, &c.Nullable, &c.Default); err != nil {
			return nil, fmt.Errorf("scan workout column: %w", err)
		}
		if c.Note() == "" {
			continue
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workout columns: %w", err)
	}

	return cols, nil
}
