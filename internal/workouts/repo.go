package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gyminsights/internal/insights"
	"github.com/2beens/gyminsights/internal/telemetry/tracing"
	"github.com/2beens/gyminsights/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrWorkoutExists   = errors.New("workout already exists")
)

type ListParams struct {
	UserID string
	From   *time.Time
	To     *time.Time
	// Limit keeps the latest sessions only; 0 means no limit.
	Limit int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Add stores the workout and bumps the owner's history version in the same
// transaction.
func (r *Repo) Add(ctx context.Context, w Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("user.id", w.UserID),
		attribute.String("workout.id", w.ID.String()),
	)

	exercisesJson, err := json.Marshal(w.Exercises)
	if err != nil {
		return nil, fmt.Errorf("marshal exercises: %w", err)
	}

	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO workout
				(id, user_id, performed_at, duration_minutes, exercises, notes, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7);`,
			w.ID, w.UserID, w.PerformedAt, w.DurationMinutes, exercisesJson, w.Notes, w.CreatedAt,
		); err != nil {
			if pkg.IsUniqueViolationError(err) {
				return ErrWorkoutExists
			}
			return fmt.Errorf("insert workout: %w", err)
		}
		return bumpHistoryVersion(ctx, tx, w.UserID)
	})
	if err != nil {
		return nil, err
	}

	return &w, nil
}

func (r *Repo) Delete(ctx context.Context, userID string, id uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.String("workout.id", id.String()),
	)

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM workout WHERE id = $1 AND user_id = $2;`, id, userID)
		if err != nil {
			return fmt.Errorf("delete workout: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrWorkoutNotFound
		}
		return bumpHistoryVersion(ctx, tx, userID)
	})
}

func bumpHistoryVersion(ctx context.Context, tx pgx.Tx, userID string) error {
	_, err := tx.Exec(
		ctx,
		`INSERT INTO workout_history_version (user_id, version) VALUES ($1, 1)
			ON CONFLICT (user_id) DO UPDATE SET version = workout_history_version.version + 1;`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("bump history version: %w", err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, userID string, id uuid.UUID) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", id.String()))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, performed_at, duration_minutes, exercises, notes, created_at
			FROM workout WHERE id = $1 AND user_id = $2;`,
		id, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list, err := scanWorkouts(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrWorkoutNotFound
	}
	return &list[0], nil
}

// ListForUser returns the user's workouts in chronological order.
func (r *Repo) ListForUser(ctx context.Context, params ListParams) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", params.UserID))

	query := `SELECT id, user_id, performed_at, duration_minutes, exercises, notes, created_at
		FROM workout
		WHERE user_id = $1
			AND ($2::timestamptz IS NULL OR performed_at >= $2)
			AND ($3::timestamptz IS NULL OR performed_at <= $3)
		ORDER BY performed_at DESC, created_at DESC, id DESC`
	args := []any{params.UserID, params.From, params.To}
	if params.Limit > 0 {
		query += ` LIMIT $4`
		args = append(args, params.Limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list, err := scanWorkouts(rows)
	if err != nil {
		return nil, err
	}

	// newest first in the query so LIMIT keeps the latest; flip back
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	span.SetAttributes(attribute.Int("workouts.count", len(list)))

	return list, nil
}

func scanWorkouts(rows pgx.Rows) ([]Workout, error) {
	var list []Workout
	for rows.Next() {
		var (
			w             Workout
			exercisesJson []byte
		)
		if err := rows.Scan(
			&w.ID, &w.UserID, &w.PerformedAt, &w.DurationMinutes, &exercisesJson, &w.Notes, &w.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if err := json.Unmarshal(exercisesJson, &w.Exercises); err != nil {
			return nil, fmt.Errorf("unmarshal exercises of %s: %w", w.ID, err)
		}
		list = append(list, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// HistoryVersion returns a counter that changes whenever the user's history
// changes. Users without workouts are at version 0.
func (r *Repo) HistoryVersion(ctx context.Context, userID string) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.history_version")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var version int64
	err = r.db.QueryRow(
		ctx,
		`SELECT version FROM workout_history_version WHERE user_id = $1;`,
		userID,
	).Scan(&version)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return version, nil
}

// GetHistory returns the full history as engine records.
func (r *Repo) GetHistory(ctx context.Context, userID string) ([]insights.WorkoutRecord, error) {
	list, err := r.ListForUser(ctx, ListParams{UserID: userID})
	if err != nil {
		return nil, err
	}
	return Records(list), nil
}
