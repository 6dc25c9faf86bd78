package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/2beens/gyminsights/internal/insights"
	"github.com/2beens/gyminsights/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSchemaRepo struct {
	cols []SchemaColumn
	err  error
}

func (m *mockSchemaRepo) GetWorkoutColumns(ctx context.Context) ([]SchemaColumn, error) {
	return m.cols, m.err
}

type engineSource struct {
	engine *insights.Engine
}

func (s engineSource) GetInsights(ctx context.Context, userID string) insights.AIInsights {
	return insights.DefaultInsights()
}

func (s engineSource) Analyze(ctx context.Context, history []insights.WorkoutRecord) insights.AIInsights {
	return s.engine.GenerateInsights(history)
}

func newTestContextService(repo SchemaRepo) *ContextService {
	engine := insights.NewEngine(insights.WithClock(func() time.Time {
		return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	}))
	return NewContextService(repo, engineSource{engine: engine}, engine.Catalog())
}

func TestContextService_GetSchema(t *testing.T) {
	def := "gen_random_uuid()"
	svc := newTestContextService(&mockSchemaRepo{cols: []SchemaColumn{
		{TableName: "workout_history_version", ColumnName: "user_id", DataType: "text"},
		{TableName: "workout", ColumnName: "id", DataType: "uuid", Default: &def},
		{TableName: "workout", ColumnName: "notes", DataType: "text", Nullable: true},
	}})

	text, err := svc.GetSchema(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "# Workout DB Schema"))
	assert.Contains(t, text, "| id | uuid | NO | gen_random_uuid() | session id, client supplied or generated |")
	assert.Contains(t, text, "| user_id | text | NO | - | owner |")
	assert.Contains(t, text, "| notes | text | YES | - | free text, not analyzed |")
	assert.Less(t, strings.Index(text, "## workout\n"), strings.Index(text, "## workout_history_version"))

	empty := newTestContextService(&mockSchemaRepo{})
	text, err = empty.GetSchema(context.Background())
	require.NoError(t, err)
	assert.Contains(t, text, "No workout tables found")

	failing := newTestContextService(&mockSchemaRepo{err: errors.New("db gone")})
	_, err = failing.GetSchema(context.Background())
	assert.EqualError(t, err, "db gone")
}

func TestSchemaColumn_Note(t *testing.T) {
	assert.Contains(t, SchemaColumn{TableName: "workout", ColumnName: "exercises"}.Note(), "restSeconds")
	assert.Contains(t, SchemaColumn{TableName: "workout_history_version", ColumnName: "version"}.Note(), "cache key")
	assert.Empty(t, SchemaColumn{TableName: "workout", ColumnName: "legacy_flag"}.Note())
	assert.Empty(t, SchemaColumn{TableName: "other", ColumnName: "id"}.Note())
}

func TestContextService_AnalyzeHistory(t *testing.T) {
	svc := newTestContextService(&mockSchemaRepo{})

	result, dropped := svc.AnalyzeHistory(context.Background(), []workouts.RawWorkout{
		{Date: "2024-03-14", Duration: workouts.NewLenient(45), Exercises: []workouts.RawExercise{
			{Name: "Bench Press", Sets: []workouts.RawSet{{Reps: workouts.NewLenient(8), Weight: workouts.NewLenient(60)}}},
		}},
		{Date: ""},
	})
	assert.Equal(t, 1, dropped)
	assert.Equal(t, 480.0, result.WeeklyAnalysis.TotalVolume)

	result, dropped = svc.AnalyzeHistory(context.Background(), nil)
	assert.Zero(t, dropped)
	assert.Equal(t, insights.DefaultInsights(), result)
}

func TestContextService_Catalog(t *testing.T) {
	svc := newTestContextService(&mockSchemaRepo{})

	all, err := svc.Catalog("")
	require.NoError(t, err)
	assert.Equal(t, insights.DefaultCatalog().Len(), len(all))

	legs, err := svc.Catalog(" Legs ")
	require.NoError(t, err)
	require.NotEmpty(t, legs)
	for _, e := range legs {
		assert.Contains(t, e.MuscleGroups, insights.Legs)
	}

	_, err = svc.Catalog("neck")
	assert.Error(t, err)
}
