package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/2beens/gyminsights/internal/insights"
	"github.com/2beens/gyminsights/internal/workouts"
)

// insightsSource is the slice of the insights service the tools need.
type insightsSource interface {
	GetInsights(ctx context.Context, userID string) insights.AIInsights
	Analyze(ctx context.Context, history []insights.WorkoutRecord) insights.AIInsights
}

// contextService is what Handler calls; split out for tests.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	GetInsights(ctx context.Context, userID string) insights.AIInsights
	AnalyzeHistory(ctx context.Context, raw []workouts.RawWorkout) (insights.AIInsights, int)
	Catalog(muscleGroup string) ([]insights.CatalogEntry, error)
}

// ContextService holds the dependencies behind the MCP tools.
type ContextService struct {
	schema   SchemaRepo
	insights insightsSource
	catalog  *insights.Catalog
}

func NewContextService(schemaRepo SchemaRepo, source insightsSource, catalog *insights.Catalog) *ContextService {
	return &ContextService{
		schema:   schemaRepo,
		insights: source,
		catalog:  catalog,
	}
}

// GetSchema returns the workout tables (columns, types, nullable, default) as markdown.
func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.schema.GetWorkoutColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatWorkoutSchema(cols), nil
}

func formatWorkoutSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# Workout DB Schema\n\nNo workout tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}
	tableOrder := make([]string, 0, len(byTable))
	for t := range byTable {
		tableOrder = append(tableOrder, t)
	}
	sort.Strings(tableOrder)

	var b strings.Builder
	b.WriteString("# Workout DB Schema\n\n")
	b.WriteString("Tables: workout, workout_history_version (schema: public).\n")
	for _, tableName := range tableOrder {
		b.WriteString("\n## ")
		b.WriteString(tableName)
		b.WriteString("\n\n| Column | Type | Nullable | Default | Notes |\n|--------|------|----------|---------|-------|\n")
		for _, c := range byTable[tableName] {
			def := "-"
			if c.Default != nil && *c.Default != "" {
				def = *c.Default
			}
			nullable := "NO"
			if c.Nullable {
				nullable = "YES"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", c.ColumnName, c.DataType, nullable, def, c.Note())
		}
	}

	return b.String()
}

func (s *ContextService) GetInsights(ctx context.Context, userID string) insights.AIInsights {
	return s.insights.GetInsights(ctx, userID)
}

// AnalyzeHistory coerces and evaluates a supplied history. It also reports
// how many sessions were skipped for lacking a usable date.
func (s *ContextService) AnalyzeHistory(ctx context.Context, raw []workouts.RawWorkout) (insights.AIInsights, int) {
	history, dropped := workouts.Coerce(raw)
	return s.insights.Analyze(ctx, history), dropped
}

// Catalog lists the known exercises, optionally only those of one muscle group.
func (s *ContextService) Catalog(muscleGroup string) ([]insights.CatalogEntry, error) {
	entries := s.catalog.Entries()
	if muscleGroup == "" {
		return entries, nil
	}

	group := insights.MuscleGroup(strings.ToLower(strings.TrimSpace(muscleGroup)))
	if !group.Valid() {
		return nil, fmt.Errorf("unknown muscle group %q", muscleGroup)
	}
	filtered := make([]insights.CatalogEntry, 0, len(entries))
	for _, e := range entries {
		for _, g := range e.MuscleGroups {
			if g == group {
				filtered = append(filtered, e)
				break
			}
		}
	}
	return filtered, nil
}
