package mcp

import (
	"github.com/2beens/gyminsights/internal/insights/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds the MCP server with the workout insights tools. It is
// mounted at /mcp by the HTTP service and run over stdio by cmd/insights_mcp.
func NewServer(pool *pgxpool.Pool, insightsService *service.Service) *mcp.Server {
	svc := NewContextService(NewPoolSchemaRepo(pool), insightsService, insightsService.Engine().Catalog())
	return newServer(NewHandler(svc))
}

func newServer(h *Handler) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "gyminsights",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_workout_insights",
		Description: "Returns the full insights for a user's stored workout history: exercise recommendations, rest recommendations, load predictions, overtraining alerts, weekly analysis and tips. Arg: user_id.",
	}, h.GetWorkoutInsightsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "analyze_workout_history",
		Description: "Analyzes a workout history passed in the call, without storing it. Arg: workouts, a list of {date (YYYY-MM-DD or RFC3339), duration (minutes), exercises: [{name, sets: [{reps, weight, restTime}]}]}. Numbers may be strings.",
	}, h.AnalyzeHistoryTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_exercise_catalog",
		Description: "Returns the known exercises with their muscle group, category and optimal rest in seconds. Optional: muscle_group.",
	}, h.GetExerciseCatalogTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_storage_schema",
		Description: "Returns the DB schema of the workout tables (workout, workout_history_version): columns, types, nullable, default.",
	}, h.GetStorageSchemaTool())

	return s
}
