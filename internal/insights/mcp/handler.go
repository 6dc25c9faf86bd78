package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/2beens/gyminsights/internal/workouts"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler parses tool input, calls the service and formats the MCP result.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

// GetStorageSchemaTool returns the MCP tool handler for get_storage_schema.
func (h *Handler) GetStorageSchemaTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil, nil
	}
}

// UserInsightsInput is the input for get_workout_insights.
type UserInsightsInput struct {
	UserID string `json:"user_id" jsonschema:"Id of the user whose stored workouts are analyzed"`
}

// GetWorkoutInsightsTool returns the MCP tool handler for get_workout_insights.
func (h *Handler) GetWorkoutInsightsTool() func(context.Context, *mcp.CallToolRequest, UserInsightsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in UserInsightsInput) (*mcp.CallToolResult, any, error) {
		userID := strings.TrimSpace(in.UserID)
		if userID == "" {
			return errorResult("user_id is required"), nil, nil
		}
		return jsonResult(h.service.GetInsights(ctx, userID)), nil, nil
	}
}

// AnalyzeHistoryInput is the input for analyze_workout_history. Workouts are
// taken untyped since numbers may arrive as strings.
type AnalyzeHistoryInput struct {
	Workouts []any `json:"workouts" jsonschema:"Workout sessions: {date, duration, exercises: [{name, sets: [{reps, weight, restTime}]}], notes}"`
}

// AnalyzeHistoryTool returns the MCP tool handler for analyze_workout_history.
func (h *Handler) AnalyzeHistoryTool() func(context.Context, *mcp.CallToolRequest, AnalyzeHistoryInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in AnalyzeHistoryInput) (*mcp.CallToolResult, any, error) {
		raw, err := decodeWorkouts(in.Workouts)
		if err != nil {
			return errorResult("Invalid workouts: " + err.Error()), nil, nil
		}

		result, dropped := h.service.AnalyzeHistory(ctx, raw)
		res := jsonResult(result)
		if dropped > 0 && !res.IsError {
			res.Content = append(res.Content, &mcp.TextContent{
				Text: fmt.Sprintf("Skipped %d workout(s) without a valid date.", dropped),
			})
		}
		return res, nil, nil
	}
}

func decodeWorkouts(in []any) ([]workouts.RawWorkout, error) {
	if len(in) == 0 {
		return []workouts.RawWorkout{}, nil
	}
	buf, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	var raw []workouts.RawWorkout
	if err := json.Unmarshal(buf, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// CatalogInput is the input for get_exercise_catalog.
type CatalogInput struct {
	MuscleGroup string `json:"muscle_group,omitempty" jsonschema:"Filter by muscle group (chest, back, legs, shoulders, arms)"`
}

// GetExerciseCatalogTool returns the MCP tool handler for get_exercise_catalog.
func (h *Handler) GetExerciseCatalogTool() func(context.Context, *mcp.CallToolRequest, CatalogInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in CatalogInput) (*mcp.CallToolResult, any, error) {
		entries, err := h.service.Catalog(in.MuscleGroup)
		if err != nil {
			return errorResult("Error listing catalog: " + err.Error()), nil, nil
		}
		return jsonResult(entries), nil, nil
	}
}
