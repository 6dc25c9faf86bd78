package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/2beens/gyminsights/internal/insights"
	"github.com/2beens/gyminsights/internal/telemetry/tracing"
	"github.com/2beens/gyminsights/internal/workouts"
	"github.com/2beens/gyminsights/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=service_test

type insightsService interface {
	GetInsights(ctx context.Context, userID string) insights.AIInsights
	Analyze(ctx context.Context, history []insights.WorkoutRecord) insights.AIInsights
	GetInsightsForUsers(ctx context.Context, ids []string) (map[string]insights.AIInsights, error)
}

type BatchRequest struct {
	UserIDs []string `json:"userIds"`
}

type BatchResponse struct {
	Insights map[string]insights.AIInsights `json:"insights"`
}

type Handler struct {
	service       insightsService
	maxBatchUsers int
}

func NewHandler(service insightsService, maxBatchUsers int) *Handler {
	return &Handler{
		service:       service,
		maxBatchUsers: maxBatchUsers,
	}
}

func (handler *Handler) HandleGetInsights(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.get")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	pkg.WriteJSON(w, handler.service.GetInsights(ctx, userID), http.StatusOK)
}

// HandleAnalyze evaluates a history sent in the request body. Sessions with
// unreadable dates are skipped.
func (handler *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.analyze")
	defer span.End()

	var raw []workouts.RawWorkout
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		log.Errorf("analyze, unmarshal json params: %s", err)
		http.Error(w, "error, invalid workout history", http.StatusBadRequest)
		return
	}

	history, dropped := workouts.Coerce(raw)
	if dropped > 0 {
		log.Debugf("analyze: dropped %d workouts without a valid date", dropped)
	}

	pkg.WriteJSON(w, handler.service.Analyze(ctx, history), http.StatusOK)
}

func (handler *Handler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.batch")
	defer span.End()

	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("batch insights, unmarshal json params: %s", err)
		http.Error(w, "error, invalid batch request", http.StatusBadRequest)
		return
	}
	if len(req.UserIDs) == 0 {
		http.Error(w, "error, user ids empty", http.StatusBadRequest)
		return
	}
	if handler.maxBatchUsers > 0 && len(req.UserIDs) > handler.maxBatchUsers {
		http.Error(w, fmt.Sprintf("error, at most %d users per batch", handler.maxBatchUsers), http.StatusBadRequest)
		return
	}

	results, err := handler.service.GetInsightsForUsers(ctx, req.UserIDs)
	if err != nil {
		log.Errorf("batch insights for %d users: %s", len(req.UserIDs), err)
		http.Error(w, "error, failed to get insights", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, BatchResponse{Insights: results}, http.StatusOK)
}
