package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/gyminsights/internal/telemetry/metrics"
	"github.com/2beens/gyminsights/internal/telemetry/tracing"
	"github.com/2beens/gyminsights/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=workouts_test

type workoutsRepo interface {
	Add(ctx context.Context, w Workout) (*Workout, error)
	Get(ctx context.Context, userID string, id uuid.UUID) (*Workout, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
	ListForUser(ctx context.Context, params ListParams) ([]Workout, error)
}

type ListResponse struct {
	Workouts []Workout `json:"workouts"`
	Total    int       `json:"total"`
}

type DeleteResponse struct {
	DeletedID string `json:"deletedId"`
}

type Handler struct {
	repo    workoutsRepo
	metrics *metrics.Manager
	now     func() time.Time
}

func NewHandler(repo workoutsRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metricsManager,
		now:     time.Now,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.add")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	var raw RawWorkout
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		log.Errorf("add workout, unmarshal json params: %s", err)
		http.Error(w, "add workout failed", http.StatusBadRequest)
		return
	}

	rec, ok := CoerceOne(raw)
	if !ok {
		handler.metrics.CounterWorkoutsDropped.Inc()
		http.Error(w, "error, invalid workout date", http.StatusBadRequest)
		return
	}

	added, err := handler.repo.Add(ctx, NewWorkout(userID, rec, handler.now().UTC()))
	if err != nil {
		if errors.Is(err, ErrWorkoutExists) {
			http.Error(w, "error, workout already exists", http.StatusConflict)
			return
		}
		log.Errorf("failed to add workout for [%s]: %s", userID, err)
		http.Error(w, "error, failed to add workout", http.StatusInternalServerError)
		return
	}
	handler.metrics.CounterWorkoutsAdded.Inc()

	log.Debugf("workout added for [%s]: %s", userID, added.ID)
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	vars := mux.Vars(r)
	userID := vars["userId"]
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		http.Error(w, "error, invalid workout id", http.StatusBadRequest)
		return
	}

	workout, err := handler.repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get workout %s: %s", id, err)
		http.Error(w, "error, failed to get workout", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, workout, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	params := ListParams{
		UserID: mux.Vars(r)["userId"],
	}
	if params.UserID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	query := r.URL.Query()
	if fromStr := query.Get("from"); fromStr != "" {
		from, err := time.Parse(time.DateOnly, fromStr)
		if err != nil {
			http.Error(w, "error, invalid from date", http.StatusBadRequest)
			return
		}
		params.From = &from
	}
	if toStr := query.Get("to"); toStr != "" {
		to, err := time.Parse(time.DateOnly, toStr)
		if err != nil {
			http.Error(w, "error, invalid to date", http.StatusBadRequest)
			return
		}
		// inclusive end of day
		to = to.Add(24*time.Hour - time.Nanosecond)
		params.To = &to
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			http.Error(w, "error, invalid limit", http.StatusBadRequest)
			return
		}
		params.Limit = limit
	}

	list, err := handler.repo.ListForUser(ctx, params)
	if err != nil {
		log.Errorf("failed to list workouts for [%s]: %s", params.UserID, err)
		http.Error(w, "error, failed to list workouts", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []Workout{}
	}

	pkg.WriteJSON(w, ListResponse{Workouts: list, Total: len(list)}, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	vars := mux.Vars(r)
	userID := vars["userId"]
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		http.Error(w, "error, invalid workout id", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete workout %s: %s", id, err)
		http.Error(w, "error, failed to delete workout", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, DeleteResponse{DeletedID: id.String()}, http.StatusOK)
}
