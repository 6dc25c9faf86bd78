package test

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/gyminsights/internal/insights"
	"github.com/2beens/gyminsights/internal/insights/service"

	"github.com/google/uuid"
)

func (s *IntegrationTestSuite) addWorkouts(ctx context.Context, userID string, count int) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		date := start.AddDate(0, 0, i*3).Format(time.RFC3339)
		body := workoutBody(uuid.NewString(), date, 60+float64(i)*2.5)
		s.Require().Equal(http.StatusCreated, s.doRequest(ctx, http.MethodPost, "/workouts/"+userID, body, nil))
	}
}

func (s *IntegrationTestSuite) TestInsights_EmptyHistory() {
	ctx := context.Background()

	var got insights.AIInsights
	status := s.doRequest(ctx, http.MethodGet, "/insights/"+newUserID(), "", &got)
	s.Require().Equal(http.StatusOK, status)
	s.Equal(insights.DefaultInsights(), got)
}

func (s *IntegrationTestSuite) TestInsights_FromStoredHistory() {
	ctx := context.Background()
	userID := newUserID()
	s.addWorkouts(ctx, userID, 4)

	var first insights.AIInsights
	s.Require().Equal(http.StatusOK, s.doRequest(ctx, http.MethodGet, "/insights/"+userID, "", &first))
	s.Require().NotEmpty(first.LoadPredictions)
	s.Equal("Bench Press", first.LoadPredictions[0].Exercise)

	// served from the redis cache, same payload
	var second insights.AIInsights
	s.Require().Equal(http.StatusOK, s.doRequest(ctx, http.MethodGet, "/insights/"+userID, "", &second))
	s.Equal(first, second)

	// a new workout bumps the history version and invalidates the cached entry
	body := workoutBody(uuid.NewString(), "2024-02-01T09:00:00Z", 100)
	s.Require().Equal(http.StatusCreated, s.doRequest(ctx, http.MethodPost, "/workouts/"+userID, body, nil))

	var third insights.AIInsights
	s.Require().Equal(http.StatusOK, s.doRequest(ctx, http.MethodGet, "/insights/"+userID, "", &third))
	s.Require().NotEmpty(third.LoadPredictions)
	s.Equal(100.0, third.LoadPredictions[0].CurrentWeight)
}

func (s *IntegrationTestSuite) TestInsights_Batch() {
	ctx := context.Background()
	withHistory := newUserID()
	empty := newUserID()
	s.addWorkouts(ctx, withHistory, 3)

	body := fmt.Sprintf(`{"userIds": [%q, %q, %q]}`, withHistory, empty, withHistory)
	var resp service.BatchResponse
	s.Require().Equal(http.StatusOK, s.doRequest(ctx, http.MethodPost, "/insights/batch", body, &resp))
	s.Len(resp.Insights, 2)
	s.NotEmpty(resp.Insights[withHistory].LoadPredictions)
	s.Empty(resp.Insights[empty].LoadPredictions)

	s.Equal(http.StatusBadRequest, s.doRequest(ctx, http.MethodPost, "/insights/batch", `{"userIds": []}`, nil))
}

func (s *IntegrationTestSuite) TestInsights_Analyze() {
	ctx := context.Background()
	body := `[
		{"date": "2024-01-01", "duration": 40, "exercises": [{"name": "Squat", "sets": [{"reps": 5, "weight": 100}]}]},
		{"date": "not a date", "exercises": []},
		{"date": "2024-01-04", "duration": "45", "exercises": [{"name": "Squat", "sets": [{"reps": 5, "weight": "102.5"}]}]},
		{"date": "2024-01-08", "duration": 50, "exercises": [{"name": "Squat", "sets": [{"reps": "5", "weight": "105"}]}]}
	]`

	var got insights.AIInsights
	s.Require().Equal(http.StatusOK, s.doRequest(ctx, http.MethodPost, "/insights/analyze", body, &got))
	s.Require().NotEmpty(got.LoadPredictions)
	s.Equal("Squat", got.LoadPredictions[0].Exercise)
	s.Equal(105.0, got.LoadPredictions[0].CurrentWeight)
}
