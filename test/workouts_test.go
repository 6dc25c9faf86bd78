package test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/2beens/gyminsights/internal/workouts"

	"github.com/google/uuid"
)

func newUserID() string {
	return "it-" + uuid.NewString()
}

func workoutBody(id, date string, weight float64) string {
	return fmt.Sprintf(`{
		"id": %q,
		"date": %q,
		"duration": "55",
		"exercises": [
			{"name": "Bench Press", "sets": [
				{"reps": 8, "weight": %v, "restTime": 120},
				{"reps": "8", "weight": "%v", "restTime": 150}
			]}
		]
	}`, id, date, weight, weight)
}

func (s *IntegrationTestSuite) TestWorkouts_AddListDelete() {
	ctx := context.Background()
	userID := newUserID()

	firstID := uuid.NewString()
	var added workouts.Workout
	status := s.doRequest(ctx, http.MethodPost, "/workouts/"+userID, workoutBody(firstID, "2024-03-01T10:00:00Z", 60), &added)
	s.Require().Equal(http.StatusCreated, status)
	s.Equal(firstID, added.ID.String())
	s.Equal(userID, added.UserID)
	s.Equal(55, added.DurationMinutes)
	s.Require().Len(added.Exercises, 1)
	s.Len(added.Exercises[0].Sets, 2)

	secondID := uuid.NewString()
	status = s.doRequest(ctx, http.MethodPost, "/workouts/"+userID, workoutBody(secondID, "2024-03-05T10:00:00Z", 62.5), nil)
	s.Require().Equal(http.StatusCreated, status)

	// same id twice
	status = s.doRequest(ctx, http.MethodPost, "/workouts/"+userID, workoutBody(secondID, "2024-03-05T10:00:00Z", 62.5), nil)
	s.Equal(http.StatusConflict, status)

	// no parsable date
	status = s.doRequest(ctx, http.MethodPost, "/workouts/"+userID, workoutBody(uuid.NewString(), "yesterday", 50), nil)
	s.Equal(http.StatusBadRequest, status)

	var list workouts.ListResponse
	status = s.doRequest(ctx, http.MethodGet, "/workouts/"+userID, "", &list)
	s.Require().Equal(http.StatusOK, status)
	s.Require().Equal(2, list.Total)
	s.Equal(firstID, list.Workouts[0].ID.String())
	s.Equal(secondID, list.Workouts[1].ID.String())

	status = s.doRequest(ctx, http.MethodGet, "/workouts/"+userID+"?from=2024-03-02", "", &list)
	s.Require().Equal(http.StatusOK, status)
	s.Require().Equal(1, list.Total)
	s.Equal(secondID, list.Workouts[0].ID.String())

	var got workouts.Workout
	status = s.doRequest(ctx, http.MethodGet, "/workouts/"+userID+"/"+firstID, "", &got)
	s.Require().Equal(http.StatusOK, status)
	s.Equal(firstID, got.ID.String())

	// other users cannot see it
	status = s.doRequest(ctx, http.MethodGet, "/workouts/"+newUserID()+"/"+firstID, "", nil)
	s.Equal(http.StatusNotFound, status)

	var deleted workouts.DeleteResponse
	status = s.doRequest(ctx, http.MethodDelete, "/workouts/"+userID+"/"+firstID, "", &deleted)
	s.Require().Equal(http.StatusOK, status)
	s.Equal(firstID, deleted.DeletedID)

	status = s.doRequest(ctx, http.MethodDelete, "/workouts/"+userID+"/"+firstID, "", nil)
	s.Equal(http.StatusNotFound, status)

	status = s.doRequest(ctx, http.MethodGet, "/workouts/"+userID, "", &list)
	s.Require().Equal(http.StatusOK, status)
	s.Equal(1, list.Total)
}

func (s *IntegrationTestSuite) TestWorkouts_Unauthorized() {
	ctx := context.Background()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serverEndpoint+"/workouts/"+newUserID(), nil)
	s.Require().NoError(err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-Insights-Key", "wrong-key")

	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestWorkouts_SameTimestampKeepsInsertOrder() {
	ctx := context.Background()
	userID := newUserID()

	var ids []string
	for i := 0; i < 3; i++ {
		id := uuid.NewString()
		ids = append(ids, id)
		body := workoutBody(id, "2024-03-01T10:00:00Z", 60+float64(i))
		s.Require().Equal(http.StatusCreated, s.doRequest(ctx, http.MethodPost, "/workouts/"+userID, body, nil))
	}

	for i := 0; i < 3; i++ {
		var list workouts.ListResponse
		s.Require().Equal(http.StatusOK, s.doRequest(ctx, http.MethodGet, "/workouts/"+userID, "", &list))
		s.Require().Equal(3, list.Total)
		for j, w := range list.Workouts {
			s.Equal(ids[j], w.ID.String())
		}
	}

	// limit keeps the latest inserted of the tied sessions
	var limited workouts.ListResponse
	s.Require().Equal(http.StatusOK, s.doRequest(ctx, http.MethodGet, "/workouts/"+userID+"?limit=1", "", &limited))
	s.Require().Equal(1, limited.Total)
	s.Equal(ids[2], limited.Workouts[0].ID.String())
}
