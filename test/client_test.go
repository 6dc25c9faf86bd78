package test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// doRequest calls the running service with the test API key and decodes a
// JSON response into out, when given.
func (s *IntegrationTestSuite) doRequest(ctx context.Context, method, path, body string, out any) int {
	t := s.T()
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reader)
	s.Require().NoError(err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Insights-Key", testAPIKey)

	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	if out != nil && resp.StatusCode < 300 {
		s.Require().NoError(json.Unmarshal(respBytes, out), string(respBytes))
	}
	return resp.StatusCode
}
